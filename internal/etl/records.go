//-------------------------------------------------------------------------
//
// pgEdge Sales Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package etl implements the transform stages of the sales loader:
// enrichment, the order/product left join, dimension building and fact
// assembly. Every stage is a pure function over in-memory row sets.
package etl

import (
	"github.com/shopspring/decimal"
)

// RawOrder is an orders row as read from the source file.
type RawOrder struct {
	Line       int
	OrderID    string
	ProductID  string
	CustomerID string
	OrderDate  string
	Quantity   string
	Price      string
}

// RawProduct is a products row as read from the source file.
type RawProduct struct {
	Line        int
	ProductID   string
	ProductName string
	Category    string
	Cost        string
}

// Order is a validated order line with its derived fields.
type Order struct {
	Line       int
	OrderID    int64
	ProductID  string
	CustomerID string
	OrderDate  Date
	Quantity   int64
	Price      decimal.Decimal

	// Derived
	Revenue    decimal.Decimal
	OrderYear  int
	OrderMonth int
	OrderDay   int
}

// Product is a validated product row. It is also the product dimension
// entry.
type Product struct {
	Line        int
	ProductID   string
	ProductName string
	Category    string
	Cost        decimal.Decimal
}

// JoinedOrder is an order with its matching product, if any.
type JoinedOrder struct {
	Order
	Product *Product
}

// Matched reports whether the order found a product.
func (j JoinedOrder) Matched() bool {
	return j.Product != nil
}
