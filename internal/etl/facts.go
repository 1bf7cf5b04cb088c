//-------------------------------------------------------------------------
//
// pgEdge Sales Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package etl

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// UnmatchedPolicy controls orders whose ProductID is not in dim_products.
type UnmatchedPolicy string

const (
	// UnmatchedKeep loads the fact row with its ProductID as given.
	UnmatchedKeep UnmatchedPolicy = "keep"

	// UnmatchedReject fails the run with UnresolvedDimensionError.
	UnmatchedReject UnmatchedPolicy = "reject"
)

// Fact is a fact_sales row.
type Fact struct {
	OrderID    int64
	ProductID  string
	CustomerID string
	DateID     int
	Quantity   int64
	Price      decimal.Decimal
	Revenue    decimal.Decimal
}

// BuildFacts resolves every joined order to its dimension keys. Facts are
// returned ordered by OrderID.
func BuildFacts(source string, joined []JoinedOrder, dims *Dimensions, unmatched UnmatchedPolicy) ([]Fact, error) {
	firstLine := make(map[int64]int, len(joined))
	facts := make([]Fact, 0, len(joined))

	for _, j := range joined {
		if line, ok := firstLine[j.OrderID]; ok {
			return nil, &DuplicateKeyError{
				Source:    source,
				OrderID:   j.OrderID,
				FirstLine: line,
				Line:      j.Line,
			}
		}
		firstLine[j.OrderID] = j.Line

		dateID, ok := dims.DateID(j.OrderDate)
		if !ok {
			return nil, &UnresolvedDimensionError{
				Dimension: "dim_date",
				Key:       j.OrderDate.String(),
				OrderID:   j.OrderID,
			}
		}
		if !dims.HasCustomer(j.CustomerID) {
			return nil, &UnresolvedDimensionError{
				Dimension: "dim_customers",
				Key:       j.CustomerID,
				OrderID:   j.OrderID,
			}
		}
		if unmatched == UnmatchedReject && !dims.HasProduct(j.ProductID) {
			return nil, &UnresolvedDimensionError{
				Dimension: "dim_products",
				Key:       j.ProductID,
				OrderID:   j.OrderID,
			}
		}

		facts = append(facts, Fact{
			OrderID:    j.OrderID,
			ProductID:  j.ProductID,
			CustomerID: j.CustomerID,
			DateID:     dateID,
			Quantity:   j.Quantity,
			Price:      j.Price,
			Revenue:    j.Revenue,
		})
	}

	slices.SortFunc(facts, func(a, b Fact) int {
		return cmp.Compare(a.OrderID, b.OrderID)
	})
	return facts, nil
}
