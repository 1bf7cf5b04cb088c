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
	"slices"
	"strings"
)

// DateDim is a dim_date entry.
type DateDim struct {
	DateID int
	Date   Date
	Year   int
	Month  int
	Day    int
}

// CustomerDim is a dim_customers entry.
type CustomerDim struct {
	CustomerID string
}

// Dimensions holds the deduplicated dimension sets and the lookups the
// fact builder resolves against.
type Dimensions struct {
	Products  []Product
	Dates     []DateDim
	Customers []CustomerDim

	dateIDs   map[Date]int
	customers map[string]struct{}
	products  ProductIndex
}

// BuildDimensions derives the product, date and customer dimensions.
// Products and customers are sorted by key; DateIDs are assigned from 1
// in ascending date order, so identical input always yields identical
// keys.
func BuildDimensions(joined []JoinedOrder, products ProductIndex) *Dimensions {
	d := &Dimensions{
		dateIDs:   make(map[Date]int),
		customers: make(map[string]struct{}),
		products:  products,
	}

	d.Products = make([]Product, 0, len(products))
	for _, p := range products {
		d.Products = append(d.Products, p)
	}
	slices.SortFunc(d.Products, func(a, b Product) int {
		return strings.Compare(a.ProductID, b.ProductID)
	})

	var dates []Date
	for _, j := range joined {
		if _, ok := d.dateIDs[j.OrderDate]; !ok {
			d.dateIDs[j.OrderDate] = 0
			dates = append(dates, j.OrderDate)
		}
		if _, ok := d.customers[j.CustomerID]; !ok {
			d.customers[j.CustomerID] = struct{}{}
			d.Customers = append(d.Customers, CustomerDim{CustomerID: j.CustomerID})
		}
	}

	slices.SortFunc(dates, func(a, b Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})
	d.Dates = make([]DateDim, len(dates))
	for i, date := range dates {
		id := i + 1
		d.dateIDs[date] = id
		d.Dates[i] = DateDim{
			DateID: id,
			Date:   date,
			Year:   date.Year,
			Month:  int(date.Month),
			Day:    date.Day,
		}
	}

	slices.SortFunc(d.Customers, func(a, b CustomerDim) int {
		return strings.Compare(a.CustomerID, b.CustomerID)
	})

	return d
}

// DateID returns the surrogate key assigned to date.
func (d *Dimensions) DateID(date Date) (int, bool) {
	id, ok := d.dateIDs[date]
	return id, ok && id > 0
}

// HasCustomer reports whether id is in dim_customers.
func (d *Dimensions) HasCustomer(id string) bool {
	_, ok := d.customers[id]
	return ok
}

// HasProduct reports whether id is in dim_products.
func (d *Dimensions) HasProduct(id string) bool {
	_, ok := d.products[id]
	return ok
}
