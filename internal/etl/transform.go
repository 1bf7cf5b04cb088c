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
	"github.com/pgEdge/pgedge-salesload/internal/logging"
)

// Options configures Transform.
type Options struct {
	// DateLayouts are the accepted OrderDate formats, tried in order.
	DateLayouts []string

	// DuplicateProducts decides how repeated ProductIDs are handled.
	DuplicateProducts DuplicatePolicy

	// UnmatchedProducts decides whether orders without a product load.
	UnmatchedProducts UnmatchedPolicy
}

// DefaultOptions returns the default transform options.
func DefaultOptions() Options {
	return Options{
		DateLayouts:       DefaultDateLayouts,
		DuplicateProducts: DuplicateReject,
		UnmatchedProducts: UnmatchedKeep,
	}
}

// Inputs are the raw row sets and the names they were read from.
type Inputs struct {
	OrdersSource   string
	Orders         []RawOrder
	ProductsSource string
	Products       []RawProduct
}

// Dataset is the star schema ready to be written.
type Dataset struct {
	Products  []Product
	Dates     []DateDim
	Customers []CustomerDim
	Facts     []Fact

	// UnmatchedOrders counts fact rows whose ProductID has no product.
	UnmatchedOrders int
}

// Transform runs enrichment, the left join, dimension building and fact
// assembly over the inputs.
func Transform(in Inputs, opts Options) (*Dataset, error) {
	orders, err := Enrich(in.OrdersSource, in.Orders, opts.DateLayouts)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseProducts(in.ProductsSource, in.Products)
	if err != nil {
		return nil, err
	}
	products, err := IndexProducts(in.ProductsSource, parsed, opts.DuplicateProducts)
	if err != nil {
		return nil, err
	}

	joined := LeftJoin(orders, products)
	unmatched := 0
	for _, j := range joined {
		if !j.Matched() {
			unmatched++
		}
	}
	logging.Debug().
		Int("orders", len(joined)).
		Int("unmatched", unmatched).
		Msg("Joined orders to products")

	dims := BuildDimensions(joined, products)
	facts, err := BuildFacts(in.OrdersSource, joined, dims, opts.UnmatchedProducts)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Products:        dims.Products,
		Dates:           dims.Dates,
		Customers:       dims.Customers,
		Facts:           facts,
		UnmatchedOrders: unmatched,
	}, nil
}
