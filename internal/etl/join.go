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
	"fmt"
	"strings"

	"github.com/pgEdge/pgedge-salesload/internal/logging"
)

// DuplicatePolicy controls how repeated ProductIDs in the products input
// are handled.
type DuplicatePolicy string

const (
	// DuplicateReject collapses identical duplicates and rejects
	// conflicting ones with a SchemaError.
	DuplicateReject DuplicatePolicy = "reject"

	// DuplicateFirst keeps the first row seen for each ProductID.
	DuplicateFirst DuplicatePolicy = "first"
)

// ProductIndex maps ProductID to its single product row.
type ProductIndex map[string]Product

// ParseProducts validates raw product rows.
func ParseProducts(source string, rows []RawProduct) ([]Product, error) {
	products := make([]Product, 0, len(rows))
	for _, raw := range rows {
		id := strings.TrimSpace(raw.ProductID)
		if id == "" {
			return nil, &InvalidRecordError{
				Source:  source,
				Line:    raw.Line,
				KeyName: "ProductID",
				Field:   "ProductID",
				Value:   raw.ProductID,
				Err:     errMissing,
			}
		}
		cost, err := parseAmount(raw.Cost)
		if err != nil {
			return nil, &InvalidRecordError{
				Source:  source,
				Line:    raw.Line,
				KeyName: "ProductID",
				Key:     id,
				Field:   "Cost",
				Value:   raw.Cost,
				Err:     err,
			}
		}
		products = append(products, Product{
			Line:        raw.Line,
			ProductID:   id,
			ProductName: strings.TrimSpace(raw.ProductName),
			Category:    strings.TrimSpace(raw.Category),
			Cost:        cost,
		})
	}
	return products, nil
}

// IndexProducts deduplicates products by ProductID under the given policy.
func IndexProducts(source string, products []Product, policy DuplicatePolicy) (ProductIndex, error) {
	index := make(ProductIndex, len(products))
	for _, p := range products {
		seen, ok := index[p.ProductID]
		if !ok {
			index[p.ProductID] = p
			continue
		}
		if sameProduct(seen, p) {
			continue
		}
		if policy == DuplicateFirst {
			logging.Warn().
				Str("product_id", p.ProductID).
				Int("kept_line", seen.Line).
				Int("dropped_line", p.Line).
				Msg("Dropping conflicting duplicate product")
			continue
		}
		return nil, &SchemaError{
			Source:  source,
			Line:    p.Line,
			KeyName: "ProductID",
			Key:     p.ProductID,
			Reason:  fmt.Sprintf("conflicts with the row on line %d", seen.Line),
		}
	}
	return index, nil
}

func sameProduct(a, b Product) bool {
	return a.ProductName == b.ProductName &&
		a.Category == b.Category &&
		a.Cost.Equal(b.Cost)
}

// LeftJoin pairs every order with its product on ProductID. Orders with
// no matching product are kept with a nil Product.
func LeftJoin(orders []Order, products ProductIndex) []JoinedOrder {
	joined := make([]JoinedOrder, len(orders))
	for i, o := range orders {
		joined[i] = JoinedOrder{Order: o}
		if p, ok := products[o.ProductID]; ok {
			joined[i].Product = &p
		}
	}
	return joined
}
