//-------------------------------------------------------------------------
//
// pgEdge Sales Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package source

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-salesload/internal/etl"
)

// WriteOrders writes orders to path as CSV with the OrderColumns header.
func WriteOrders(path string, orders []etl.RawOrder) error {
	records := make([][]string, len(orders))
	for i, o := range orders {
		records[i] = []string{o.OrderID, o.ProductID, o.CustomerID, o.OrderDate, o.Quantity, o.Price}
	}
	return writeCSV(path, OrderColumns, records)
}

// WriteProducts writes products to path as CSV with the ProductColumns
// header.
func WriteProducts(path string, products []etl.RawProduct) error {
	records := make([][]string, len(products))
	for i, p := range products {
		records[i] = []string{p.ProductID, p.ProductName, p.Category, p.Cost}
	}
	return writeCSV(path, ProductColumns, records)
}

func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
