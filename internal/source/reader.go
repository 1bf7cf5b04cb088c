//-------------------------------------------------------------------------
//
// pgEdge Sales Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package source reads and writes the orders and products CSV files.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pgEdge/pgedge-salesload/internal/etl"
	"github.com/pgEdge/pgedge-salesload/internal/logging"
)

// Required columns of each input.
var (
	OrderColumns   = []string{"OrderID", "ProductID", "CustomerID", "OrderDate", "Quantity", "Price"}
	ProductColumns = []string{"ProductID", "ProductName", "Category", "Cost"}
)

// table is a CSV file with its header resolved to column positions.
type table struct {
	columns map[string]int
	rows    [][]string
	lines   []int
}

func (t *table) value(row int, column string) string {
	return t.rows[row][t.columns[column]]
}

// ReadOrders reads the orders file at path.
func ReadOrders(path string) ([]etl.RawOrder, error) {
	t, err := readTable(path, OrderColumns)
	if err != nil {
		return nil, err
	}

	orders := make([]etl.RawOrder, len(t.rows))
	for i := range t.rows {
		orders[i] = etl.RawOrder{
			Line:       t.lines[i],
			OrderID:    t.value(i, "OrderID"),
			ProductID:  t.value(i, "ProductID"),
			CustomerID: t.value(i, "CustomerID"),
			OrderDate:  t.value(i, "OrderDate"),
			Quantity:   t.value(i, "Quantity"),
			Price:      t.value(i, "Price"),
		}
	}
	return orders, nil
}

// ReadProducts reads the products file at path.
func ReadProducts(path string) ([]etl.RawProduct, error) {
	t, err := readTable(path, ProductColumns)
	if err != nil {
		return nil, err
	}

	products := make([]etl.RawProduct, len(t.rows))
	for i := range t.rows {
		products[i] = etl.RawProduct{
			Line:        t.lines[i],
			ProductID:   t.value(i, "ProductID"),
			ProductName: t.value(i, "ProductName"),
			Category:    t.value(i, "Category"),
			Cost:        t.value(i, "Cost"),
		}
	}
	return products, nil
}

func readTable(path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &etl.MissingInputError{Path: path, Err: err}
	}
	defer f.Close()

	name := filepath.Base(path)
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &etl.SchemaError{Source: name, Reason: "file is empty"}
	}
	if err != nil {
		return nil, csvError(name, err)
	}

	t := &table{columns: make(map[string]int, len(header))}
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		col = strings.TrimSpace(col)
		if _, dup := t.columns[col]; dup {
			return nil, &etl.SchemaError{Source: name, Line: 1, Column: col, Reason: "duplicate column"}
		}
		t.columns[col] = i
	}
	for _, col := range required {
		if _, ok := t.columns[col]; !ok {
			return nil, &etl.SchemaError{Source: name, Column: col, Reason: "required column is missing"}
		}
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}
		line, _ := r.FieldPos(0)
		t.rows = append(t.rows, rec)
		t.lines = append(t.lines, line)
	}

	logging.Info().
		Str("file", path).
		Int("rows", len(t.rows)).
		Msg("Read input file")

	return t, nil
}

func csvError(name string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &etl.SchemaError{Source: name, Line: perr.Line, Reason: perr.Err.Error()}
	}
	return &etl.SchemaError{Source: name, Reason: fmt.Sprintf("unreadable CSV: %v", err)}
}
