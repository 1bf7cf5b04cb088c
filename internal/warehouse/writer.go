//-------------------------------------------------------------------------
//
// pgEdge Sales Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesload/internal/db"
	"github.com/pgEdge/pgedge-salesload/internal/etl"
	"github.com/pgEdge/pgedge-salesload/internal/logging"
	"github.com/pgEdge/pgedge-salesload/pkg/version"
)

// DB is the part of *pgx.Conn the writer needs.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// LoadInfo describes a load for the metadata table.
type LoadInfo struct {
	RunID        uuid.UUID
	OrdersFile   string
	ProductsFile string

	// AllowUnmatchedProducts adds the product foreign key NOT VALID so
	// facts without a product row can load.
	AllowUnmatchedProducts bool
}

// LoadResult reports what a load wrote.
type LoadResult struct {
	RunID uuid.UUID
	Rows  map[string]int64
}

// Writer replaces the star schema contents with a dataset.
type Writer struct {
	db  DB
	now func() time.Time
}

// NewWriter creates a writer over db.
func NewWriter(db DB) *Writer {
	return &Writer{db: db, now: time.Now}
}

// Load drops and recreates the star schema and copies the dataset into it
// inside one transaction. On any failure the transaction is rolled back
// and the previous contents remain.
func (w *Writer) Load(ctx context.Context, ds *etl.Dataset, info LoadInfo) (*LoadResult, error) {
	tx, err := w.db.Begin(ctx)
	if err != nil {
		return nil, &etl.PersistenceError{Op: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, dropSchemaSQL); err != nil {
		return nil, &etl.PersistenceError{Op: "drop schema", Err: err}
	}
	if _, err := tx.Exec(ctx, createSchemaSQL); err != nil {
		return nil, &etl.PersistenceError{Op: "create schema", Err: err}
	}

	result := &LoadResult{RunID: info.RunID, Rows: make(map[string]int64, 4)}
	copies := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{TableProducts, productColumns, productRows(ds.Products)},
		{TableDate, dateColumns, dateRows(ds.Dates)},
		{TableCustomers, customerColumns, customerRows(ds.Customers)},
		{TableFacts, factColumns, factRows(ds.Facts)},
	}
	for _, c := range copies {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows))
		if err != nil {
			return nil, &etl.PersistenceError{Table: c.table, Op: "copy", Err: err}
		}
		if n != int64(len(c.rows)) {
			return nil, &etl.PersistenceError{
				Table: c.table,
				Op:    "copy",
				Err:   fmt.Errorf("copied %d of %d rows", n, len(c.rows)),
			}
		}
		result.Rows[c.table] = n

		logging.Info().
			Str("table", c.table).
			Int64("rows", n).
			Msg("Table loaded")
	}

	fk := addProductFKSQL
	if info.AllowUnmatchedProducts {
		fk += " NOT VALID"
	}
	if _, err := tx.Exec(ctx, fk); err != nil {
		return nil, &etl.PersistenceError{Table: TableFacts, Op: "add product foreign key", Err: err}
	}

	if err := db.SaveMetadata(ctx, tx, w.metadata(info, ds)); err != nil {
		return nil, &etl.PersistenceError{Table: db.MetadataTable, Op: "save", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &etl.PersistenceError{Op: "commit", Err: err}
	}

	return result, nil
}

func (w *Writer) metadata(info LoadInfo, ds *etl.Dataset) map[string]string {
	m := map[string]string{
		"run_id":           info.RunID.String(),
		"version":          version.Short(),
		"loaded_at":        w.now().UTC().Format(time.RFC3339),
		"orders_file":      info.OrdersFile,
		"products_file":    info.ProductsFile,
		"unmatched_orders": strconv.Itoa(ds.UnmatchedOrders),
	}
	counts := map[string]int{
		TableProducts:  len(ds.Products),
		TableDate:      len(ds.Dates),
		TableCustomers: len(ds.Customers),
		TableFacts:     len(ds.Facts),
	}
	for table, n := range counts {
		m["rows_"+table] = strconv.Itoa(n)
	}
	return m
}

func productRows(products []etl.Product) [][]any {
	rows := make([][]any, len(products))
	for i, p := range products {
		rows[i] = []any{p.ProductID, p.ProductName, p.Category, numeric(p.Cost)}
	}
	return rows
}

func dateRows(dates []etl.DateDim) [][]any {
	rows := make([][]any, len(dates))
	for i, d := range dates {
		rows[i] = []any{
			int32(d.DateID),
			pgtype.Date{Time: d.Date.Time(), Valid: true},
			int32(d.Year),
			int32(d.Month),
			int32(d.Day),
		}
	}
	return rows
}

func customerRows(customers []etl.CustomerDim) [][]any {
	rows := make([][]any, len(customers))
	for i, c := range customers {
		rows[i] = []any{c.CustomerID}
	}
	return rows
}

func factRows(facts []etl.Fact) [][]any {
	rows := make([][]any, len(facts))
	for i, f := range facts {
		rows[i] = []any{
			f.OrderID,
			f.ProductID,
			f.CustomerID,
			int32(f.DateID),
			f.Quantity,
			numeric(f.Price),
			numeric(f.Revenue),
		}
	}
	return rows
}

// numeric converts d exactly, keeping its scale.
func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}
