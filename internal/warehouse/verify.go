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

	"github.com/pgEdge/pgedge-salesload/internal/db"
	"github.com/pgEdge/pgedge-salesload/internal/logging"
)

// TableCount is the row count of one table.
type TableCount struct {
	Table string
	Rows  int64
}

// OrphanCheck counts fact rows whose key has no dimension entry.
type OrphanCheck struct {
	Column    string
	Dimension string
	Rows      int64

	// Allowed marks orphans tolerated by the load policy.
	Allowed bool
}

// Report is the result of Verify.
type Report struct {
	Counts   []TableCount
	Orphans  []OrphanCheck
	Metadata map[string]string
}

// OK reports whether every orphan check passed.
func (r *Report) OK() bool {
	for _, o := range r.Orphans {
		if o.Rows > 0 && !o.Allowed {
			return false
		}
	}
	return true
}

var orphanChecks = []struct {
	column    string
	dimension string
	query     string
}{
	{"ProductID", TableProducts, `
        SELECT count(*) FROM fact_sales f
        WHERE NOT EXISTS (SELECT 1 FROM dim_products d WHERE d."ProductID" = f."ProductID")`},
	{"CustomerID", TableCustomers, `
        SELECT count(*) FROM fact_sales f
        WHERE NOT EXISTS (SELECT 1 FROM dim_customers d WHERE d."CustomerID" = f."CustomerID")`},
	{"DateID", TableDate, `
        SELECT count(*) FROM fact_sales f
        WHERE NOT EXISTS (SELECT 1 FROM dim_date d WHERE d."DateID" = f."DateID")`},
}

// Verify counts the rows of every star schema table and checks the
// referential integrity of fact_sales. Product orphans are reported but
// tolerated when allowUnmatchedProducts is set.
func Verify(ctx context.Context, q db.Querier, allowUnmatchedProducts bool) (*Report, error) {
	report := &Report{}

	for _, t := range Tables() {
		var n int64
		if err := q.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", t.Name)).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", t.Name, err)
		}
		report.Counts = append(report.Counts, TableCount{Table: t.Name, Rows: n})
	}

	for _, c := range orphanChecks {
		var n int64
		if err := q.QueryRow(ctx, c.query).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to check %s orphans: %w", c.column, err)
		}
		check := OrphanCheck{
			Column:    c.column,
			Dimension: c.dimension,
			Rows:      n,
			Allowed:   c.dimension == TableProducts && allowUnmatchedProducts,
		}
		report.Orphans = append(report.Orphans, check)

		if n > 0 {
			logging.Warn().
				Str("column", c.column).
				Str("dimension", c.dimension).
				Int64("rows", n).
				Bool("allowed", check.Allowed).
				Msg("Fact rows without dimension entry")
		}
	}

	exists, err := db.MetadataExists(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to check metadata: %w", err)
	}
	if exists {
		report.Metadata, err = db.GetAllMetadata(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata: %w", err)
		}
	}

	return report, nil
}
