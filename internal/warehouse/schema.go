//-------------------------------------------------------------------------
//
// pgEdge Sales Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse owns the sales star schema: its DDL, the full-refresh
// writer and the integrity verifier.
package warehouse

// Table names.
const (
	TableProducts  = "dim_products"
	TableDate      = "dim_date"
	TableCustomers = "dim_customers"
	TableFacts     = "fact_sales"
)

// Column lists in COPY order. Identifiers are quoted in the DDL so the
// mixed-case names survive.
var (
	productColumns  = []string{"ProductID", "ProductName", "Category", "Cost"}
	dateColumns     = []string{"DateID", "Date", "Year", "Month", "Day"}
	customerColumns = []string{"CustomerID"}
	factColumns     = []string{"OrderID", "ProductID", "CustomerID", "DateID", "Quantity", "Price", "Revenue"}
)

// Schema SQL for the star schema. The fact_sales product foreign key is
// added after the data is loaded; see addProductFKSQL.
const createSchemaSQL = `
-- Product Dimension
CREATE TABLE dim_products (
    "ProductID"   TEXT PRIMARY KEY,
    "ProductName" TEXT,
    "Category"    TEXT,
    "Cost"        NUMERIC
);

-- Date Dimension
CREATE TABLE dim_date (
    "DateID" INTEGER PRIMARY KEY,
    "Date"   DATE NOT NULL UNIQUE,
    "Year"   INTEGER NOT NULL,
    "Month"  INTEGER NOT NULL,
    "Day"    INTEGER NOT NULL
);

-- Customer Dimension
CREATE TABLE dim_customers (
    "CustomerID" TEXT PRIMARY KEY
);

-- Sales Fact
CREATE TABLE fact_sales (
    "OrderID"    BIGINT PRIMARY KEY,
    "ProductID"  TEXT NOT NULL,
    "CustomerID" TEXT NOT NULL REFERENCES dim_customers ("CustomerID"),
    "DateID"     INTEGER NOT NULL REFERENCES dim_date ("DateID"),
    "Quantity"   BIGINT NOT NULL,
    "Price"      NUMERIC NOT NULL,
    "Revenue"    NUMERIC NOT NULL
);

CREATE INDEX idx_fact_sales_product ON fact_sales ("ProductID");
CREATE INDEX idx_fact_sales_customer ON fact_sales ("CustomerID");
CREATE INDEX idx_fact_sales_date ON fact_sales ("DateID");
`

// Drop schema SQL
const dropSchemaSQL = `
DROP TABLE IF EXISTS fact_sales CASCADE;
DROP TABLE IF EXISTS dim_customers CASCADE;
DROP TABLE IF EXISTS dim_date CASCADE;
DROP TABLE IF EXISTS dim_products CASCADE;
`

// addProductFKSQL declares the fact_sales to dim_products relationship.
// With orphans allowed it is added NOT VALID, which records the
// constraint without checking the rows already loaded.
const addProductFKSQL = `
ALTER TABLE fact_sales
    ADD CONSTRAINT fact_sales_product_fk
    FOREIGN KEY ("ProductID") REFERENCES dim_products ("ProductID")`

// Column describes one column of the published table contract.
type Column struct {
	Name string
	Type string
	Key  string
}

// TableDefinition describes a table of the published contract.
type TableDefinition struct {
	Name        string
	Description string
	Columns     []Column
}

// Tables returns the table contract in load order.
func Tables() []TableDefinition {
	return []TableDefinition{
		{
			Name:        TableProducts,
			Description: "Product dimension, one row per ProductID",
			Columns: []Column{
				{Name: "ProductID", Type: "TEXT", Key: "PK"},
				{Name: "ProductName", Type: "TEXT"},
				{Name: "Category", Type: "TEXT"},
				{Name: "Cost", Type: "NUMERIC"},
			},
		},
		{
			Name:        TableDate,
			Description: "Date dimension, DateID assigned in ascending date order",
			Columns: []Column{
				{Name: "DateID", Type: "INTEGER", Key: "PK"},
				{Name: "Date", Type: "DATE", Key: "UNIQUE"},
				{Name: "Year", Type: "INTEGER"},
				{Name: "Month", Type: "INTEGER"},
				{Name: "Day", Type: "INTEGER"},
			},
		},
		{
			Name:        TableCustomers,
			Description: "Customer dimension, one row per CustomerID",
			Columns: []Column{
				{Name: "CustomerID", Type: "TEXT", Key: "PK"},
			},
		},
		{
			Name:        TableFacts,
			Description: "Sales fact, one row per order line",
			Columns: []Column{
				{Name: "OrderID", Type: "BIGINT", Key: "PK"},
				{Name: "ProductID", Type: "TEXT", Key: "FK dim_products"},
				{Name: "CustomerID", Type: "TEXT", Key: "FK dim_customers"},
				{Name: "DateID", Type: "INTEGER", Key: "FK dim_date"},
				{Name: "Quantity", Type: "BIGINT"},
				{Name: "Price", Type: "NUMERIC"},
				{Name: "Revenue", Type: "NUMERIC"},
			},
		},
	}
}
