//-------------------------------------------------------------------------
//
// pgEdge Sales Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesload/internal/etl"
	"github.com/pgEdge/pgedge-salesload/internal/logging"
)

// SampleConfig configures synthetic input generation.
type SampleConfig struct {
	Orders    int
	Products  int
	Customers int

	// Start is the earliest order date; orders fall within Days of it.
	Start time.Time
	Days  int

	// UnknownProductRate is the share of orders whose ProductID is not in
	// the generated products.
	UnknownProductRate float64
}

// Sample is a generated pair of input row sets.
type Sample struct {
	Orders   []etl.RawOrder
	Products []etl.RawProduct
}

// Generator builds sample orders and products.
type Generator struct {
	faker *Faker
}

// NewGenerator creates a generator; a zero seed picks a random one.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		return &Generator{faker: NewFaker()}
	}
	return &Generator{faker: NewFakerWithSeed(seed)}
}

// Generate produces cfg.Products products and cfg.Orders orders. Order
// prices are the product's list price; unknown products get a random one.
func (g *Generator) Generate(cfg SampleConfig) *Sample {
	s := &Sample{
		Products: make([]etl.RawProduct, cfg.Products),
		Orders:   make([]etl.RawOrder, cfg.Orders),
	}

	prices := make([]decimal.Decimal, cfg.Products)
	for i := range s.Products {
		price := decimal.NewFromFloat(g.faker.Price(1, 500)).Round(2)
		margin := decimal.NewFromFloat(g.faker.Float64(0.3, 0.8))
		prices[i] = price
		s.Products[i] = etl.RawProduct{
			Line:        i + 2,
			ProductID:   productID(i + 1),
			ProductName: g.faker.ProductName(),
			Category:    g.faker.ProductCategory(),
			Cost:        price.Mul(margin).Round(2).StringFixed(2),
		}
	}

	customers := make([]string, cfg.Customers)
	for i := range customers {
		customers[i] = fmt.Sprintf("C%05d", i+1)
	}

	start := time.Date(cfg.Start.Year(), cfg.Start.Month(), cfg.Start.Day(), 0, 0, 0, 0, time.UTC)
	for i := range s.Orders {
		var pid string
		var price decimal.Decimal
		if cfg.UnknownProductRate > 0 && g.faker.Float64(0, 1) < cfg.UnknownProductRate {
			pid = productID(cfg.Products + g.faker.Int(1, 1000))
			price = decimal.NewFromFloat(g.faker.Price(1, 500)).Round(2)
		} else {
			n := g.faker.Int(0, cfg.Products-1)
			pid = s.Products[n].ProductID
			price = prices[n]
		}

		date := start.AddDate(0, 0, g.faker.Int(0, cfg.Days-1))
		s.Orders[i] = etl.RawOrder{
			Line:       i + 2,
			OrderID:    strconv.Itoa(i + 1),
			ProductID:  pid,
			CustomerID: Choose(g.faker, customers),
			OrderDate:  date.Format(time.DateOnly),
			Quantity:   strconv.Itoa(g.faker.Int(1, 10)),
			Price:      price.StringFixed(2),
		}
	}

	logging.Info().
		Int("orders", len(s.Orders)).
		Int("products", len(s.Products)).
		Msg("Generated sample data")

	return s
}

func productID(n int) string {
	return fmt.Sprintf("P%04d", n)
}
