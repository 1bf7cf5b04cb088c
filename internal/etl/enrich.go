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
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errMissing  = errors.New("value is missing")
	errNegative = errors.New("value is negative")
)

// Enrich validates raw order rows, computes Revenue = Quantity x Price and
// splits OrderDate into its year, month and day. Bad numeric fields fail
// with InvalidRecordError, bad dates with InvalidDateError.
func Enrich(source string, rows []RawOrder, layouts []string) ([]Order, error) {
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}

	orders := make([]Order, 0, len(rows))
	for _, raw := range rows {
		o, err := enrichOrder(source, raw, layouts)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func enrichOrder(source string, raw RawOrder, layouts []string) (Order, error) {
	invalid := func(key, field, value string, err error) error {
		return &InvalidRecordError{
			Source:  source,
			Line:    raw.Line,
			KeyName: "OrderID",
			Key:     key,
			Field:   field,
			Value:   value,
			Err:     err,
		}
	}

	idText := strings.TrimSpace(raw.OrderID)
	orderID, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		return Order{}, invalid("", "OrderID", raw.OrderID, err)
	}

	productID := strings.TrimSpace(raw.ProductID)
	if productID == "" {
		return Order{}, invalid(idText, "ProductID", raw.ProductID, errMissing)
	}
	customerID := strings.TrimSpace(raw.CustomerID)
	if customerID == "" {
		return Order{}, invalid(idText, "CustomerID", raw.CustomerID, errMissing)
	}

	quantity, err := parseQuantity(raw.Quantity)
	if err != nil {
		return Order{}, invalid(idText, "Quantity", raw.Quantity, err)
	}
	price, err := parseAmount(raw.Price)
	if err != nil {
		return Order{}, invalid(idText, "Price", raw.Price, err)
	}

	date, ok := ParseDate(raw.OrderDate, layouts)
	if !ok {
		return Order{}, &InvalidDateError{
			Source:  source,
			Line:    raw.Line,
			OrderID: orderID,
			Value:   raw.OrderDate,
		}
	}

	return Order{
		Line:       raw.Line,
		OrderID:    orderID,
		ProductID:  productID,
		CustomerID: customerID,
		OrderDate:  date,
		Quantity:   quantity,
		Price:      price,
		Revenue:    decimal.NewFromInt(quantity).Mul(price),
		OrderYear:  date.Year,
		OrderMonth: int(date.Month),
		OrderDay:   date.Day,
	}, nil
}

func parseQuantity(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errMissing
	}
	q, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if q < 0 {
		return 0, errNegative
	}
	return q, nil
}

// parseAmount parses a non-negative decimal amount.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errMissing
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errNegative
	}
	return d, nil
}
