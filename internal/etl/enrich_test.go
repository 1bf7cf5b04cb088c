package etl

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func rawOrder(id, product, customer, date, qty, price string) RawOrder {
	return RawOrder{
		Line:       2,
		OrderID:    id,
		ProductID:  product,
		CustomerID: customer,
		OrderDate:  date,
		Quantity:   qty,
		Price:      price,
	}
}

func TestEnrichRevenue(t *testing.T) {
	tests := []struct {
		qty     string
		price   string
		revenue string
	}{
		{"2", "9.99", "19.98"},
		{"3", "0.1", "0.3"},
		{"0", "15.00", "0"},
		{"7", "0", "0"},
		{"1000000", "123456.789", "123456789000"},
		{"3", "33.333333333333333333", "99.999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.qty+"x"+tt.price, func(t *testing.T) {
			orders, err := Enrich("orders.csv",
				[]RawOrder{rawOrder("1", "P1", "C1", "2024-01-05", tt.qty, tt.price)}, nil)
			if err != nil {
				t.Fatalf("Enrich failed: %v", err)
			}
			want := decimal.RequireFromString(tt.revenue)
			if !orders[0].Revenue.Equal(want) {
				t.Errorf("Expected Revenue %s, got %s", want, orders[0].Revenue)
			}
			q := decimal.NewFromInt(orders[0].Quantity)
			if !orders[0].Revenue.Equal(q.Mul(orders[0].Price)) {
				t.Errorf("Revenue %s != Quantity %s x Price %s",
					orders[0].Revenue, q, orders[0].Price)
			}
		})
	}
}

func TestEnrichDateParts(t *testing.T) {
	tests := []struct {
		value string
		year  int
		month int
		day   int
	}{
		{"2024-01-05", 2024, 1, 5},
		{"2024/12/31", 2024, 12, 31},
		{"02/29/2024", 2024, 2, 29},
		{"2023-07-04 23:59:59", 2023, 7, 4},
		{"2023-07-04T23:30:00-05:00", 2023, 7, 4},
		{"  2022-03-01 ", 2022, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			orders, err := Enrich("orders.csv",
				[]RawOrder{rawOrder("1", "P1", "C1", tt.value, "1", "1")}, DefaultDateLayouts)
			if err != nil {
				t.Fatalf("Enrich failed: %v", err)
			}
			o := orders[0]
			if o.OrderYear != tt.year || o.OrderMonth != tt.month || o.OrderDay != tt.day {
				t.Errorf("Expected %d-%d-%d, got %d-%d-%d",
					tt.year, tt.month, tt.day, o.OrderYear, o.OrderMonth, o.OrderDay)
			}
			rebuilt := Date{Year: o.OrderYear, Month: time.Month(o.OrderMonth), Day: o.OrderDay}
			if rebuilt != o.OrderDate {
				t.Errorf("Reconstructed date %s != OrderDate %s", rebuilt, o.OrderDate)
			}
		})
	}
}

func TestEnrichTrimsKeys(t *testing.T) {
	orders, err := Enrich("orders.csv",
		[]RawOrder{rawOrder(" 42 ", " P1 ", " C1 ", "2024-01-05", " 2 ", " 1.50 ")}, nil)
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	o := orders[0]
	if o.OrderID != 42 || o.ProductID != "P1" || o.CustomerID != "C1" {
		t.Errorf("Keys not trimmed: %d %q %q", o.OrderID, o.ProductID, o.CustomerID)
	}
	if o.Quantity != 2 || !o.Price.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("Unexpected quantity/price: %d %s", o.Quantity, o.Price)
	}
}

func TestEnrichInvalidRecord(t *testing.T) {
	tests := []struct {
		name  string
		row   RawOrder
		field string
	}{
		{"non numeric order id", rawOrder("A1", "P1", "C1", "2024-01-05", "1", "1"), "OrderID"},
		{"empty order id", rawOrder("", "P1", "C1", "2024-01-05", "1", "1"), "OrderID"},
		{"empty product id", rawOrder("1", " ", "C1", "2024-01-05", "1", "1"), "ProductID"},
		{"empty customer id", rawOrder("1", "P1", "", "2024-01-05", "1", "1"), "CustomerID"},
		{"fractional quantity", rawOrder("1", "P1", "C1", "2024-01-05", "1.5", "1"), "Quantity"},
		{"negative quantity", rawOrder("1", "P1", "C1", "2024-01-05", "-1", "1"), "Quantity"},
		{"missing quantity", rawOrder("1", "P1", "C1", "2024-01-05", "", "1"), "Quantity"},
		{"text price", rawOrder("1", "P1", "C1", "2024-01-05", "1", "abc"), "Price"},
		{"negative price", rawOrder("1", "P1", "C1", "2024-01-05", "1", "-0.01"), "Price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Enrich("orders.csv", []RawOrder{tt.row}, nil)
			var rec *InvalidRecordError
			if !errors.As(err, &rec) {
				t.Fatalf("Expected InvalidRecordError, got %v", err)
			}
			if rec.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, rec.Field)
			}
			if rec.Line != 2 {
				t.Errorf("Expected line 2, got %d", rec.Line)
			}
			if ExitCode(err) != ExitInvalidRecord {
				t.Errorf("Expected exit code %d, got %d", ExitInvalidRecord, ExitCode(err))
			}
		})
	}
}

func TestEnrichInvalidDate(t *testing.T) {
	for _, value := range []string{"", "2024-13-01", "2023-02-29", "yesterday", "05.01.2024"} {
		t.Run(value, func(t *testing.T) {
			_, err := Enrich("orders.csv",
				[]RawOrder{rawOrder("9", "P1", "C1", value, "1", "1")}, nil)
			var dateErr *InvalidDateError
			if !errors.As(err, &dateErr) {
				t.Fatalf("Expected InvalidDateError, got %v", err)
			}
			if dateErr.OrderID != 9 {
				t.Errorf("Expected OrderID 9, got %d", dateErr.OrderID)
			}
		})
	}
}

func TestEnrichCustomLayouts(t *testing.T) {
	rows := []RawOrder{rawOrder("1", "P1", "C1", "05.01.2024", "1", "1")}

	orders, err := Enrich("orders.csv", rows, []string{"02.01.2006"})
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if orders[0].OrderDate != (Date{Year: 2024, Month: time.January, Day: 5}) {
		t.Errorf("Unexpected date %s", orders[0].OrderDate)
	}

	if _, err := Enrich("orders.csv",
		[]RawOrder{rawOrder("1", "P1", "C1", "2024-01-05", "1", "1")},
		[]string{"02.01.2006"}); err == nil {
		t.Error("Expected default layout to be rejected when layouts are configured")
	}
}

func TestEnrichStopsAtFirstBadRow(t *testing.T) {
	rows := []RawOrder{
		rawOrder("1", "P1", "C1", "2024-01-05", "1", "1"),
		{Line: 3, OrderID: "2", ProductID: "P1", CustomerID: "C1", OrderDate: "bad", Quantity: "1", Price: "1"},
		{Line: 4, OrderID: "x", ProductID: "P1", CustomerID: "C1", OrderDate: "2024-01-05", Quantity: "1", Price: "1"},
	}

	orders, err := Enrich("orders.csv", rows, nil)
	if orders != nil {
		t.Error("Expected no orders on failure")
	}
	var dateErr *InvalidDateError
	if !errors.As(err, &dateErr) || dateErr.Line != 3 {
		t.Errorf("Expected InvalidDateError on line 3, got %v", err)
	}
}
