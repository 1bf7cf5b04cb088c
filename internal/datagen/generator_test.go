package datagen

import (
	"reflect"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-salesload/internal/etl"
)

func testSampleConfig() SampleConfig {
	return SampleConfig{
		Orders:    200,
		Products:  10,
		Customers: 25,
		Start:     time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC),
		Days:      31,
	}
}

func TestGenerateCounts(t *testing.T) {
	s := NewGenerator(7).Generate(testSampleConfig())

	if len(s.Orders) != 200 {
		t.Errorf("Expected 200 orders, got %d", len(s.Orders))
	}
	if len(s.Products) != 10 {
		t.Errorf("Expected 10 products, got %d", len(s.Products))
	}
	if s.Products[0].ProductID != "P0001" {
		t.Errorf("Expected first ProductID P0001, got %s", s.Products[0].ProductID)
	}
	if s.Orders[0].Line != 2 {
		t.Errorf("Expected first order on line 2, got %d", s.Orders[0].Line)
	}
}

func TestGenerateSeeded(t *testing.T) {
	a := NewGenerator(99).Generate(testSampleConfig())
	b := NewGenerator(99).Generate(testSampleConfig())

	if !reflect.DeepEqual(a, b) {
		t.Error("Same seed produced different samples")
	}
}

func TestGenerateDatesWithinWindow(t *testing.T) {
	cfg := testSampleConfig()
	s := NewGenerator(3).Generate(cfg)

	first := etl.Date{Year: 2024, Month: time.March, Day: 1}
	last := etl.Date{Year: 2024, Month: time.March, Day: 31}
	for _, o := range s.Orders {
		d, ok := etl.ParseDate(o.OrderDate, etl.DefaultDateLayouts)
		if !ok {
			t.Fatalf("Generated unparseable date %q", o.OrderDate)
		}
		if d.Before(first) || last.Before(d) {
			t.Errorf("Date %s outside window", d)
		}
	}
}

func TestGenerateTransformsCleanly(t *testing.T) {
	s := NewGenerator(11).Generate(testSampleConfig())

	ds, err := etl.Transform(etl.Inputs{
		OrdersSource:   "orders.csv",
		Orders:         s.Orders,
		ProductsSource: "products.csv",
		Products:       s.Products,
	}, etl.DefaultOptions())
	if err != nil {
		t.Fatalf("Transform of generated sample failed: %v", err)
	}
	if len(ds.Facts) != 200 {
		t.Errorf("Expected 200 facts, got %d", len(ds.Facts))
	}
	if ds.UnmatchedOrders != 0 {
		t.Errorf("Expected every order to match a product, got %d unmatched", ds.UnmatchedOrders)
	}
	if len(ds.Customers) > 25 {
		t.Errorf("Expected at most 25 customers, got %d", len(ds.Customers))
	}
}

func TestGenerateUnknownProducts(t *testing.T) {
	cfg := testSampleConfig()
	cfg.UnknownProductRate = 1
	s := NewGenerator(5).Generate(cfg)

	known := make(map[string]bool)
	for _, p := range s.Products {
		known[p.ProductID] = true
	}
	for _, o := range s.Orders {
		if known[o.ProductID] {
			t.Fatalf("Order %s references known product %s", o.OrderID, o.ProductID)
		}
	}
}
