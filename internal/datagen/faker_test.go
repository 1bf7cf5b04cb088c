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
	"testing"
)

func TestNewFaker(t *testing.T) {
	f := NewFaker()
	if f == nil {
		t.Fatal("NewFaker returned nil")
	}
	if f.faker == nil {
		t.Fatal("faker field is nil")
	}
}

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
}

func TestFakerProduct(t *testing.T) {
	f := NewFaker()
	if f.ProductName() == "" {
		t.Error("ProductName returned empty string")
	}
	if f.ProductCategory() == "" {
		t.Error("ProductCategory returned empty string")
	}
}

func TestFakerRanges(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 100; i++ {
		if p := f.Price(1, 500); p < 1 || p > 500 {
			t.Errorf("Price out of range: %f", p)
		}
		if v := f.Int(3, 7); v < 3 || v > 7 {
			t.Errorf("Int out of range: %d", v)
		}
		if v := f.Float64(0.3, 0.8); v < 0.3 || v > 0.8 {
			t.Errorf("Float64 out of range: %f", v)
		}
	}
}

func TestChoose(t *testing.T) {
	f := NewFaker()
	items := []string{"a", "b", "c"}
	for i := 0; i < 20; i++ {
		got := Choose(f, items)
		if got != "a" && got != "b" && got != "c" {
			t.Errorf("Choose returned element not in slice: %q", got)
		}
	}

	if got := Choose(f, []int{}); got != 0 {
		t.Errorf("Expected zero value from empty slice, got %d", got)
	}
}
