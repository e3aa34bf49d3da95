package entities

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQuotePricing(t *testing.T) {
	t.Run("fixed 20 percent margin", func(t *testing.T) {
		final, profit, err := QuotePricing(10.00)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !almostEqual(final, 12.00) {
			t.Fatalf("expected final 12.00, got %v", final)
		}
		if !almostEqual(profit, 2.00) {
			t.Fatalf("expected profit 2.00, got %v", profit)
		}
	})

	t.Run("rounds to 2 decimals", func(t *testing.T) {
		final, profit, err := QuotePricing(10.99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 10.99 * 1.2 = 13.188 -> 13.19
		if !almostEqual(final, 13.19) {
			t.Fatalf("expected final 13.19, got %v", final)
		}
		if !almostEqual(profit, 2.20) {
			t.Fatalf("expected profit 2.20, got %v", profit)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		_, _, err := QuotePricing(MaxPrice)
		if !errors.Is(err, ErrPriceOutOfRange) {
			t.Fatalf("expected ErrPriceOutOfRange, got %v", err)
		}
	})
}

func TestMarginPricing(t *testing.T) {
	t.Run("percentage margin", func(t *testing.T) {
		final, err := MarginPricing(10.00, 25)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !almostEqual(final, 12.50) {
			t.Fatalf("expected final 12.50, got %v", final)
		}
	})

	t.Run("zero margin keeps lowest quote", func(t *testing.T) {
		final, err := MarginPricing(99.99, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !almostEqual(final, 99.99) {
			t.Fatalf("expected final 99.99, got %v", final)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := MarginPricing(MaxPrice, 50)
		if !errors.Is(err, ErrPriceOutOfRange) {
			t.Fatalf("expected ErrPriceOutOfRange, got %v", err)
		}
	})
}

func TestLowestQuote(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		if _, ok := LowestQuote(nil); ok {
			t.Fatalf("expected ok=false for empty set")
		}
	})

	t.Run("picks minimum", func(t *testing.T) {
		quotes := []SupplierQuote{
			{SupplierID: "s1", Price: 12.00},
			{SupplierID: "s2", Price: 9.50},
			{SupplierID: "s3", Price: 11.00},
		}
		q, ok := LowestQuote(quotes)
		if !ok || q.SupplierID != "s2" {
			t.Fatalf("expected s2, got %+v ok=%v", q, ok)
		}
	})

	t.Run("tie keeps first encountered", func(t *testing.T) {
		quotes := []SupplierQuote{
			{SupplierID: "s1", Price: 9.50},
			{SupplierID: "s2", Price: 9.50},
		}
		q, _ := LowestQuote(quotes)
		if q.SupplierID != "s1" {
			t.Fatalf("expected first quote to win the tie, got %s", q.SupplierID)
		}
	})
}
