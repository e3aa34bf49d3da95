package entities

import (
	"errors"
	"math"
)

// Pricing rules. Both computation paths are pure: they take prices in and
// return the derived fields without touching any order state.
//
//   - Supplier-quote path: fixed 20% margin on the quoted price. AdminMargin
//     holds the absolute profit (final - supplier), matching the legacy
//     storage format.
//   - Admin-override path: the admin supplies a margin percentage applied to
//     the lowest quote.
//
// All monetary values are rounded to 2 decimal places. Anything above
// MaxPrice is rejected with ErrPriceOutOfRange.

var ErrPriceOutOfRange = errors.New("computed price out of range")

const (
	// MaxPrice is the largest representable monetary value, inherited from
	// the NUMERIC(10,2) columns of the original schema.
	MaxPrice = 99999999.99

	// QuoteMarginRate is the fixed margin applied to supplier quotes.
	QuoteMarginRate = 0.20
)

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// QuotePricing derives the customer-facing price from a supplier quote.
// Returns the final price and the absolute profit stored in AdminMargin.
func QuotePricing(supplierPrice float64) (finalPrice, profit float64, err error) {
	supplierPrice = Round2(supplierPrice)
	finalPrice = Round2(supplierPrice * (1 + QuoteMarginRate))
	profit = Round2(finalPrice - supplierPrice)
	if finalPrice > MaxPrice || profit > MaxPrice {
		return 0, 0, ErrPriceOutOfRange
	}
	return finalPrice, profit, nil
}

// MarginPricing derives the customer-facing price from the lowest quote and
// an admin-specified margin percentage.
func MarginPricing(lowestQuotePrice, marginPercent float64) (float64, error) {
	finalPrice := Round2(lowestQuotePrice * (1 + marginPercent/100))
	if finalPrice > MaxPrice {
		return 0, ErrPriceOutOfRange
	}
	return finalPrice, nil
}
