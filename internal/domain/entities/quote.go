package entities

import "time"

// SupplierQuote is a supplier's proposed price for an order. At most one quote
// exists per (order, supplier) pair; re-submission updates in place.
//
// Storage model (DynamoDB):
//   - PK: order_id
//   - SK: supplier_id
type SupplierQuote struct {
	OrderID    string    `json:"order_id"`
	SupplierID string    `json:"supplier_id"`
	Price      float64   `json:"price"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LowestQuote returns the cheapest quote of the set. Ties are broken by
// whichever quote is encountered first; the ordering of equal-priced quotes is
// not guaranteed stable. ok is false for an empty set.
func LowestQuote(quotes []SupplierQuote) (SupplierQuote, bool) {
	if len(quotes) == 0 {
		return SupplierQuote{}, false
	}
	lowest := quotes[0]
	for _, q := range quotes[1:] {
		if q.Price < lowest.Price {
			lowest = q
		}
	}
	return lowest, true
}
