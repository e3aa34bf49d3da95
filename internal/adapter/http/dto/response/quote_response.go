package response

import (
	"time"

	"orderhub/internal/domain/entities"
)

type QuoteResponse struct {
	OrderID    string    `json:"order_id"`
	SupplierID string    `json:"supplier_id"`
	Price      float64   `json:"price"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromQuote(q entities.SupplierQuote) QuoteResponse {
	return QuoteResponse{
		OrderID:    q.OrderID,
		SupplierID: q.SupplierID,
		Price:      q.Price,
		Notes:      q.Notes,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

func FromQuotes(quotes []entities.SupplierQuote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}

// QuoteSubmissionResponse pairs the stored quote with the order state it
// produced, so suppliers see the assignment outcome in one round trip.
type QuoteSubmissionResponse struct {
	Quote QuoteResponse `json:"quote"`
	Order OrderResponse `json:"order"`
}

func FromQuoteAndOrder(q entities.SupplierQuote, o entities.Order) QuoteSubmissionResponse {
	return QuoteSubmissionResponse{
		Quote: FromQuote(q),
		Order: FromOrder(o),
	}
}
