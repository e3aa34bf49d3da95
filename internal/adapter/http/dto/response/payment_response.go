package response

import (
	"time"

	"orderhub/internal/domain/entities"
)

type PaymentResponse struct {
	ID            string     `json:"id,omitempty"`
	OrderID       string     `json:"order_id"`
	Amount        float64    `json:"amount"`
	ReferenceCode string     `json:"reference_code,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	Status        string     `json:"status"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func FromPayment(p entities.PaymentTransaction) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		ReferenceCode: p.ReferenceCode,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		ConfirmedAt:   p.ConfirmedAt,
		CreatedAt:     p.CreatedAt,
	}
}

// PaymentReferenceResponse is returned when a customer requests the transfer
// code for a priced order.
type PaymentReferenceResponse struct {
	OrderID          string   `json:"order_id"`
	PaymentReference string   `json:"payment_reference"`
	FinalPrice       *float64 `json:"final_price,omitempty"`
}

func FromOrderPaymentReference(o entities.Order) PaymentReferenceResponse {
	return PaymentReferenceResponse{
		OrderID:          o.ID,
		PaymentReference: o.PaymentReference,
		FinalPrice:       o.FinalPrice,
	}
}
