package request

import "strings"

// PaymentConfirmationRequest reports an incoming transfer carrying an order's
// reference code. TransactionID is the provider's id and is only needed when
// gateway verification is enabled.
type PaymentConfirmationRequest struct {
	ReferenceCode string  `json:"reference_code" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	TransactionID string  `json:"transaction_id"`
}

func (r PaymentConfirmationRequest) ResolveReference() string {
	return strings.TrimSpace(r.ReferenceCode)
}
