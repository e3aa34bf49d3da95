package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts the external financial provider (e.g. Mercado
// Pago). The service uses it to verify a reported transaction before
// confirming an order's payment; the raw provider payload is kept for
// traceability.
type IPaymentGateway interface {
	GetPayment(ctx context.Context, providerPaymentID string) (status string, amount float64, providerResponse json.RawMessage, err error)
}
