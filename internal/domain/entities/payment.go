package entities

import "time"

type PaymentTransactionStatus string

const (
	PaymentTransactionPending   PaymentTransactionStatus = "pending"
	PaymentTransactionConfirmed PaymentTransactionStatus = "confirmed"
	PaymentTransactionFailed    PaymentTransactionStatus = "failed"
)

// PaymentTransaction records an incoming transfer reconciled against an order
// by its payment reference code.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
type PaymentTransaction struct {
	ID            string                   `json:"id"`
	OrderID       string                   `json:"order_id"`
	Amount        float64                  `json:"amount"`
	ReferenceCode string                   `json:"reference_code"`
	TransactionID string                   `json:"transaction_id,omitempty"`
	Status        PaymentTransactionStatus `json:"status"`
	ConfirmedAt   *time.Time               `json:"confirmed_at,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}
