package interfaces

import (
	"context"

	"orderhub/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for PaymentTransaction.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.PaymentTransaction) (entities.PaymentTransaction, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.PaymentTransaction, error)
}
