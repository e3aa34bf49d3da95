package interfaces

import (
	"context"

	"orderhub/internal/domain/entities"
)

// IHistoryRepository reads the append-only status ledger. Rows are written
// exclusively inside order transactions; there is no standalone append.

type IHistoryRepository interface {
	ListByOrderID(ctx context.Context, orderID string) ([]entities.OrderStatusHistory, error)
}
