package interfaces

import (
	"context"

	"orderhub/internal/domain/entities"
)

// QuoteAssignmentCommand is the first-quote-wins submission: insert the quote,
// claim the order for the supplier and move it to price_quoted, all in one
// transaction guarded by "assigned_supplier_id absent".
type QuoteAssignmentCommand struct {
	Quote           entities.SupplierQuote
	FromStatus      entities.OrderStatus
	ExpectedVersion int64
	Pricing         PricingFields
	Notes           string
}

// QuoteUpdateCommand re-prices an existing quote without touching the order
// status. The order update is conditioned on the supplier still being the
// assigned one.
type QuoteUpdateCommand struct {
	Quote           entities.SupplierQuote
	ExpectedVersion int64
	Pricing         PricingFields
}

// IQuoteRepository abstracts DynamoDB persistence for SupplierQuote.
//
// Quotes are keyed by (order_id, supplier_id). Deletion happens only as the
// cascade of the customer-edit transition, carried out by IOrderRepository.

type IQuoteRepository interface {
	GetByOrderAndSupplier(ctx context.Context, orderID, supplierID string) (entities.SupplierQuote, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.SupplierQuote, error)

	CreateWithAssignment(ctx context.Context, cmd QuoteAssignmentCommand) (entities.SupplierQuote, entities.Order, error)
	UpdateWithPricing(ctx context.Context, cmd QuoteUpdateCommand) (entities.SupplierQuote, entities.Order, error)
}
