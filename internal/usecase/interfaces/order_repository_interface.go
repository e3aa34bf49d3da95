package interfaces

import (
	"context"
	"time"

	"orderhub/internal/domain/entities"
)

// PricingFields is the derived price set written by a transition.
type PricingFields struct {
	SupplierPrice float64
	AdminMargin   float64
	FinalPrice    float64
}

// TransitionCommand describes one atomic status transition: the conditional
// order update plus its history row. The repository applies both in a single
// transaction; no reader may observe one without the other.
//
// The write is conditioned on FromStatus and ExpectedVersion; a lost race
// surfaces as ErrConditionFailed and leaves the order untouched.
type TransitionCommand struct {
	OrderID         string
	FromStatus      entities.OrderStatus
	ToStatus        entities.OrderStatus
	ExpectedVersion int64

	// Optional field changes riding on the transition.
	Content             *ContentUpdate
	Pricing             *PricingFields
	ClearPricing        bool
	AssignSupplierID    string
	SupplierImageURL    string
	SupplierCompletedAt *time.Time
	DeleteQuoteIDs      []string // supplier ids whose quotes are removed (customer-edit cascade)

	Notes     string
	ChangedBy string
}

// ContentUpdate carries the customer-editable fields of an order.
type ContentUpdate struct {
	Title           string
	Description     string
	Quantity        int
	ProductLink     string
	DeliveryAddress string
	PhoneNumber     string
	UploadedFiles   []entities.UploadedFile
	FilesUploadedAt *time.Time
}

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// Lookups return the zero Order when nothing matches. Every mutation is a
// single conditional write or transaction keyed on the caller-supplied
// expected status/version.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order, h entities.OrderStatusHistory) (entities.Order, error)
	NextOrderNumber(ctx context.Context) (int64, error)

	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByPaymentReference(ctx context.Context, reference string) (entities.Order, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]entities.Order, error)
	ListByAssignedSupplierID(ctx context.Context, supplierID string) ([]entities.Order, error)
	ListByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error)
	ListAll(ctx context.Context) ([]entities.Order, error)

	TransitionStatus(ctx context.Context, cmd TransitionCommand) (entities.Order, error)
	UpdateContent(ctx context.Context, orderID string, expectedVersion int64, content ContentUpdate) (entities.Order, error)
	SetPaymentReference(ctx context.Context, orderID, reference string) (entities.Order, error)
	StampPaymentConfirmed(ctx context.Context, orderID string, at time.Time) (entities.Order, error)

	// Delete hard-deletes the order and cascades to its quotes and history.
	// Administrative escape hatch; it knowingly breaks the append-only
	// history guarantee.
	Delete(ctx context.Context, orderID string) error
}
