package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrOrderNotEditable    = errors.New("order not editable")
	ErrOrderNotCancelable  = errors.New("order not cancelable")
	ErrNoQuotesAvailable   = errors.New("no quotes available")
	ErrPriceAlreadySet     = errors.New("final price already set")
	ErrConcurrencyConflict = errors.New("concurrent update conflict")
	ErrNotOrderOwner       = errors.New("actor does not own this order")
	ErrNotAssignedSupplier = errors.New("actor is not the assigned supplier")
	ErrNotAuthorized       = errors.New("actor not authorized for this operation")
	ErrInvalidOrderID      = errors.New("invalid order id")
	ErrInvalidTitle        = errors.New("invalid title")
	ErrInvalidDescription  = errors.New("invalid description")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidMargin       = errors.New("invalid margin")
	ErrNoFilesProvided     = errors.New("no files provided")
)

// OrderContentInput carries the customer-owned content fields used by both
// order creation and content edits.
type OrderContentInput struct {
	Title           string
	Description     string
	Quantity        int
	ProductLink     string
	DeliveryAddress string
	PhoneNumber     string
	Files           []entities.UploadedFile
}

// IOrderUseCase exposes the order lifecycle operations.
//
// Every status mutation goes through the transition table and lands in the
// store together with its history row; a rejected operation leaves both
// untouched.

type IOrderUseCase interface {
	CreateOrder(ctx context.Context, customerID string, in OrderContentInput) (entities.Order, error)
	GetOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
	ListOrders(ctx context.Context, actor entities.Actor) ([]entities.Order, error)

	EditOrderContent(ctx context.Context, actor entities.Actor, orderID string, in OrderContentInput) (entities.Order, error)
	AttachFiles(ctx context.Context, actor entities.Actor, orderID string, files []entities.UploadedFile) (entities.Order, error)
	CancelOrder(ctx context.Context, actor entities.Actor, orderID, notes string) (entities.Order, error)

	ApproveOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
	RejectOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
	SetFinalPrice(ctx context.Context, actor entities.Actor, orderID string, marginPercent float64) (entities.Order, error)
	MarkDelivered(ctx context.Context, actor entities.Actor, orderID, notes string) (entities.Order, error)
	DeleteOrder(ctx context.Context, actor entities.Actor, orderID string) error

	CompleteProduction(ctx context.Context, actor entities.Actor, orderID, imageURL string) (entities.Order, error)
	StartTransit(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
	RevertToProduction(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
}

type OrderUseCase struct {
	orders    interfaces.IOrderRepository
	quotes    interfaces.IQuoteRepository
	history   interfaces.IHistoryRepository
	publisher interfaces.IEventPublisher

	// moderation makes new orders start in admin_review instead of
	// request_created.
	moderation bool
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	orders interfaces.IOrderRepository,
	quotes interfaces.IQuoteRepository,
	history interfaces.IHistoryRepository,
	publisher interfaces.IEventPublisher,
	moderation bool,
) *OrderUseCase {
	return &OrderUseCase{
		orders:     orders,
		quotes:     quotes,
		history:    history,
		publisher:  publisher,
		moderation: moderation,
	}
}

func validateContent(in *OrderContentInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return ErrInvalidTitle
	}
	if in.Description == "" {
		return ErrInvalidDescription
	}
	if in.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, customerID string, in OrderContentInput) (entities.Order, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return entities.Order{}, ErrNotAuthorized
	}
	if err := validateContent(&in); err != nil {
		return entities.Order{}, err
	}

	number, err := u.orders.NextOrderNumber(ctx)
	if err != nil {
		log.Printf("[order][usecase] failed allocating order number err=%v", err)
		return entities.Order{}, err
	}

	initial := entities.StatusRequestCreated
	if u.moderation {
		initial = entities.StatusAdminReview
	}

	now := time.Now().UTC()
	o := entities.Order{
		ID:              uuid.NewString(),
		OrderNumber:     number,
		CustomerID:      customerID,
		Title:           in.Title,
		Description:     in.Description,
		Quantity:        in.Quantity,
		ProductLink:     in.ProductLink,
		DeliveryAddress: in.DeliveryAddress,
		PhoneNumber:     in.PhoneNumber,
		UploadedFiles:   in.Files,
		Status:          initial,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if len(in.Files) > 0 {
		o.FilesUploadedAt = &now
	}

	h := entities.OrderStatusHistory{
		OrderID:   o.ID,
		Seq:       1,
		Status:    initial,
		Notes:     "Order created",
		ChangedBy: customerID,
		CreatedAt: now,
	}

	created, err := u.orders.Create(ctx, o, h)
	if err != nil {
		log.Printf("[order][usecase] create failed order_number=%d err=%v", number, err)
		return entities.Order{}, err
	}

	log.Printf("[order][usecase] order created id=%s order_number=%d status=%s", created.ID, created.OrderNumber, created.Status)
	u.publishOrderChanged(created, "order.created")
	return created, nil
}

func (u *OrderUseCase) loadOrder(ctx context.Context, orderID string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) GetOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	quotes, err := u.quotes.ListByOrderID(ctx, o.ID)
	if err != nil {
		return entities.Order{}, err
	}
	hist, err := u.history.ListByOrderID(ctx, o.ID)
	if err != nil {
		return entities.Order{}, err
	}
	o.Quotes = quotes
	o.History = hist

	if err := authorizeOrderRead(o, actor); err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

// authorizeOrderRead applies per-role visibility: customers see their own
// orders, suppliers see open requests and orders they quoted or were assigned
// to, admins see everything.
func authorizeOrderRead(o entities.Order, actor entities.Actor) error {
	switch actor.Role {
	case entities.RoleAdmin:
		return nil
	case entities.RoleCustomer:
		if o.CustomerID != actor.ID {
			return ErrNotOrderOwner
		}
		return nil
	case entities.RoleSupplier:
		if o.Status == entities.StatusRequestCreated || o.AssignedSupplierID == actor.ID {
			return nil
		}
		for _, q := range o.Quotes {
			if q.SupplierID == actor.ID {
				return nil
			}
		}
		return ErrNotAuthorized
	default:
		if actor.IsSystem() {
			return nil
		}
		return ErrNotAuthorized
	}
}

func (u *OrderUseCase) ListOrders(ctx context.Context, actor entities.Actor) ([]entities.Order, error) {
	switch actor.Role {
	case entities.RoleCustomer:
		return u.orders.ListByCustomerID(ctx, actor.ID)
	case entities.RoleSupplier:
		open, err := u.orders.ListByStatus(ctx, entities.StatusRequestCreated)
		if err != nil {
			return nil, err
		}
		assigned, err := u.orders.ListByAssignedSupplierID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		return append(open, assigned...), nil
	case entities.RoleAdmin:
		return u.orders.ListAll(ctx)
	default:
		return nil, ErrNotAuthorized
	}
}

func (u *OrderUseCase) EditOrderContent(ctx context.Context, actor entities.Actor, orderID string, in OrderContentInput) (entities.Order, error) {
	if err := validateContent(&in); err != nil {
		return entities.Order{}, err
	}

	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if actor.Role != entities.RoleAdmin && o.CustomerID != actor.ID {
		return entities.Order{}, ErrNotOrderOwner
	}
	if !o.Editable() {
		return entities.Order{}, ErrOrderNotEditable
	}

	content := interfaces.ContentUpdate{
		Title:           in.Title,
		Description:     in.Description,
		Quantity:        in.Quantity,
		ProductLink:     in.ProductLink,
		DeliveryAddress: in.DeliveryAddress,
		PhoneNumber:     in.PhoneNumber,
		UploadedFiles:   append(o.UploadedFiles, in.Files...),
		FilesUploadedAt: o.FilesUploadedAt,
	}
	if len(in.Files) > 0 {
		now := time.Now().UTC()
		content.FilesUploadedAt = &now
	}

	updated, err := u.applyContentUpdate(ctx, actor, o, content,
		"Order updated by customer - status reset to request created, old quotes removed")
	if err != nil {
		return entities.Order{}, err
	}

	u.publishOrderChanged(updated, "order.changed")
	return updated, nil
}

// applyContentUpdate writes new customer content. A quoted order invalidates
// every quote on any content change: prices reset, quotes are deleted and the
// order drops back to request_created so suppliers quote the new content.
func (u *OrderUseCase) applyContentUpdate(ctx context.Context, actor entities.Actor, o entities.Order, content interfaces.ContentUpdate, cascadeNotes string) (entities.Order, error) {
	if o.Status != entities.StatusPriceQuoted {
		updated, err := u.orders.UpdateContent(ctx, o.ID, o.Version, content)
		if err != nil {
			return entities.Order{}, mapConditionErr(err)
		}
		return updated, nil
	}

	quotes, err := u.quotes.ListByOrderID(ctx, o.ID)
	if err != nil {
		return entities.Order{}, err
	}
	supplierIDs := make([]string, 0, len(quotes))
	for _, q := range quotes {
		supplierIDs = append(supplierIDs, q.SupplierID)
	}

	updated, err := u.orders.TransitionStatus(ctx, interfaces.TransitionCommand{
		OrderID:         o.ID,
		FromStatus:      entities.StatusPriceQuoted,
		ToStatus:        entities.StatusRequestCreated,
		ExpectedVersion: o.Version,
		Content:         &content,
		ClearPricing:    true,
		DeleteQuoteIDs:  supplierIDs,
		Notes:           cascadeNotes,
		ChangedBy:       actor.ID,
	})
	if err != nil {
		return entities.Order{}, mapConditionErr(err)
	}
	return updated, nil
}

func (u *OrderUseCase) AttachFiles(ctx context.Context, actor entities.Actor, orderID string, files []entities.UploadedFile) (entities.Order, error) {
	if len(files) == 0 {
		return entities.Order{}, ErrNoFilesProvided
	}
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if actor.Role != entities.RoleAdmin && o.CustomerID != actor.ID {
		return entities.Order{}, ErrNotOrderOwner
	}
	if !o.Editable() {
		return entities.Order{}, ErrOrderNotEditable
	}

	now := time.Now().UTC()
	content := interfaces.ContentUpdate{
		Title:           o.Title,
		Description:     o.Description,
		Quantity:        o.Quantity,
		ProductLink:     o.ProductLink,
		DeliveryAddress: o.DeliveryAddress,
		PhoneNumber:     o.PhoneNumber,
		UploadedFiles:   append(o.UploadedFiles, files...),
		FilesUploadedAt: &now,
	}

	updated, err := u.applyContentUpdate(ctx, actor, o, content,
		"Order files updated by customer - status reset to request created, old quotes removed")
	if err != nil {
		return entities.Order{}, err
	}
	u.publishOrderChanged(updated, "order.changed")
	return updated, nil
}

func (u *OrderUseCase) CancelOrder(ctx context.Context, actor entities.Actor, orderID, notes string) (entities.Order, error) {
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if actor.Role == entities.RoleCustomer && o.CustomerID != actor.ID {
		return entities.Order{}, ErrNotOrderOwner
	}
	if !entities.CanTransition(o.Status, entities.StatusCanceled, actor) {
		return entities.Order{}, ErrOrderNotCancelable
	}

	if notes == "" {
		switch actor.Role {
		case entities.RoleCustomer:
			notes = "Order cancelled by customer"
		case entities.RoleAdmin:
			notes = "Order cancelled by admin"
		default:
			notes = "Order cancelled"
		}
	}

	updated, err := u.orders.TransitionStatus(ctx, interfaces.TransitionCommand{
		OrderID:         o.ID,
		FromStatus:      o.Status,
		ToStatus:        entities.StatusCanceled,
		ExpectedVersion: o.Version,
		Notes:           notes,
		ChangedBy:       actor.ID,
	})
	if err != nil {
		return entities.Order{}, mapConditionErr(err)
	}

	log.Printf("[order][usecase] order cancelled id=%s by=%s", updated.ID, actor.ID)
	u.publishOrderChanged(updated, "order.changed")
	return updated, nil
}

func (u *OrderUseCase) ApproveOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	return u.adminTransition(ctx, actor, orderID, entities.StatusRequestCreated,
		"Order approved by admin and sent to suppliers")
}

func (u *OrderUseCase) RejectOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	return u.adminTransition(ctx, actor, orderID, entities.StatusCanceled, "Order rejected by admin")
}

func (u *OrderUseCase) MarkDelivered(ctx context.Context, actor entities.Actor, orderID, notes string) (entities.Order, error) {
	if notes == "" {
		notes = "Order delivered"
	}
	return u.adminTransition(ctx, actor, orderID, entities.StatusDelivered, notes)
}

func (u *OrderUseCase) adminTransition(ctx context.Context, actor entities.Actor, orderID string, to entities.OrderStatus, notes string) (entities.Order, error) {
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !entities.CanTransition(o.Status, to, actor) {
		return entities.Order{}, ErrInvalidTransition
	}

	updated, err := u.orders.TransitionStatus(ctx, interfaces.TransitionCommand{
		OrderID:         o.ID,
		FromStatus:      o.Status,
		ToStatus:        to,
		ExpectedVersion: o.Version,
		Notes:           notes,
		ChangedBy:       actor.ID,
	})
	if err != nil {
		return entities.Order{}, mapConditionErr(err)
	}

	log.Printf("[order][usecase] status updated id=%s %s -> %s by=%s", updated.ID, o.Status, to, actor.ID)
	u.publishOrderChanged(updated, "order.changed")
	return updated, nil
}

func (u *OrderUseCase) SetFinalPrice(ctx context.Context, actor entities.Actor, orderID string, marginPercent float64) (entities.Order, error) {
	if marginPercent < 0 {
		return entities.Order{}, ErrInvalidMargin
	}

	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !entities.CanTransition(o.Status, entities.StatusPaymentConfirmed, actor) {
		return entities.Order{}, ErrInvalidTransition
	}
	if o.FinalPrice != nil {
		return entities.Order{}, ErrPriceAlreadySet
	}

	quotes, err := u.quotes.ListByOrderID(ctx, o.ID)
	if err != nil {
		return entities.Order{}, err
	}
	lowest, ok := entities.LowestQuote(quotes)
	if !ok {
		return entities.Order{}, ErrNoQuotesAvailable
	}

	finalPrice, err := entities.MarginPricing(lowest.Price, marginPercent)
	if err != nil {
		return entities.Order{}, err
	}

	updated, err := u.orders.TransitionStatus(ctx, interfaces.TransitionCommand{
		OrderID:         o.ID,
		FromStatus:      o.Status,
		ToStatus:        entities.StatusPaymentConfirmed,
		ExpectedVersion: o.Version,
		Pricing: &interfaces.PricingFields{
			SupplierPrice: lowest.Price,
			AdminMargin:   marginPercent,
			FinalPrice:    finalPrice,
		},
		Notes:     fmt.Sprintf("Final price set: $%.2f (Supplier: $%.2f, Margin: %g%%)", finalPrice, lowest.Price, marginPercent),
		ChangedBy: actor.ID,
	})
	if err != nil {
		return entities.Order{}, mapConditionErr(err)
	}

	log.Printf("[order][usecase] final price set id=%s final=%.2f margin=%g", updated.ID, finalPrice, marginPercent)
	u.publishOrderChanged(updated, "order.changed")
	return updated, nil
}

func (u *OrderUseCase) CompleteProduction(ctx context.Context, actor entities.Actor, orderID, imageURL string) (entities.Order, error) {
	o, err := u.loadSupplierOrder(ctx, actor, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !entities.CanTransition(o.Status, entities.StatusProductionStarted, actor) {
		return entities.Order{}, ErrInvalidTransition
	}

	now := time.Now().UTC()
	updated, err := u.orders.TransitionStatus(ctx, interfaces.TransitionCommand{
		OrderID:             o.ID,
		FromStatus:          o.Status,
		ToStatus:            entities.StatusProductionStarted,
		ExpectedVersion:     o.Version,
		SupplierImageURL:    imageURL,
		SupplierCompletedAt: &now,
		Notes:               "Production started - completion image uploaded",
		ChangedBy:           actor.ID,
	})
	if err != nil {
		return entities.Order{}, mapConditionErr(err)
	}

	u.publishOrderChanged(updated, "order.changed")
	return updated, nil
}

func (u *OrderUseCase) StartTransit(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	return u.supplierTransition(ctx, actor, orderID, entities.StatusInTransit, "Order shipped by supplier")
}

func (u *OrderUseCase) RevertToProduction(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	return u.supplierTransition(ctx, actor, orderID, entities.StatusProductionStarted, "Order moved back to production by supplier")
}

func (u *OrderUseCase) supplierTransition(ctx context.Context, actor entities.Actor, orderID string, to entities.OrderStatus, notes string) (entities.Order, error) {
	o, err := u.loadSupplierOrder(ctx, actor, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !entities.CanTransition(o.Status, to, actor) {
		return entities.Order{}, ErrInvalidTransition
	}

	updated, err := u.orders.TransitionStatus(ctx, interfaces.TransitionCommand{
		OrderID:         o.ID,
		FromStatus:      o.Status,
		ToStatus:        to,
		ExpectedVersion: o.Version,
		Notes:           notes,
		ChangedBy:       actor.ID,
	})
	if err != nil {
		return entities.Order{}, mapConditionErr(err)
	}

	u.publishOrderChanged(updated, "order.changed")
	return updated, nil
}

// loadSupplierOrder loads the order and checks the acting supplier is the one
// assigned to it.
func (u *OrderUseCase) loadSupplierOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if actor.Role == entities.RoleSupplier && o.AssignedSupplierID != actor.ID {
		return entities.Order{}, ErrNotAssignedSupplier
	}
	return o, nil
}

func (u *OrderUseCase) DeleteOrder(ctx context.Context, actor entities.Actor, orderID string) error {
	if actor.Role != entities.RoleAdmin {
		return ErrNotAuthorized
	}
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if err := u.orders.Delete(ctx, o.ID); err != nil {
		log.Printf("[order][usecase] hard delete failed id=%s err=%v", o.ID, err)
		return err
	}
	log.Printf("[order][usecase] order hard-deleted id=%s order_number=%d by=%s", o.ID, o.OrderNumber, actor.ID)
	u.publishOrderChanged(o, "order.deleted")
	return nil
}

func mapConditionErr(err error) error {
	if errors.Is(err, interfaces.ErrConditionFailed) {
		return ErrConcurrencyConflict
	}
	return err
}

// publishOrderChanged notifies listeners on the event channel. Best-effort:
// failures are logged and never fail the request.
func (u *OrderUseCase) publishOrderChanged(o entities.Order, routingKey string) {
	if u.publisher == nil {
		return
	}
	evt := map[string]any{
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"customer_id":  o.CustomerID,
		"status":       o.Status,
		"updated_at":   o.UpdatedAt,
	}
	go func() {
		if err := u.publisher.Publish(context.Background(), routingKey, evt); err != nil {
			log.Printf("[order][usecase] failed publishing %s for order %s: %v", routingKey, o.ID, err)
		}
	}()
}
