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
)

var (
	ErrAlreadyQuoted        = errors.New("supplier already quoted this order")
	ErrOrderAssignedToOther = errors.New("order assigned to another supplier")
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrInvalidQuotePrice    = errors.New("invalid quote price")
)

// IQuoteUseCase exposes the quote registry.
//
// SubmitQuote is the first-quote-wins path: the winning supplier's quote moves
// the order into price_quoted, derives the customer price at the fixed 20%
// margin and claims the order. UpdateQuote re-prices an existing quote without
// touching the status.

type IQuoteUseCase interface {
	SubmitQuote(ctx context.Context, actor entities.Actor, orderID string, price float64, notes string) (entities.SupplierQuote, entities.Order, error)
	UpdateQuote(ctx context.Context, actor entities.Actor, orderID string, price float64, notes string) (entities.SupplierQuote, entities.Order, error)
	ListQuotes(ctx context.Context, actor entities.Actor, orderID string) ([]entities.SupplierQuote, error)
}

type QuoteUseCase struct {
	orders    interfaces.IOrderRepository
	quotes    interfaces.IQuoteRepository
	publisher interfaces.IEventPublisher
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(orders interfaces.IOrderRepository, quotes interfaces.IQuoteRepository, publisher interfaces.IEventPublisher) *QuoteUseCase {
	return &QuoteUseCase{orders: orders, quotes: quotes, publisher: publisher}
}

func (u *QuoteUseCase) SubmitQuote(ctx context.Context, actor entities.Actor, orderID string, price float64, notes string) (entities.SupplierQuote, entities.Order, error) {
	if actor.Role != entities.RoleSupplier {
		return entities.SupplierQuote{}, entities.Order{}, ErrNotAuthorized
	}
	if price <= 0 {
		return entities.SupplierQuote{}, entities.Order{}, ErrInvalidQuotePrice
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.SupplierQuote{}, entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, err
	}
	if o.ID == "" {
		return entities.SupplierQuote{}, entities.Order{}, ErrOrderNotFound
	}
	if o.AssignedSupplierID != "" && o.AssignedSupplierID != actor.ID {
		return entities.SupplierQuote{}, entities.Order{}, ErrOrderAssignedToOther
	}

	existing, err := u.quotes.GetByOrderAndSupplier(ctx, orderID, actor.ID)
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, err
	}
	if existing.OrderID != "" {
		return entities.SupplierQuote{}, entities.Order{}, ErrAlreadyQuoted
	}

	if !entities.CanTransition(o.Status, entities.StatusPriceQuoted, actor) {
		return entities.SupplierQuote{}, entities.Order{}, ErrInvalidTransition
	}

	finalPrice, profit, err := entities.QuotePricing(price)
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, err
	}

	now := time.Now().UTC()
	quote := entities.SupplierQuote{
		OrderID:    orderID,
		SupplierID: actor.ID,
		Price:      entities.Round2(price),
		Notes:      strings.TrimSpace(notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	q, updated, err := u.quotes.CreateWithAssignment(ctx, interfaces.QuoteAssignmentCommand{
		Quote:           quote,
		FromStatus:      o.Status,
		ExpectedVersion: o.Version,
		Pricing: interfaces.PricingFields{
			SupplierPrice: quote.Price,
			AdminMargin:   profit,
			FinalPrice:    finalPrice,
		},
		Notes: fmt.Sprintf("Quote submitted: $%.2f", quote.Price),
	})
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, u.mapSubmitErr(ctx, orderID, actor, err)
	}

	log.Printf("[quote][usecase] quote submitted order=%s supplier=%s price=%.2f final=%.2f", orderID, actor.ID, quote.Price, finalPrice)
	u.publishOrderChanged(updated, "order.changed")
	return q, updated, nil
}

// mapSubmitErr resolves a failed quote transaction into the most specific
// conflict: a concurrent submission from the same supplier, an order claimed
// by someone else, or a plain lost race.
func (u *QuoteUseCase) mapSubmitErr(ctx context.Context, orderID string, actor entities.Actor, err error) error {
	if errors.Is(err, interfaces.ErrQuoteExists) {
		return ErrAlreadyQuoted
	}
	if errors.Is(err, interfaces.ErrConditionFailed) {
		current, readErr := u.orders.GetByID(ctx, orderID)
		if readErr == nil && current.AssignedSupplierID != "" && current.AssignedSupplierID != actor.ID {
			return ErrOrderAssignedToOther
		}
		return ErrConcurrencyConflict
	}
	return err
}

func (u *QuoteUseCase) UpdateQuote(ctx context.Context, actor entities.Actor, orderID string, price float64, notes string) (entities.SupplierQuote, entities.Order, error) {
	if actor.Role != entities.RoleSupplier {
		return entities.SupplierQuote{}, entities.Order{}, ErrNotAuthorized
	}
	if price <= 0 {
		return entities.SupplierQuote{}, entities.Order{}, ErrInvalidQuotePrice
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.SupplierQuote{}, entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, err
	}
	if o.ID == "" {
		return entities.SupplierQuote{}, entities.Order{}, ErrOrderNotFound
	}

	existing, err := u.quotes.GetByOrderAndSupplier(ctx, orderID, actor.ID)
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, err
	}
	if existing.OrderID == "" {
		return entities.SupplierQuote{}, entities.Order{}, ErrQuoteNotFound
	}
	if o.AssignedSupplierID != actor.ID {
		return entities.SupplierQuote{}, entities.Order{}, ErrOrderAssignedToOther
	}

	finalPrice, profit, err := entities.QuotePricing(price)
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, err
	}

	existing.Price = entities.Round2(price)
	existing.Notes = strings.TrimSpace(notes)
	existing.UpdatedAt = time.Now().UTC()

	q, updated, err := u.quotes.UpdateWithPricing(ctx, interfaces.QuoteUpdateCommand{
		Quote:           existing,
		ExpectedVersion: o.Version,
		Pricing: interfaces.PricingFields{
			SupplierPrice: existing.Price,
			AdminMargin:   profit,
			FinalPrice:    finalPrice,
		},
	})
	if err != nil {
		return entities.SupplierQuote{}, entities.Order{}, mapConditionErr(err)
	}

	log.Printf("[quote][usecase] quote updated order=%s supplier=%s price=%.2f", orderID, actor.ID, existing.Price)
	u.publishOrderChanged(updated, "order.changed")
	return q, updated, nil
}

func (u *QuoteUseCase) ListQuotes(ctx context.Context, actor entities.Actor, orderID string) ([]entities.SupplierQuote, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	quotes, err := u.quotes.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Suppliers only see their own quotes; customers and admins see all.
	if actor.Role == entities.RoleSupplier {
		own := make([]entities.SupplierQuote, 0, 1)
		for _, q := range quotes {
			if q.SupplierID == actor.ID {
				own = append(own, q)
			}
		}
		return own, nil
	}
	return quotes, nil
}

func (u *QuoteUseCase) publishOrderChanged(o entities.Order, routingKey string) {
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
			log.Printf("[quote][usecase] failed publishing %s for order %s: %v", routingKey, o.ID, err)
		}
	}()
}
