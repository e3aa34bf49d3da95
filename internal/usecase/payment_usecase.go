package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidPaymentReference = errors.New("invalid payment reference")
	ErrPaymentAmountMismatch   = errors.New("payment amount does not match order final price")
	ErrOrderNotPriced          = errors.New("order has no final price")
	ErrInvalidTransactionID    = errors.New("invalid transaction id")
	ErrPaymentNotApproved      = errors.New("payment not approved by provider")
)

// paymentAmountTolerance absorbs floating representation noise when matching
// an incoming transfer against the order's final price.
const paymentAmountTolerance = 0.01

// IPaymentUseCase reconciles incoming transfers against orders.
//
// The flow mirrors the bank-transfer reconciliation of the legacy system: a
// reference code is issued per order, the financial provider reports a
// transaction carrying that code, and the service verifies the amount before
// stamping the order as paid. Confirmation never changes the order status;
// pricing already moved it to payment_confirmed.

type IPaymentUseCase interface {
	GeneratePaymentReference(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
	ConfirmPayment(ctx context.Context, reference string, amount float64, transactionID string) (entities.PaymentTransaction, error)
	GetPaymentStatus(ctx context.Context, actor entities.Actor, orderID string) (entities.PaymentTransaction, error)
}

type PaymentUseCase struct {
	orders   interfaces.IOrderRepository
	payments interfaces.IPaymentRepository
	gateway  interfaces.IPaymentGateway
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(orders interfaces.IOrderRepository, payments interfaces.IPaymentRepository, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, payments: payments, gateway: gateway}
}

func (u *PaymentUseCase) GeneratePaymentReference(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
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
	if actor.Role == entities.RoleCustomer && o.CustomerID != actor.ID {
		return entities.Order{}, ErrNotOrderOwner
	}
	if o.FinalPrice == nil {
		return entities.Order{}, ErrOrderNotPriced
	}
	if o.PaymentReference != "" {
		return o, nil
	}

	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	reference := fmt.Sprintf("UTX-%d-%s", time.Now().UTC().UnixMilli(), suffix)

	updated, err := u.orders.SetPaymentReference(ctx, o.ID, reference)
	if err != nil {
		log.Printf("[payment][usecase] failed setting payment reference order=%s err=%v", o.ID, err)
		return entities.Order{}, mapConditionErr(err)
	}
	log.Printf("[payment][usecase] payment reference issued order=%s reference=%s", o.ID, reference)
	return updated, nil
}

func (u *PaymentUseCase) ConfirmPayment(ctx context.Context, reference string, amount float64, transactionID string) (entities.PaymentTransaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return entities.PaymentTransaction{}, ErrInvalidPaymentReference
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return entities.PaymentTransaction{}, ErrInvalidTransactionID
	}

	log.Printf("[payment][usecase] confirm start reference=%s amount=%.2f transaction_id=%s", reference, amount, transactionID)

	o, err := u.orders.GetByPaymentReference(ctx, reference)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if o.ID == "" {
		log.Printf("[payment][usecase] no order for payment reference %s", reference)
		return entities.PaymentTransaction{}, ErrInvalidPaymentReference
	}
	if o.FinalPrice == nil {
		return entities.PaymentTransaction{}, ErrOrderNotPriced
	}
	if math.Abs(amount-*o.FinalPrice) > paymentAmountTolerance {
		log.Printf("[payment][usecase] amount mismatch order=%s expected=%.2f got=%.2f", o.ID, *o.FinalPrice, amount)
		return entities.PaymentTransaction{}, ErrPaymentAmountMismatch
	}

	// When a gateway is configured the reported transaction is verified
	// against the provider before anything is written.
	if u.gateway != nil {
		status, providerAmount, _, err := u.gateway.GetPayment(ctx, transactionID)
		if err != nil {
			log.Printf("[payment][usecase] gateway lookup failed transaction_id=%s err=%v", transactionID, err)
			return entities.PaymentTransaction{}, err
		}
		if status != "approved" {
			log.Printf("[payment][usecase] provider status %q for transaction %s", status, transactionID)
			return entities.PaymentTransaction{}, ErrPaymentNotApproved
		}
		if providerAmount > 0 && math.Abs(providerAmount-amount) > paymentAmountTolerance {
			return entities.PaymentTransaction{}, ErrPaymentAmountMismatch
		}
	}

	now := time.Now().UTC()
	p := entities.PaymentTransaction{
		ID:            uuid.NewString(),
		OrderID:       o.ID,
		Amount:        amount,
		ReferenceCode: reference,
		TransactionID: transactionID,
		Status:        entities.PaymentTransactionConfirmed,
		ConfirmedAt:   &now,
		CreatedAt:     now,
	}

	created, err := u.payments.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] failed recording payment order=%s err=%v", o.ID, err)
		return entities.PaymentTransaction{}, err
	}

	if _, err := u.orders.StampPaymentConfirmed(ctx, o.ID, now); err != nil {
		log.Printf("[payment][usecase] failed stamping payment_confirmed_at order=%s err=%v", o.ID, err)
		return entities.PaymentTransaction{}, err
	}

	log.Printf("[payment][usecase] payment confirmed order=%s amount=%.2f transaction_id=%s", o.ID, amount, transactionID)
	return created, nil
}

func (u *PaymentUseCase) GetPaymentStatus(ctx context.Context, actor entities.Actor, orderID string) (entities.PaymentTransaction, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.PaymentTransaction{}, ErrInvalidOrderID
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if o.ID == "" {
		return entities.PaymentTransaction{}, ErrOrderNotFound
	}
	if actor.Role == entities.RoleCustomer && o.CustomerID != actor.ID {
		return entities.PaymentTransaction{}, ErrNotOrderOwner
	}

	txs, err := u.payments.ListByOrderID(ctx, orderID)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if len(txs) == 0 {
		// No transaction yet: payment is pending.
		return entities.PaymentTransaction{OrderID: orderID, Status: entities.PaymentTransactionPending}, nil
	}

	latest := txs[0]
	for _, tx := range txs[1:] {
		if tx.CreatedAt.After(latest.CreatedAt) {
			latest = tx
		}
	}
	return latest, nil
}
