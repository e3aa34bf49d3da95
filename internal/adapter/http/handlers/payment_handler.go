package handlers

import (
	"errors"
	"log"
	"net/http"

	request "orderhub/internal/adapter/http/dto/request"
	response "orderhub/internal/adapter/http/dto/response"
	"orderhub/internal/usecase"
	"orderhub/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)

// PaymentHandler handles payment reference generation and confirmation.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// GeneratePaymentReference mints (or returns the existing) payment reference
// for a priced order.
func (h *PaymentHandler) GeneratePaymentReference(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	order, err := h.usecase.GeneratePaymentReference(c.Request.Context(), actor, c.Param("order_id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrderPaymentReference(order))
}

// ConfirmPayment records an external payment confirmation. The route is not
// behind auth: the caller authenticates by knowing the reference code, the
// way a provider webhook would.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var payload request.PaymentConfirmationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	tx, err := h.usecase.ConfirmPayment(c.Request.Context(), payload.ResolveReference(), payload.Amount, payload.TransactionID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] payment confirmed order=%s tx=%s", tx.OrderID, tx.ID)

	c.JSON(http.StatusOK, response.FromPayment(tx))
}

// GetPaymentStatus returns the recorded payment transactions for an order.
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	tx, err := h.usecase.GetPaymentStatus(c.Request.Context(), actor, c.Param("order_id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(tx))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidTransactionID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPaymentReference):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_REFERENCE", "Payment reference not recognized", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotAuthorized),
		errors.Is(err, usecase.ErrNotOrderOwner):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Actor not allowed to perform this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrOrderNotPriced):
		return pkg.NewDomainErrorSimple("ORDER_NOT_PRICED", "Order has no final price yet", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentAmountMismatch):
		return pkg.NewDomainErrorSimple("PAYMENT_AMOUNT_MISMATCH", "Paid amount does not match the order price", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPaymentNotApproved):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_APPROVED", "Payment was not approved by the provider", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrConcurrencyConflict):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Order was modified concurrently, retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
