package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	request "orderhub/internal/adapter/http/dto/request"
	response "orderhub/internal/adapter/http/dto/response"
	"orderhub/internal/adapter/http/middleware"
	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase"
	"orderhub/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	errMissingActor        = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "No authenticated actor on request", http.StatusUnauthorized)
)

// actorOrAbort pulls the resolved actor off the context. Routes are always
// registered behind the auth middleware, so a miss is a wiring bug.
func actorOrAbort(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return entities.Actor{}, false
	}
	return actor, true
}

// OrderHandler handles HTTP requests for the order lifecycle.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder opens a new sourcing request for the authenticated customer.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if actor.Role != entities.RoleCustomer {
		appErr := pkg.NewDomainErrorSimple("FORBIDDEN", "Only customers may create orders", http.StatusForbidden)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var payload request.OrderContentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), actor.ID, payload.ToInput())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromOrder(order))
}

// GetOrder returns one order with its quotes and status history.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	order, err := h.usecase.GetOrder(c.Request.Context(), actor, c.Param("order_id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// ListOrders returns the actor's role-scoped order list.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	orders, err := h.usecase.ListOrders(c.Request.Context(), actor)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if q := c.Query("order_number"); q != "" {
		filtered := make([]entities.Order, 0, len(orders))
		for _, o := range orders {
			if o.MatchesNumber(q) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// UpdateOrder replaces the customer-editable content of an order.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var payload request.OrderContentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.EditOrderContent(c.Request.Context(), actor, c.Param("order_id"), payload.ToInput())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// CancelOrder cancels the order for the acting customer or admin.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var payload request.CancelOrderRequest
	_ = c.ShouldBindJSON(&payload)

	order, err := h.usecase.CancelOrder(c.Request.Context(), actor, c.Param("order_id"), payload.Notes)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// ApproveOrder releases a moderated order to suppliers.
func (h *OrderHandler) ApproveOrder(c *gin.Context) {
	h.lifecycleAction(c, h.usecase.ApproveOrder)
}

// RejectOrder cancels a moderated order before suppliers ever see it.
func (h *OrderHandler) RejectOrder(c *gin.Context) {
	h.lifecycleAction(c, h.usecase.RejectOrder)
}

func (h *OrderHandler) lifecycleAction(c *gin.Context, action func(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	order, err := action(c.Request.Context(), actor, c.Param("order_id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// SetFinalPrice derives the customer price from the lowest quote plus the
// given margin and moves the order to payment_confirmed.
func (h *OrderHandler) SetFinalPrice(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var payload request.FinalPriceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.SetFinalPrice(c.Request.Context(), actor, c.Param("order_id"), *payload.MarginPercent)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// MarkDelivered closes out a shipped order.
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var payload request.DeliveredRequest
	_ = c.ShouldBindJSON(&payload)

	order, err := h.usecase.MarkDelivered(c.Request.Context(), actor, c.Param("order_id"), payload.Notes)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// DeleteOrder hard-deletes an order and its quotes/history. Admin only.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	orderID := c.Param("order_id")
	if err := h.usecase.DeleteOrder(c.Request.Context(), actor, orderID); err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] order deleted id=%s by=%s", orderID, actor.ID)

	c.Status(http.StatusNoContent)
}

// CompleteProduction records the supplier's completion image and moves the
// order into production_started.
func (h *OrderHandler) CompleteProduction(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var payload request.CompleteProductionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.CompleteProduction(c.Request.Context(), actor, c.Param("order_id"), payload.ImageURL)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// StartTransit moves a produced order into in_transit.
func (h *OrderHandler) StartTransit(c *gin.Context) {
	h.lifecycleAction(c, h.usecase.StartTransit)
}

// RevertToProduction moves an in_transit order back to production_started.
func (h *OrderHandler) RevertToProduction(c *gin.Context) {
	h.lifecycleAction(c, h.usecase.RevertToProduction)
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidTitle),
		errors.Is(err, usecase.ErrInvalidDescription),
		errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidMargin),
		errors.Is(err, usecase.ErrNoFilesProvided):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, entities.ErrPriceOutOfRange):
		return pkg.NewDomainErrorSimple("PRICE_OUT_OF_RANGE", "Derived price exceeds the supported maximum", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotOrderOwner),
		errors.Is(err, usecase.ErrNotAssignedSupplier),
		errors.Is(err, usecase.ErrNotAuthorized):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Actor not allowed to perform this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrOrderNotEditable):
		return pkg.NewDomainErrorSimple("ORDER_NOT_EDITABLE", "Order can no longer be edited", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderNotCancelable):
		return pkg.NewDomainErrorSimple("ORDER_NOT_CANCELABLE", "Order can no longer be cancelled", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Status transition not permitted", http.StatusConflict)
	case errors.Is(err, usecase.ErrNoQuotesAvailable):
		return pkg.NewDomainErrorSimple("NO_QUOTES_AVAILABLE", "Order has no quotes to price from", http.StatusConflict)
	case errors.Is(err, usecase.ErrPriceAlreadySet):
		return pkg.NewDomainErrorSimple("PRICE_ALREADY_SET", "Final price already set", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrencyConflict):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Order was modified concurrently, retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
