package handlers

import (
	"errors"
	"net/http"

	request "orderhub/internal/adapter/http/dto/request"
	response "orderhub/internal/adapter/http/dto/response"
	"orderhub/internal/usecase"
	"orderhub/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)

// QuoteHandler handles supplier quote submission and listing.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// SubmitQuote registers the acting supplier's quote. The first accepted quote
// assigns the supplier and prices the order.
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, order, err := h.usecase.SubmitQuote(c.Request.Context(), actor, c.Param("order_id"), payload.Price, payload.Notes)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuoteAndOrder(quote, order))
}

// UpdateQuote re-prices the assigned supplier's existing quote.
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, order, err := h.usecase.UpdateQuote(c.Request.Context(), actor, c.Param("order_id"), payload.Price, payload.Notes)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuoteAndOrder(quote, order))
}

// ListQuotes returns the quotes visible to the actor for one order.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	quotes, err := h.usecase.ListQuotes(c.Request.Context(), actor, c.Param("order_id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidQuotePrice):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotAuthorized):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Actor not allowed to perform this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrAlreadyQuoted):
		return pkg.NewDomainErrorSimple("ALREADY_QUOTED", "Supplier already quoted this order", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderAssignedToOther):
		return pkg.NewDomainErrorSimple("ORDER_ASSIGNED", "Order is assigned to another supplier", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Order does not accept quotes in its current status", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrencyConflict):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Order was modified concurrently, retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
