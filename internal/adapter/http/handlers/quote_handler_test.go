package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderhub/internal/adapter/http/handlers/mocks"
	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestQuoteHandler_SubmitQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/orders/:order_id/quotes", withActor(testSupplier), h.SubmitQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/ord-1/quotes", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("zero price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/orders/:order_id/quotes", withActor(testSupplier), h.SubmitQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/ord-1/quotes", bytes.NewBufferString(`{"price":0}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("already quoted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/orders/:order_id/quotes", withActor(testSupplier), h.SubmitQuote)

		uc.EXPECT().SubmitQuote(gomock.Any(), testSupplier, "ord-1", 120.0, "").Return(entities.SupplierQuote{}, entities.Order{}, usecase.ErrAlreadyQuoted)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/ord-1/quotes", bytes.NewBufferString(`{"price":120}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("assigned to other supplier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/orders/:order_id/quotes", withActor(testSupplier), h.SubmitQuote)

		uc.EXPECT().SubmitQuote(gomock.Any(), testSupplier, "ord-1", 120.0, "").Return(entities.SupplierQuote{}, entities.Order{}, usecase.ErrOrderAssignedToOther)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/ord-1/quotes", bytes.NewBufferString(`{"price":120}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success returns quote and order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/orders/:order_id/quotes", withActor(testSupplier), h.SubmitQuote)

		quote := entities.SupplierQuote{OrderID: "ord-1", SupplierID: "sup-1", Price: 120}
		order := entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted, AssignedSupplierID: "sup-1"}
		uc.EXPECT().SubmitQuote(gomock.Any(), testSupplier, "ord-1", 120.0, "2 weeks lead time").Return(quote, order, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/ord-1/quotes", bytes.NewBufferString(`{"price":120,"notes":"2 weeks lead time"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["quote"] == nil || body["order"] == nil {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestQuoteHandler_UpdateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("quote not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.PUT("/v1/orders/:order_id/quotes", withActor(testSupplier), h.UpdateQuote)

		uc.EXPECT().UpdateQuote(gomock.Any(), testSupplier, "ord-1", 99.0, "").Return(entities.SupplierQuote{}, entities.Order{}, usecase.ErrQuoteNotFound)

		req := httptest.NewRequest(http.MethodPut, "/v1/orders/ord-1/quotes", bytes.NewBufferString(`{"price":99}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.PUT("/v1/orders/:order_id/quotes", withActor(testSupplier), h.UpdateQuote)

		quote := entities.SupplierQuote{OrderID: "ord-1", SupplierID: "sup-1", Price: 99}
		order := entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted}
		uc.EXPECT().UpdateQuote(gomock.Any(), testSupplier, "ord-1", 99.0, "").Return(quote, order, nil)

		req := httptest.NewRequest(http.MethodPut, "/v1/orders/ord-1/quotes", bytes.NewBufferString(`{"price":99}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_ListQuotes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("supplier not allowed on foreign order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.GET("/v1/orders/:order_id/quotes", withActor(testSupplier), h.ListQuotes)

		uc.EXPECT().ListQuotes(gomock.Any(), testSupplier, "ord-1").Return(nil, usecase.ErrNotAuthorized)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/ord-1/quotes", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.GET("/v1/orders/:order_id/quotes", withActor(testAdmin), h.ListQuotes)

		uc.EXPECT().ListQuotes(gomock.Any(), testAdmin, "ord-1").Return([]entities.SupplierQuote{
			{OrderID: "ord-1", SupplierID: "sup-1", Price: 120},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/ord-1/quotes", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 1 {
			t.Fatalf("expected 1 quote, got %d", len(body))
		}
	})
}

func TestMapQuoteError(t *testing.T) {
	if got := mapQuoteError(usecase.ErrInvalidQuotePrice); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapQuoteError(usecase.ErrOrderNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapQuoteError(usecase.ErrQuoteNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapQuoteError(usecase.ErrAlreadyQuoted); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapQuoteError(usecase.ErrOrderAssignedToOther); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapQuoteError(usecase.ErrInvalidTransition); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapQuoteError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
