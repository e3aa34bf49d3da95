package usecase

import (
	"context"
	"errors"
	"testing"

	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase/interfaces"
	mock_interfaces "orderhub/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newQuoteUC(ctrl *gomock.Controller) (*QuoteUseCase, *mock_interfaces.MockIOrderRepository, *mock_interfaces.MockIQuoteRepository) {
	orders := mock_interfaces.NewMockIOrderRepository(ctrl)
	quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
	return NewQuoteUseCase(orders, quotes, nil), orders, quotes
}

func TestQuoteUseCase_SubmitQuote(t *testing.T) {
	t.Run("customer may not quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newQuoteUC(ctrl)

		_, _, err := uc.SubmitQuote(context.Background(), customer, "ord-1", 100, "")
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("invalid price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newQuoteUC(ctrl)

		_, _, err := uc.SubmitQuote(context.Background(), supplier, "ord-1", 0, "")
		if !errors.Is(err, ErrInvalidQuotePrice) {
			t.Fatalf("expected ErrInvalidQuotePrice, got %v", err)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _ := newQuoteUC(ctrl)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{}, nil)

		_, _, err := uc.SubmitQuote(context.Background(), supplier, "ord-1", 100, "")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("order claimed by another supplier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _ := newQuoteUC(ctrl)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted, AssignedSupplierID: "other"}, nil)

		_, _, err := uc.SubmitQuote(context.Background(), supplier, "ord-1", 100, "")
		if !errors.Is(err, ErrOrderAssignedToOther) {
			t.Fatalf("expected ErrOrderAssignedToOther, got %v", err)
		}
	})

	t.Run("duplicate quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes := newQuoteUC(ctrl)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: entities.StatusRequestCreated}, nil)
		quotes.EXPECT().GetByOrderAndSupplier(gomock.Any(), "ord-1", "sup-1").Return(entities.SupplierQuote{OrderID: "ord-1", SupplierID: "sup-1"}, nil)

		_, _, err := uc.SubmitQuote(context.Background(), supplier, "ord-1", 100, "")
		if !errors.Is(err, ErrAlreadyQuoted) {
			t.Fatalf("expected ErrAlreadyQuoted, got %v", err)
		}
	})

	t.Run("order not open for quotes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes := newQuoteUC(ctrl)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: entities.StatusAdminReview}, nil)
		quotes.EXPECT().GetByOrderAndSupplier(gomock.Any(), "ord-1", "sup-1").Return(entities.SupplierQuote{}, nil)

		_, _, err := uc.SubmitQuote(context.Background(), supplier, "ord-1", 100, "")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("first quote wins and prices the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes := newQuoteUC(ctrl)

		o := entities.Order{ID: "ord-1", Status: entities.StatusRequestCreated, Version: 1}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		quotes.EXPECT().GetByOrderAndSupplier(gomock.Any(), "ord-1", "sup-1").Return(entities.SupplierQuote{}, nil)
		quotes.EXPECT().CreateWithAssignment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd interfaces.QuoteAssignmentCommand) (entities.SupplierQuote, entities.Order, error) {
				if cmd.Quote.Price != 100 || cmd.Quote.SupplierID != "sup-1" {
					t.Fatalf("unexpected quote: %+v", cmd.Quote)
				}
				if cmd.FromStatus != entities.StatusRequestCreated || cmd.ExpectedVersion != 1 {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				if cmd.Pricing.SupplierPrice != 100 || cmd.Pricing.FinalPrice != 120 || cmd.Pricing.AdminMargin != 20 {
					t.Fatalf("unexpected pricing: %+v", cmd.Pricing)
				}
				updated := entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted, AssignedSupplierID: "sup-1", Version: 2}
				return cmd.Quote, updated, nil
			},
		)

		q, res, err := uc.SubmitQuote(context.Background(), supplier, "ord-1", 100, "ready in 2 weeks")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Price != 100 || res.AssignedSupplierID != "sup-1" {
			t.Fatalf("unexpected result: %+v %+v", q, res)
		}
	})

	t.Run("lost race against another supplier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes := newQuoteUC(ctrl)

		o := entities.Order{ID: "ord-1", Status: entities.StatusRequestCreated, Version: 1}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		quotes.EXPECT().GetByOrderAndSupplier(gomock.Any(), "ord-1", "sup-1").Return(entities.SupplierQuote{}, nil)
		quotes.EXPECT().CreateWithAssignment(gomock.Any(), gomock.Any()).Return(entities.SupplierQuote{}, entities.Order{}, interfaces.ErrConditionFailed)
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted, AssignedSupplierID: "sup-2"}, nil)

		_, _, err := uc.SubmitQuote(context.Background(), supplier, "ord-1", 100, "")
		if !errors.Is(err, ErrOrderAssignedToOther) {
			t.Fatalf("expected ErrOrderAssignedToOther, got %v", err)
		}
	})

	t.Run("lost race against own duplicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes := newQuoteUC(ctrl)

		o := entities.Order{ID: "ord-1", Status: entities.StatusRequestCreated, Version: 1}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		quotes.EXPECT().GetByOrderAndSupplier(gomock.Any(), "ord-1", "sup-1").Return(entities.SupplierQuote{}, nil)
		quotes.EXPECT().CreateWithAssignment(gomock.Any(), gomock.Any()).Return(entities.SupplierQuote{}, entities.Order{}, interfaces.ErrQuoteExists)

		_, _, err := uc.SubmitQuote(context.Background(), supplier, "ord-1", 100, "")
		if !errors.Is(err, ErrAlreadyQuoted) {
			t.Fatalf("expected ErrAlreadyQuoted, got %v", err)
		}
	})
}

func TestQuoteUseCase_UpdateQuote(t *testing.T) {
	t.Run("quote not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes := newQuoteUC(ctrl)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted, AssignedSupplierID: "sup-1"}, nil)
		quotes.EXPECT().GetByOrderAndSupplier(gomock.Any(), "ord-1", "sup-1").Return(entities.SupplierQuote{}, nil)

		_, _, err := uc.UpdateQuote(context.Background(), supplier, "ord-1", 90, "")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("only the assigned supplier may update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes := newQuoteUC(ctrl)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted, AssignedSupplierID: "other"}, nil)
		quotes.EXPECT().GetByOrderAndSupplier(gomock.Any(), "ord-1", "sup-1").Return(entities.SupplierQuote{OrderID: "ord-1", SupplierID: "sup-1", Price: 100}, nil)

		_, _, err := uc.UpdateQuote(context.Background(), supplier, "ord-1", 90, "")
		if !errors.Is(err, ErrOrderAssignedToOther) {
			t.Fatalf("expected ErrOrderAssignedToOther, got %v", err)
		}
	})

	t.Run("success reprices the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes := newQuoteUC(ctrl)

		o := entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted, AssignedSupplierID: "sup-1", Version: 3}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		quotes.EXPECT().GetByOrderAndSupplier(gomock.Any(), "ord-1", "sup-1").Return(entities.SupplierQuote{OrderID: "ord-1", SupplierID: "sup-1", Price: 100}, nil)
		quotes.EXPECT().UpdateWithPricing(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd interfaces.QuoteUpdateCommand) (entities.SupplierQuote, entities.Order, error) {
				if cmd.Quote.Price != 90 || cmd.ExpectedVersion != 3 {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				if cmd.Pricing.FinalPrice != 108 || cmd.Pricing.AdminMargin != 18 {
					t.Fatalf("unexpected pricing: %+v", cmd.Pricing)
				}
				return cmd.Quote, entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted, Version: 4}, nil
			},
		)

		q, res, err := uc.UpdateQuote(context.Background(), supplier, "ord-1", 90, "better deal")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Price != 90 || res.Version != 4 {
			t.Fatalf("unexpected result: %+v %+v", q, res)
		}
	})
}

func TestQuoteUseCase_ListQuotes(t *testing.T) {
	t.Run("supplier sees only own quotes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, quotes := newQuoteUC(ctrl)

		quotes.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.SupplierQuote{
			{OrderID: "ord-1", SupplierID: "sup-1", Price: 100},
			{OrderID: "ord-1", SupplierID: "sup-2", Price: 90},
		}, nil)

		res, err := uc.ListQuotes(context.Background(), supplier, "ord-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 1 || res[0].SupplierID != "sup-1" {
			t.Fatalf("expected only own quote, got %+v", res)
		}
	})

	t.Run("admin sees all quotes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, quotes := newQuoteUC(ctrl)

		quotes.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.SupplierQuote{
			{OrderID: "ord-1", SupplierID: "sup-1", Price: 100},
			{OrderID: "ord-1", SupplierID: "sup-2", Price: 90},
		}, nil)

		res, err := uc.ListQuotes(context.Background(), admin, "ord-1")
		if err != nil || len(res) != 2 {
			t.Fatalf("unexpected result: %v %v", res, err)
		}
	})

	t.Run("empty order id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newQuoteUC(ctrl)

		_, err := uc.ListQuotes(context.Background(), admin, "  ")
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})
}
