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

var (
	customer = entities.Actor{ID: "cust-1", Role: entities.RoleCustomer}
	supplier = entities.Actor{ID: "sup-1", Role: entities.RoleSupplier}
	admin    = entities.Actor{ID: "adm-1", Role: entities.RoleAdmin}
)

func newOrderUC(ctrl *gomock.Controller, moderation bool) (*OrderUseCase, *mock_interfaces.MockIOrderRepository, *mock_interfaces.MockIQuoteRepository, *mock_interfaces.MockIHistoryRepository) {
	orders := mock_interfaces.NewMockIOrderRepository(ctrl)
	quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
	history := mock_interfaces.NewMockIHistoryRepository(ctrl)
	return NewOrderUseCase(orders, quotes, history, nil, moderation), orders, quotes, history
}

func TestOrderUseCase_CreateOrder(t *testing.T) {
	t.Run("empty customer id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newOrderUC(ctrl, false)

		_, err := uc.CreateOrder(context.Background(), "   ", OrderContentInput{Title: "t", Description: "d", Quantity: 1})
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("invalid title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newOrderUC(ctrl, false)

		_, err := uc.CreateOrder(context.Background(), "cust-1", OrderContentInput{Title: "  ", Description: "d", Quantity: 1})
		if !errors.Is(err, ErrInvalidTitle) {
			t.Fatalf("expected ErrInvalidTitle, got %v", err)
		}
	})

	t.Run("invalid quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newOrderUC(ctrl, false)

		_, err := uc.CreateOrder(context.Background(), "cust-1", OrderContentInput{Title: "t", Description: "d", Quantity: 0})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("success without moderation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		orders.EXPECT().NextOrderNumber(gomock.Any()).Return(int64(42), nil)
		orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order, h entities.OrderStatusHistory) (entities.Order, error) {
				if o.ID == "" || o.OrderNumber != 42 || o.CustomerID != "cust-1" {
					t.Fatalf("unexpected order: %+v", o)
				}
				if o.Status != entities.StatusRequestCreated || o.Version != 1 {
					t.Fatalf("expected request_created v1, got %s v%d", o.Status, o.Version)
				}
				if h.OrderID != o.ID || h.Seq != 1 || h.Status != entities.StatusRequestCreated || h.ChangedBy != "cust-1" {
					t.Fatalf("unexpected history row: %+v", h)
				}
				return o, nil
			},
		)

		res, err := uc.CreateOrder(context.Background(), "cust-1", OrderContentInput{Title: "Sneakers", Description: "Custom", Quantity: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.OrderNumber != 42 {
			t.Fatalf("expected order number 42, got %d", res.OrderNumber)
		}
	})

	t.Run("moderation starts in admin review", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, true)

		orders.EXPECT().NextOrderNumber(gomock.Any()).Return(int64(7), nil)
		orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order, h entities.OrderStatusHistory) (entities.Order, error) {
				if o.Status != entities.StatusAdminReview || h.Status != entities.StatusAdminReview {
					t.Fatalf("expected admin_review, got %s / %s", o.Status, h.Status)
				}
				return o, nil
			},
		)

		if _, err := uc.CreateOrder(context.Background(), "cust-1", OrderContentInput{Title: "t", Description: "d", Quantity: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("number allocation fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		orders.EXPECT().NextOrderNumber(gomock.Any()).Return(int64(0), errors.New("db"))

		_, err := uc.CreateOrder(context.Background(), "cust-1", OrderContentInput{Title: "t", Description: "d", Quantity: 1})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestOrderUseCase_GetOrder(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{}, nil)

		_, err := uc.GetOrder(context.Background(), admin, "ord-1")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("customer cannot read foreign order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes, history := newOrderUC(ctrl, false)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", CustomerID: "other"}, nil)
		quotes.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, nil)
		history.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, nil)

		_, err := uc.GetOrder(context.Background(), customer, "ord-1")
		if !errors.Is(err, ErrNotOrderOwner) {
			t.Fatalf("expected ErrNotOrderOwner, got %v", err)
		}
	})

	t.Run("supplier sees order it quoted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes, history := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusPriceQuoted, AssignedSupplierID: "other"}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		quotes.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.SupplierQuote{{OrderID: "ord-1", SupplierID: "sup-1", Price: 10}}, nil)
		history.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.OrderStatusHistory{{OrderID: "ord-1", Seq: 1}}, nil)

		res, err := uc.GetOrder(context.Background(), supplier, "ord-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Quotes) != 1 || len(res.History) != 1 {
			t.Fatalf("expected quotes and history attached: %+v", res)
		}
	})

	t.Run("supplier blocked from untouched quoted order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes, history := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusPriceQuoted, AssignedSupplierID: "other"}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		quotes.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.SupplierQuote{{OrderID: "ord-1", SupplierID: "other", Price: 10}}, nil)
		history.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, nil)

		_, err := uc.GetOrder(context.Background(), supplier, "ord-1")
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})
}

func TestOrderUseCase_ListOrders(t *testing.T) {
	t.Run("customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		orders.EXPECT().ListByCustomerID(gomock.Any(), "cust-1").Return([]entities.Order{{ID: "ord-1"}}, nil)

		res, err := uc.ListOrders(context.Background(), customer)
		if err != nil || len(res) != 1 {
			t.Fatalf("unexpected result: %v %v", res, err)
		}
	})

	t.Run("supplier merges open and assigned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		orders.EXPECT().ListByStatus(gomock.Any(), entities.StatusRequestCreated).Return([]entities.Order{{ID: "open-1"}}, nil)
		orders.EXPECT().ListByAssignedSupplierID(gomock.Any(), "sup-1").Return([]entities.Order{{ID: "mine-1"}}, nil)

		res, err := uc.ListOrders(context.Background(), supplier)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(res))
		}
	})

	t.Run("admin sees all", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		orders.EXPECT().ListAll(gomock.Any()).Return([]entities.Order{{ID: "a"}, {ID: "b"}}, nil)

		res, err := uc.ListOrders(context.Background(), admin)
		if err != nil || len(res) != 2 {
			t.Fatalf("unexpected result: %v %v", res, err)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newOrderUC(ctrl, false)

		_, err := uc.ListOrders(context.Background(), entities.Actor{ID: "x", Role: "ghost"})
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})
}

func TestOrderUseCase_EditOrderContent(t *testing.T) {
	t.Run("not editable in production", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusProductionStarted}, nil)

		_, err := uc.EditOrderContent(context.Background(), customer, "ord-1", OrderContentInput{Title: "t", Description: "d", Quantity: 1})
		if !errors.Is(err, ErrOrderNotEditable) {
			t.Fatalf("expected ErrOrderNotEditable, got %v", err)
		}
	})

	t.Run("plain edit in request created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusRequestCreated, Version: 3}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		orders.EXPECT().UpdateContent(gomock.Any(), "ord-1", int64(3), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ int64, c interfaces.ContentUpdate) (entities.Order, error) {
				if c.Title != "New" || c.Quantity != 5 {
					t.Fatalf("unexpected content: %+v", c)
				}
				o.Title = c.Title
				o.Version = 4
				return o, nil
			},
		)

		res, err := uc.EditOrderContent(context.Background(), customer, "ord-1", OrderContentInput{Title: "New", Description: "d", Quantity: 5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Title != "New" {
			t.Fatalf("expected updated title, got %q", res.Title)
		}
	})

	t.Run("edit of quoted order resets status and drops quotes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes, _ := newOrderUC(ctrl, false)

		price := 100.0
		o := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusPriceQuoted, Version: 2, AssignedSupplierID: "sup-1", SupplierPrice: &price}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		quotes.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.SupplierQuote{
			{OrderID: "ord-1", SupplierID: "sup-1", Price: 100},
			{OrderID: "ord-1", SupplierID: "sup-2", Price: 90},
		}, nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd interfaces.TransitionCommand) (entities.Order, error) {
				if cmd.FromStatus != entities.StatusPriceQuoted || cmd.ToStatus != entities.StatusRequestCreated {
					t.Fatalf("unexpected transition: %+v", cmd)
				}
				if !cmd.ClearPricing || len(cmd.DeleteQuoteIDs) != 2 {
					t.Fatalf("expected pricing cleared and 2 quotes dropped: %+v", cmd)
				}
				if cmd.ExpectedVersion != 2 || cmd.Content == nil {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return entities.Order{ID: "ord-1", Status: entities.StatusRequestCreated, Version: 3}, nil
			},
		)

		res, err := uc.EditOrderContent(context.Background(), customer, "ord-1", OrderContentInput{Title: "t", Description: "d", Quantity: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusRequestCreated {
			t.Fatalf("expected status reset, got %s", res.Status)
		}
	})

	t.Run("lost version race maps to concurrency conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusRequestCreated, Version: 3}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		orders.EXPECT().UpdateContent(gomock.Any(), "ord-1", int64(3), gomock.Any()).Return(entities.Order{}, interfaces.ErrConditionFailed)

		_, err := uc.EditOrderContent(context.Background(), customer, "ord-1", OrderContentInput{Title: "t", Description: "d", Quantity: 1})
		if !errors.Is(err, ErrConcurrencyConflict) {
			t.Fatalf("expected ErrConcurrencyConflict, got %v", err)
		}
	})
}

func TestOrderUseCase_AttachFiles(t *testing.T) {
	newFile := entities.UploadedFile{ID: "file-1", Name: "ref.png", Type: "image/png", URL: "https://bucket/ref.png"}

	t.Run("no files", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newOrderUC(ctrl, false)

		_, err := uc.AttachFiles(context.Background(), customer, "ord-1", nil)
		if !errors.Is(err, ErrNoFilesProvided) {
			t.Fatalf("expected ErrNoFilesProvided, got %v", err)
		}
	})

	t.Run("attach to open order appends files", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusRequestCreated, Version: 2,
			UploadedFiles: []entities.UploadedFile{{ID: "file-0", Name: "old.pdf"}}}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		orders.EXPECT().UpdateContent(gomock.Any(), "ord-1", int64(2), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ int64, c interfaces.ContentUpdate) (entities.Order, error) {
				if len(c.UploadedFiles) != 2 || c.UploadedFiles[1].ID != "file-1" {
					t.Fatalf("expected appended files, got %+v", c.UploadedFiles)
				}
				if c.FilesUploadedAt == nil {
					t.Fatalf("expected files_uploaded_at to be stamped")
				}
				o.UploadedFiles = c.UploadedFiles
				o.Version = 3
				return o, nil
			},
		)

		res, err := uc.AttachFiles(context.Background(), customer, "ord-1", []entities.UploadedFile{newFile})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.UploadedFiles) != 2 {
			t.Fatalf("expected 2 files, got %d", len(res.UploadedFiles))
		}
	})

	t.Run("attach to quoted order resets status and drops quotes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes, _ := newOrderUC(ctrl, false)

		price := 100.0
		o := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusPriceQuoted, Version: 2,
			AssignedSupplierID: "sup-1", SupplierPrice: &price}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		quotes.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.SupplierQuote{
			{OrderID: "ord-1", SupplierID: "sup-1", Price: 100},
		}, nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd interfaces.TransitionCommand) (entities.Order, error) {
				if cmd.FromStatus != entities.StatusPriceQuoted || cmd.ToStatus != entities.StatusRequestCreated {
					t.Fatalf("unexpected transition: %+v", cmd)
				}
				if !cmd.ClearPricing || len(cmd.DeleteQuoteIDs) != 1 || cmd.DeleteQuoteIDs[0] != "sup-1" {
					t.Fatalf("expected pricing cleared and quote dropped: %+v", cmd)
				}
				if cmd.Content == nil || len(cmd.Content.UploadedFiles) != 1 || cmd.Content.UploadedFiles[0].ID != "file-1" {
					t.Fatalf("expected new file in content: %+v", cmd.Content)
				}
				return entities.Order{ID: "ord-1", Status: entities.StatusRequestCreated, Version: 3}, nil
			},
		)

		res, err := uc.AttachFiles(context.Background(), customer, "ord-1", []entities.UploadedFile{newFile})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusRequestCreated {
			t.Fatalf("expected status reset, got %s", res.Status)
		}
	})

	t.Run("not editable after payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusPaymentConfirmed}, nil)

		_, err := uc.AttachFiles(context.Background(), customer, "ord-1", []entities.UploadedFile{newFile})
		if !errors.Is(err, ErrOrderNotEditable) {
			t.Fatalf("expected ErrOrderNotEditable, got %v", err)
		}
	})
}

func TestOrderUseCase_CancelOrder(t *testing.T) {
	t.Run("customer cancels own order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusRequestCreated, Version: 1}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd interfaces.TransitionCommand) (entities.Order, error) {
				if cmd.ToStatus != entities.StatusCanceled || cmd.Notes != "Order cancelled by customer" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return entities.Order{ID: "ord-1", Status: entities.StatusCanceled, Version: 2}, nil
			},
		)

		res, err := uc.CancelOrder(context.Background(), customer, "ord-1", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusCanceled {
			t.Fatalf("expected canceled, got %s", res.Status)
		}
	})

	t.Run("customer cannot cancel after payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusPaymentConfirmed}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)

		_, err := uc.CancelOrder(context.Background(), customer, "ord-1", "")
		if !errors.Is(err, ErrOrderNotCancelable) {
			t.Fatalf("expected ErrOrderNotCancelable, got %v", err)
		}
	})

	t.Run("admin cancels from production", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", CustomerID: "cust-1", Status: entities.StatusProductionStarted, Version: 5}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).Return(entities.Order{ID: "ord-1", Status: entities.StatusCanceled}, nil)

		if _, err := uc.CancelOrder(context.Background(), admin, "ord-1", "supplier went dark"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestOrderUseCase_SetFinalPrice(t *testing.T) {
	t.Run("negative margin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newOrderUC(ctrl, false)

		_, err := uc.SetFinalPrice(context.Background(), admin, "ord-1", -1)
		if !errors.Is(err, ErrInvalidMargin) {
			t.Fatalf("expected ErrInvalidMargin, got %v", err)
		}
	})

	t.Run("wrong status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: entities.StatusRequestCreated}, nil)

		_, err := uc.SetFinalPrice(context.Background(), admin, "ord-1", 10)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("price already set", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		price := 120.0
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted, FinalPrice: &price}, nil)

		_, err := uc.SetFinalPrice(context.Background(), admin, "ord-1", 10)
		if !errors.Is(err, ErrPriceAlreadySet) {
			t.Fatalf("expected ErrPriceAlreadySet, got %v", err)
		}
	})

	t.Run("no quotes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes, _ := newOrderUC(ctrl, false)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted}, nil)
		quotes.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, nil)

		_, err := uc.SetFinalPrice(context.Background(), admin, "ord-1", 10)
		if !errors.Is(err, ErrNoQuotesAvailable) {
			t.Fatalf("expected ErrNoQuotesAvailable, got %v", err)
		}
	})

	t.Run("success uses lowest quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, quotes, _ := newOrderUC(ctrl, false)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: entities.StatusPriceQuoted, Version: 4}, nil)
		quotes.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.SupplierQuote{
			{SupplierID: "sup-1", Price: 150},
			{SupplierID: "sup-2", Price: 100},
		}, nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd interfaces.TransitionCommand) (entities.Order, error) {
				if cmd.ToStatus != entities.StatusPaymentConfirmed || cmd.Pricing == nil {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				if cmd.Pricing.SupplierPrice != 100 || cmd.Pricing.FinalPrice != 115 || cmd.Pricing.AdminMargin != 15 {
					t.Fatalf("unexpected pricing: %+v", cmd.Pricing)
				}
				return entities.Order{ID: "ord-1", Status: entities.StatusPaymentConfirmed, Version: 5}, nil
			},
		)

		res, err := uc.SetFinalPrice(context.Background(), admin, "ord-1", 15)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusPaymentConfirmed {
			t.Fatalf("expected payment_confirmed, got %s", res.Status)
		}
	})
}

func TestOrderUseCase_SupplierTransitions(t *testing.T) {
	t.Run("complete production by assigned supplier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", Status: entities.StatusPaymentConfirmed, AssignedSupplierID: "sup-1", Version: 6}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd interfaces.TransitionCommand) (entities.Order, error) {
				if cmd.ToStatus != entities.StatusProductionStarted || cmd.SupplierImageURL != "https://cdn/done.png" || cmd.SupplierCompletedAt == nil {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return entities.Order{ID: "ord-1", Status: entities.StatusProductionStarted}, nil
			},
		)

		if _, err := uc.CompleteProduction(context.Background(), supplier, "ord-1", "https://cdn/done.png"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unassigned supplier rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", Status: entities.StatusPaymentConfirmed, AssignedSupplierID: "other"}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)

		_, err := uc.CompleteProduction(context.Background(), supplier, "ord-1", "")
		if !errors.Is(err, ErrNotAssignedSupplier) {
			t.Fatalf("expected ErrNotAssignedSupplier, got %v", err)
		}
	})

	t.Run("transit ping pong", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", Status: entities.StatusProductionStarted, AssignedSupplierID: "sup-1", Version: 7}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).Return(entities.Order{ID: "ord-1", Status: entities.StatusInTransit, Version: 8}, nil)

		res, err := uc.StartTransit(context.Background(), supplier, "ord-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusInTransit {
			t.Fatalf("expected in_transit, got %s", res.Status)
		}
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		o := entities.Order{ID: "ord-1", Status: entities.StatusDelivered, AssignedSupplierID: "sup-1"}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)

		_, err := uc.StartTransit(context.Background(), supplier, "ord-1")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestOrderUseCase_DeleteOrder(t *testing.T) {
	t.Run("non admin rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newOrderUC(ctrl, false)

		err := uc.DeleteOrder(context.Background(), customer, "ord-1")
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, false)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1"}, nil)
		orders.EXPECT().Delete(gomock.Any(), "ord-1").Return(nil)

		if err := uc.DeleteOrder(context.Background(), admin, "ord-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestOrderUseCase_AdminModeration(t *testing.T) {
	t.Run("approve releases to suppliers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, true)

		o := entities.Order{ID: "ord-1", Status: entities.StatusAdminReview, Version: 1}
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd interfaces.TransitionCommand) (entities.Order, error) {
				if cmd.ToStatus != entities.StatusRequestCreated {
					t.Fatalf("unexpected target: %s", cmd.ToStatus)
				}
				return entities.Order{ID: "ord-1", Status: entities.StatusRequestCreated, Version: 2}, nil
			},
		)

		if _, err := uc.ApproveOrder(context.Background(), admin, "ord-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("customer cannot approve", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, _, _ := newOrderUC(ctrl, true)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", Status: entities.StatusAdminReview}, nil)

		_, err := uc.ApproveOrder(context.Background(), customer, "ord-1")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}
