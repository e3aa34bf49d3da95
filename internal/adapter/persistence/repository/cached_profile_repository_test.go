package repository

import (
	"context"
	"errors"
	"testing"

	"orderhub/internal/domain/entities"
	mock_interfaces "orderhub/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestCachedProfileRepository_GetByIDWithoutRedis(t *testing.T) {
	t.Run("delegates to the backing store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		inner := mock_interfaces.NewMockIProfileRepository(ctrl)
		repo := NewCachedProfileRepository(inner, nil)

		inner.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.Profile{ID: "user-1", Role: entities.RoleCustomer}, nil)

		p, err := repo.GetByID(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != "user-1" || p.Role != entities.RoleCustomer {
			t.Fatalf("unexpected profile: %+v", p)
		}
	})

	t.Run("store errors pass through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		inner := mock_interfaces.NewMockIProfileRepository(ctrl)
		repo := NewCachedProfileRepository(inner, nil)

		storeErr := errors.New("store down")
		inner.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.Profile{}, storeErr)

		_, err := repo.GetByID(context.Background(), "user-1")
		if !errors.Is(err, storeErr) {
			t.Fatalf("expected store error, got %v", err)
		}
	})
}
