package interfaces

import (
	"context"

	"orderhub/internal/domain/entities"
)

// IProfileRepository resolves an opaque actor id to its stored profile.
// Returns the zero Profile when the id is unknown.

type IProfileRepository interface {
	GetByID(ctx context.Context, id string) (entities.Profile, error)
}
