package ports

import (
	"context"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
)

// UserService defines use-case operations over user records.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)

	// Update applies a partial patch. Only the record owner or an admin may
	// update a record; actorID/actorRole come from the auth claims.
	Update(ctx context.Context, actorID string, actorRole domain.Role, id string, patch UserUpdate) (*domain.User, error)
}
