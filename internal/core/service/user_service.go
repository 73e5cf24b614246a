package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

// UserService implements user-record use cases over the user repository.
type UserService struct {
	repo   ports.UserRepository
	audit  ports.AuditEmitter // nil disables the audit trail
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditEmitter, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial patch. Only the record owner or an admin may
// touch a record, and only admins may change role or verified.
func (s *UserService) Update(ctx context.Context, actorID string, actorRole domain.Role, id string, patch ports.UserUpdate) (*domain.User, error) {
	if actorID != id && actorRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if actorRole != domain.RoleAdmin {
		patch.Role = nil
		patch.Verified = nil
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Emit(domain.AuditEvent{
			Actor:    actorID,
			Action:   domain.AuditUserUpdated,
			Entity:   "user",
			EntityID: id,
			At:       time.Now().UTC(),
		})
	}
	s.logger.Info().Str("user_id", id).Str("actor", actorID).Msg("user updated")
	return updated, nil
}
