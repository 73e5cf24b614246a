package ports

import (
	"context"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
)

// AdminRepository defines the durable persistence contract for back-office
// credentials.
type AdminRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
}
