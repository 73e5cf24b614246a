package ports

import (
	"context"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
)

// UserUpdate is a partial-record patch. Nil fields are left untouched;
// non-nil fields are shallow-merged over the stored record.
type UserUpdate struct {
	Name           *string
	Email          *string
	Mobile         *string
	Role           *domain.Role
	Verified       *bool
	Institute      *string
	RollNo         *string
	EmployeeID     *string
	BusinessName   *string
	StudentDetails *domain.StudentDetails
	VendorDetails  *domain.VendorDetails
}

// UserRepository defines persistence operations for marketplace users.
// Every read path returns records with the password hash redacted.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByMobile(ctx context.Context, mobile string) (*domain.User, error)

	// Create assigns a fresh id, forces Verified=false and a placeholder
	// credential, stamps both timestamps, and returns the redacted record.
	// Email and mobile uniqueness are enforced at insert time.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// Update shallow-merges patch over the stored record and refreshes
	// UpdatedAt. Returns domain.ErrUserNotFound when id is unknown.
	Update(ctx context.Context, id string, patch UserUpdate) (*domain.User, error)

	// VerifyCredentials returns the redacted record only when email matches
	// and the password checks out against the stored hash; any mismatch
	// yields domain.ErrInvalidCredentials.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
}
