package ports

import (
	"context"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
)

// RegisterInput is the full field set posted by the registration form,
// plus the selected role and the verification code from the OTP step.
type RegisterInput struct {
	Institute   string
	Name        string
	Email       string
	InstituteID string
	Mobile      string
	Gender      string
	DOB         string
	Stream      string
	Branch      string
	CurrentYear string
	PassoutYear string
	IDCardFront string
	IDCardBack  string
	DriveLink   string
	Role        string
	OTP         string
}

// AuthService implements registration, login, and the back-office login.
type AuthService interface {
	// Register checks the OTP against the store, re-runs the registration
	// form validation server-side and, when both pass, creates the user.
	// The returned record is redacted.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Login verifies credentials and returns a signed token plus the
	// redacted user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// AdminLogin verifies back-office credentials against the durable admin
	// collection and returns a signed token.
	AdminLogin(ctx context.Context, userID, password string) (string, error)

	// RequestOTP issues a verification code for a mobile number. The code
	// is returned for logging/test purposes only; delivery is not wired.
	RequestOTP(ctx context.Context, mobile string) (string, error)
}
