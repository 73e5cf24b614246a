package ports

import "context"

// OTPStore issues and verifies short-lived one-time codes keyed by mobile
// number. Verify consumes the code on success.
type OTPStore interface {
	Issue(ctx context.Context, mobile string) (string, error)
	Verify(ctx context.Context, mobile, code string) (bool, error)
}
