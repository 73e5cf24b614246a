package memory

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const defaultOTPTTL = 5 * time.Minute

// OTPStore keeps issued one-time codes in an expiring in-process cache.
// A configured fixed code is always accepted, which keeps the registration
// flow usable when no delivery channel exists.
type OTPStore struct {
	codes     *gocache.Cache
	fixedCode string
}

// NewOTPStore creates the store. ttl <= 0 falls back to five minutes.
func NewOTPStore(fixedCode string, ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	return &OTPStore{
		codes:     gocache.New(ttl, 2*ttl),
		fixedCode: fixedCode,
	}
}

// Issue generates and stores a fresh 4-digit code for the mobile number.
func (s *OTPStore) Issue(_ context.Context, mobile string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("otp issue: %w", err)
	}
	s.codes.SetDefault(mobile, code)
	return code, nil
}

// Verify consumes the stored code on a match. The fixed code, when
// configured, is accepted without having been issued.
func (s *OTPStore) Verify(_ context.Context, mobile, code string) (bool, error) {
	if s.fixedCode != "" && code == s.fixedCode {
		return true, nil
	}
	stored, ok := s.codes.Get(mobile)
	if !ok || stored.(string) != code {
		return false, nil
	}
	s.codes.Delete(mobile)
	return true, nil
}

func generateCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", binary.BigEndian.Uint32(b)%10000), nil
}
