package redis

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultOTPTTL = 5 * time.Minute

// OTPStore keeps issued one-time codes in Redis so verification survives a
// process restart and works across replicas.
// Key format: otp:<mobile>
type OTPStore struct {
	client    *redis.Client
	ttl       time.Duration
	fixedCode string
}

// NewOTPStore creates an OTPStore wrapping the given Redis client. The fixed
// code, when non-empty, is always accepted; ttl <= 0 falls back to five
// minutes.
func NewOTPStore(client *redis.Client, fixedCode string, ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	return &OTPStore{client: client, ttl: ttl, fixedCode: fixedCode}
}

// Issue generates a fresh 4-digit code and stores it under the mobile key.
func (s *OTPStore) Issue(ctx context.Context, mobile string) (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("otp issue: %w", err)
	}
	code := fmt.Sprintf("%04d", binary.BigEndian.Uint32(b)%10000)

	if err := s.client.Set(ctx, s.key(mobile), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("otp issue: %w", err)
	}
	return code, nil
}

// Verify consumes the stored code on a match. The fixed code, when
// configured, passes without having been issued.
func (s *OTPStore) Verify(ctx context.Context, mobile, code string) (bool, error) {
	if s.fixedCode != "" && code == s.fixedCode {
		return true, nil
	}

	stored, err := s.client.Get(ctx, s.key(mobile)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("otp verify: %w", err)
	}
	if stored != code {
		return false, nil
	}

	if err := s.client.Del(ctx, s.key(mobile)).Err(); err != nil {
		return false, fmt.Errorf("otp verify: %w", err)
	}
	return true, nil
}

func (s *OTPStore) key(mobile string) string {
	return fmt.Sprintf("otp:%s", mobile)
}
