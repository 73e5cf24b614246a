package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPStore_IssueVerify(t *testing.T) {
	store := NewOTPStore("", 0)
	ctx := context.Background()

	code, err := store.Issue(ctx, "9876543210")
	require.NoError(t, err)
	require.Len(t, code, 4)

	ok, err := store.Verify(ctx, "9876543210", code)
	require.NoError(t, err)
	assert.True(t, ok)

	// Codes are single use.
	ok, err = store.Verify(ctx, "9876543210", code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPStore_WrongCode(t *testing.T) {
	store := NewOTPStore("", 0)
	ctx := context.Background()

	code, err := store.Issue(ctx, "9876543210")
	require.NoError(t, err)

	ok, err := store.Verify(ctx, "9876543210", "0000")
	require.NoError(t, err)
	if code == "0000" {
		t.Skip("generated code happens to equal the guess")
	}
	assert.False(t, ok)

	// A miss does not consume the stored code.
	ok, err = store.Verify(ctx, "9876543210", code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOTPStore_UnknownMobile(t *testing.T) {
	store := NewOTPStore("", 0)

	ok, err := store.Verify(context.Background(), "9999999999", "1234")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPStore_FixedCodeAlwaysAccepted(t *testing.T) {
	store := NewOTPStore("1234", 0)
	ctx := context.Background()

	// Accepted without a prior Issue, and never consumed.
	for i := 0; i < 2; i++ {
		ok, err := store.Verify(ctx, "9876543210", "1234")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestOTPStore_Expiry(t *testing.T) {
	store := NewOTPStore("", 20*time.Millisecond)
	ctx := context.Background()

	code, err := store.Issue(ctx, "9876543210")
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	ok, err := store.Verify(ctx, "9876543210", code)
	require.NoError(t, err)
	assert.False(t, ok)
}
