package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoqueti/internal/pkg/cache"
)

func TestDenylist_RevokeAndCheck(t *testing.T) {
	d := NewDenylist(cache.NewMemoryClient())
	ctx := context.Background()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestDenylist_ExpiredTokenIsIgnored(t *testing.T) {
	d := NewDenylist(cache.NewMemoryClient())
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "jti-velho", time.Now().Add(-time.Minute)))

	revoked, err := d.IsRevoked(ctx, "jti-velho")
	require.NoError(t, err)
	assert.False(t, revoked)
}
