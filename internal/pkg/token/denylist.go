package token

import (
	"context"
	"errors"
	"time"

	"estoqueti/internal/pkg/cache"
)

const revokedPrefix = "revoked-token:"

// Denylist guarda os IDs (jti) de tokens revogados no logout até a expiração natural deles.
type Denylist struct {
	cache cache.Client
	now   func() time.Time
}

// NewDenylist cria a lista de revogação sobre o cache informado.
func NewDenylist(c cache.Client) *Denylist {
	return &Denylist{cache: c, now: time.Now}
}

// Revoke marca o token como revogado. Tokens já expirados são ignorados.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.cache.Set(ctx, revokedPrefix+tokenID, 1, ttl)
}

// IsRevoked indica se o token foi revogado.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, err := d.cache.Get(ctx, revokedPrefix+tokenID)
	if errors.Is(err, cache.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
