package tokencache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory is an in-process denylist. Revocations are lost on restart and are
// not shared between instances.
type Memory struct {
	c *cache.Cache
}

// NewMemory creates an in-process denylist that purges expired entries every cleanup interval.
func NewMemory(cleanup time.Duration) *Memory {
	return &Memory{c: cache.New(cache.NoExpiration, cleanup)}
}

// Revoke records jti as revoked until the given time. Past deadlines are ignored.
func (m *Memory) Revoke(_ context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	m.c.Set(jti, struct{}{}, ttl)
	return nil
}

// IsRevoked reports whether jti is currently revoked.
func (m *Memory) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, found := m.c.Get(jti)
	return found, nil
}
