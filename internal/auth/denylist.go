package auth

import (
	"context"
	"sync"
	"time"
)

// Denylist remembers logged-out token ids until they expire.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// MemoryDenylist is a process-local Denylist. Use the redis one when more than
// one instance serves the API.
type MemoryDenylist struct {
	now func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	for id, exp := range d.revoked {
		if now.After(exp) {
			delete(d.revoked, id)
		}
	}

	if until.After(now) {
		d.revoked[tokenID] = until
	}

	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.revoked[tokenID]
	return ok && d.now().Before(exp), nil
}
