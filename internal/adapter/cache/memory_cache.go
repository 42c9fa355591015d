package cache

import (
	"sync"

	"github.com/example/dme-recommend-service/internal/domain"
)

// MemoryRosterCache keeps the partner roster in memory for request-time
// reads.
type MemoryRosterCache struct {
	mu    sync.RWMutex
	store map[string]domain.Partner
	order []string
}

func NewMemoryRosterCache() *MemoryRosterCache {
	return &MemoryRosterCache{store: make(map[string]domain.Partner)}
}

func (c *MemoryRosterCache) Get(id string) (domain.Partner, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.store[id]
	return p, ok
}

func (c *MemoryRosterCache) Put(p domain.Partner) {
	c.mu.Lock()
	if _, known := c.store[p.PartnerID]; !known {
		c.order = append(c.order, p.PartnerID)
	}
	c.store[p.PartnerID] = p
	c.mu.Unlock()
}

// All returns partners in insertion order.
func (c *MemoryRosterCache) All() []domain.Partner {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Partner, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.store[id])
	}
	return out
}

var _ domain.RosterCache = (*MemoryRosterCache)(nil)
