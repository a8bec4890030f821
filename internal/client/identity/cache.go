// Package identity holds the process-wide "who is logged in" slot.
//
// The slot is written by two producers: the token decoder (fast, partial)
// and the /users/me fetch (slow, authoritative). Writes never merge; a
// write replaces the previous value whole. Once an API-sourced value is
// present, token-sourced writes are refused until the slot is cleared.
//
// Every Clear advances an epoch. A writer captures Epoch() before starting
// asynchronous work and passes it to Set; if the slot was cleared in the
// meantime (logout, credential rejection) the late write is dropped.
package identity

import (
	"sync"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

// Source tells where the cached identity came from.
type Source int

const (
	SourceNone Source = iota
	// SourceToken marks a best-effort copy decoded from the token claims.
	SourceToken
	// SourceAPI marks a record fetched from the API.
	SourceAPI
)

func (s Source) String() string {
	switch s {
	case SourceToken:
		return "token"
	case SourceAPI:
		return "api"
	default:
		return "none"
	}
}

// Cache is safe for concurrent use. The zero value is an empty cache.
type Cache struct {
	mu      sync.RWMutex
	current *models.Identity
	source  Source
	epoch   uint64
}

func NewCache() *Cache {
	return &Cache{}
}

// Get returns a copy of the cached identity.
func (c *Cache) Get() (models.Identity, Source, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return models.Identity{}, SourceNone, false
	}
	return *c.current, c.source, true
}

// Epoch returns the current generation of the slot.
func (c *Cache) Epoch() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch
}

// Set stores id when epoch is still current and the write does not
// downgrade an API-sourced value to a token-sourced one. It reports whether
// the value was stored.
func (c *Cache) Set(epoch uint64, id models.Identity, source Source) bool {
	if source == SourceNone {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		return false
	}
	if source == SourceToken && c.current != nil && c.source == SourceAPI {
		return false
	}
	c.current = &id
	c.source = source
	return true
}

// Clear empties the slot and starts a new epoch.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.source = SourceNone
	c.epoch++
}
