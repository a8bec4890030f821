// Package cards keeps the client's transient replica of business cards.
//
// The API owns the records; the replica exists so list, detail and
// favorites views share one copy and a like toggled in one view shows up in
// the others. Entries expire after the configured TTL and are refreshed by
// the next fetch. The order in which the API listed cards is preserved.
package cards

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

type Replica struct {
	mu    sync.Mutex
	c     *cache.Cache
	order []string
}

// NewReplica builds a replica whose entries live for ttl. A non-positive
// ttl disables expiry.
func NewReplica(ttl time.Duration) *Replica {
	if ttl <= 0 {
		return &Replica{c: cache.New(cache.NoExpiration, 0)}
	}
	return &Replica{c: cache.New(ttl, 2*ttl)}
}

// ReplaceAll drops the current contents and stores cards in the given order.
func (r *Replica) ReplaceAll(cards []models.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.c.Flush()
	r.order = make([]string, 0, len(cards))
	for _, card := range cards {
		r.putLocked(card)
	}
}

// Put inserts or replaces one card. New ids go to the end of the order.
func (r *Replica) Put(card models.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.putLocked(card)
}

func (r *Replica) putLocked(card models.Card) {
	if _, found := r.c.Get(card.ID); !found && !r.listedLocked(card.ID) {
		r.order = append(r.order, card.ID)
	}
	r.c.Set(card.ID, card.Clone(), cache.DefaultExpiration)
}

func (r *Replica) listedLocked(id string) bool {
	for _, v := range r.order {
		if v == id {
			return true
		}
	}
	return false
}

// Get returns a copy of the card with the given id.
func (r *Replica) Get(id string) (models.Card, bool) {
	x, found := r.c.Get(id)
	if !found {
		return models.Card{}, false
	}
	return x.(models.Card).Clone(), true
}

// Update applies fn to the stored card under the replica lock and stores
// the result. It returns the new value, or false when id is not present.
func (r *Replica) Update(id string, fn func(models.Card) models.Card) (models.Card, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.c.Get(id)
	if !found {
		return models.Card{}, false
	}
	next := fn(x.(models.Card).Clone())
	r.c.Set(id, next.Clone(), cache.DefaultExpiration)
	return next, true
}

// All returns copies of the live cards in listing order. Expired entries
// are pruned from the order as a side effect.
func (r *Replica) All() []models.Card {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Card, 0, len(r.order))
	live := r.order[:0]
	for _, id := range r.order {
		x, found := r.c.Get(id)
		if !found {
			continue
		}
		live = append(live, id)
		out = append(out, x.(models.Card).Clone())
	}
	r.order = live
	return out
}

// Len is the number of live cards.
func (r *Replica) Len() int {
	return r.c.ItemCount()
}
