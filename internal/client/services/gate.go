package services

import (
	"context"

	"github.com/dmitrijs2005/bizcards/internal/client/identity"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

// State is the sign-in state of the client.
type State int

const (
	Unauthenticated State = iota
	// TokenPresentUnresolved means a token is held but no identity is known
	// yet (decode failed and the identity fetch has not completed).
	TokenPresentUnresolved
	IdentityResolved
)

func (s State) String() string {
	switch s {
	case TokenPresentUnresolved:
		return "token-present"
	case IdentityResolved:
		return "resolved"
	default:
		return "unauthenticated"
	}
}

// SessionStore is the subset of session.Store the services depend on.
type SessionStore interface {
	Token() (string, bool)
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
}

// Gate answers "may the current user do X" from the session and identity
// cache. It never performs I/O and never changes state.
type Gate struct {
	session SessionStore
	cache   *identity.Cache
}

func NewGate(session SessionStore, cache *identity.Cache) *Gate {
	return &Gate{session: session, cache: cache}
}

func (g *Gate) State() State {
	if _, ok := g.session.Token(); !ok {
		return Unauthenticated
	}
	if _, _, ok := g.cache.Get(); ok {
		return IdentityResolved
	}
	return TokenPresentUnresolved
}

// IsAuthenticated is true while a token is held, resolved or not.
func (g *Gate) IsAuthenticated() bool {
	_, ok := g.session.Token()
	return ok
}

// Identity returns the cached identity together with its source.
func (g *Gate) Identity() (models.Identity, identity.Source, bool) {
	if !g.IsAuthenticated() {
		return models.Identity{}, identity.SourceNone, false
	}
	return g.cache.Get()
}

// UserID is the id of the signed-in user, when known.
func (g *Gate) UserID() (string, bool) {
	id, _, ok := g.Identity()
	if !ok || id.ID == "" {
		return "", false
	}
	return id.ID, true
}

func (g *Gate) IsBusiness() bool {
	id, _, ok := g.Identity()
	return ok && id.IsBusiness
}

// CanLike needs a user id so the local likes set can be flipped.
func (g *Gate) CanLike() bool {
	_, ok := g.UserID()
	return ok
}

func (g *Gate) CanViewFavorites() bool {
	_, ok := g.UserID()
	return ok
}

func (g *Gate) CanEditProfile() bool {
	_, ok := g.UserID()
	return ok
}

func (g *Gate) CanCreateCard() bool {
	return g.IsBusiness()
}
