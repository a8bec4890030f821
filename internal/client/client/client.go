package client

import (
	"context"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

// TokenSource yields the current credential, if any.
type TokenSource interface {
	Token() (string, bool)
}

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Login(ctx context.Context, creds models.Credentials) (string, error)
	Register(ctx context.Context, reg models.Registration) (models.Identity, error)
	Me(ctx context.Context) (models.Identity, error)
	GetUser(ctx context.Context, id string) (models.Identity, error)
	UpdateUser(ctx context.Context, id string, upd models.ProfileUpdate) (models.Identity, error)

	ListCards(ctx context.Context) ([]models.Card, error)
	GetCard(ctx context.Context, id string) (models.Card, error)
	CreateCard(ctx context.Context, in models.CardInput) (models.Card, error)
	// ToggleLike flips the caller's like. The returned card is nil when the
	// API answered without a card body.
	ToggleLike(ctx context.Context, id string) (*models.Card, error)
}
