package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/identity"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/validation"
	"github.com/dmitrijs2005/bizcards/internal/logging"
)

// ProfileService reads and edits the signed-in user's own record.
type ProfileService interface {
	// Get returns the user's record. When the API cannot be reached the
	// cached identity is returned with stale set. A rejected credential
	// ends the session instead.
	Get(ctx context.Context) (id models.Identity, stale bool, err error)
	Update(ctx context.Context, upd models.ProfileUpdate) (models.Identity, error)
}

type profileService struct {
	client client.Client
	gate   *Gate
	cache  *identity.Cache
	log    logging.Logger
}

func NewProfileService(c client.Client, gate *Gate, cache *identity.Cache, log logging.Logger) ProfileService {
	return &profileService{client: c, gate: gate, cache: cache, log: log.With("component", "profile")}
}

func (p *profileService) Get(ctx context.Context) (models.Identity, bool, error) {
	cached, _, ok := p.gate.Identity()
	if !ok || cached.ID == "" {
		return models.Identity{}, false, ErrLoginRequired
	}
	epoch := p.cache.Epoch()

	fresh, err := p.client.GetUser(ctx, cached.ID)
	if ctx.Err() != nil {
		return models.Identity{}, false, ctx.Err()
	}
	if endIfRejected(ctx, p.gate, p.log, err) {
		return models.Identity{}, false, fmt.Errorf("get profile: %w", err)
	}
	if err != nil {
		p.log.Warn(ctx, "profile fetch failed, showing cached identity", "user_id", cached.ID, "error", err)
		return cached, true, nil
	}
	p.cache.Set(epoch, fresh, identity.SourceAPI)
	return fresh, false, nil
}

func (p *profileService) Update(ctx context.Context, upd models.ProfileUpdate) (models.Identity, error) {
	userID, ok := p.gate.UserID()
	if !ok {
		return models.Identity{}, ErrLoginRequired
	}
	if err := validation.ProfileUpdate(upd); err != nil {
		return models.Identity{}, err
	}
	epoch := p.cache.Epoch()

	updated, err := p.client.UpdateUser(ctx, userID, upd)
	if err != nil {
		endIfRejected(ctx, p.gate, p.log, err)
		return models.Identity{}, fmt.Errorf("update profile: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return models.Identity{}, err
	}
	p.cache.Set(epoch, updated, identity.SourceAPI)
	p.log.Info(ctx, "profile updated", "user_id", userID)
	return updated, nil
}
