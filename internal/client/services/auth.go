package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/identity"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/tokenx"
	"github.com/dmitrijs2005/bizcards/internal/client/validation"
	"github.com/dmitrijs2005/bizcards/internal/logging"
)

// AuthService drives sign-in, sign-out and identity resolution.
//
// Contract:
//   - Resolve: run the decode-then-fetch flow for the token currently held.
//   - Login: exchange credentials for a token, persist it, then Resolve.
//   - Logout: drop the token and the cached identity.
//   - Register: create an account on the API; does not sign in.
//   - Ping: check API liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Resolve(ctx context.Context) (State, error)
	Login(ctx context.Context, creds models.Credentials) (State, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, reg models.Registration) (models.Identity, error)
	State() State
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session SessionStore
	cache   *identity.Cache
	gate    *Gate
	log     logging.Logger
}

func NewAuthService(c client.Client, session SessionStore, cache *identity.Cache, log logging.Logger) AuthService {
	return &authService{
		client:  c,
		session: session,
		cache:   cache,
		gate:    NewGate(session, cache),
		log:     log.With("component", "auth"),
	}
}

func (a *authService) State() State {
	return a.gate.State()
}

// Resolve decodes the held token into a provisional identity, then fetches
// the authoritative record from the API. A fetch failure keeps the
// provisional identity unless the API rejected the credential outright; with
// no provisional identity any failure ends the session. Results arriving
// after ctx is done, or after the session changed underneath, are dropped.
func (a *authService) Resolve(ctx context.Context) (State, error) {
	token, ok := a.session.Token()
	if !ok {
		a.cache.Clear()
		return Unauthenticated, nil
	}

	epoch := a.cache.Epoch()

	claims, err := tokenx.Decode(token)
	if err != nil {
		a.log.Warn(ctx, "token decode failed, waiting for identity fetch", "error", err)
	} else if id, ok := claims.Identity(); ok {
		a.cache.Set(epoch, id, identity.SourceToken)
	}

	me, fetchErr := a.client.Me(ctx)
	if err := ctx.Err(); err != nil {
		return a.State(), err
	}
	if a.cache.Epoch() != epoch {
		a.log.Debug(ctx, "session changed during identity fetch, result dropped")
		return a.State(), nil
	}

	if fetchErr == nil {
		a.cache.Set(epoch, me, identity.SourceAPI)
		return a.State(), nil
	}

	_, _, provisional := a.cache.Get()
	if provisional && !errors.Is(fetchErr, client.ErrUnauthorized) {
		a.log.Warn(ctx, "identity fetch failed, keeping token identity", "error", fetchErr)
		return a.State(), nil
	}

	if err := a.teardown(context.WithoutCancel(ctx)); err != nil {
		a.log.Error(ctx, "session teardown failed", "error", err)
	}
	return Unauthenticated, fmt.Errorf("resolve identity: %w", fetchErr)
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (State, error) {
	if err := validation.Login(creds); err != nil {
		return a.State(), err
	}

	token, err := a.client.Login(ctx, creds)
	if err != nil {
		return a.State(), fmt.Errorf("login: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return a.State(), err
	}

	a.cache.Clear()
	if err := a.session.Login(ctx, token); err != nil {
		return a.State(), fmt.Errorf("login: %w", err)
	}
	a.log.Info(ctx, "logged in", "email", creds.Email)

	return a.Resolve(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.teardown(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) teardown(ctx context.Context) error {
	return endSession(ctx, a.session, a.cache)
}

func endSession(ctx context.Context, session SessionStore, cache *identity.Cache) error {
	cache.Clear()
	return session.Logout(ctx)
}

// endIfRejected ends the session behind g when err shows the API refused
// the credential, and reports whether it did.
func endIfRejected(ctx context.Context, g *Gate, log logging.Logger, err error) bool {
	if !errors.Is(err, client.ErrUnauthorized) {
		return false
	}
	if _, held := g.session.Token(); !held {
		return false
	}
	log.Warn(ctx, "credential rejected by api, session ended", "error", err)
	if lerr := endSession(context.WithoutCancel(ctx), g.session, g.cache); lerr != nil {
		log.Error(ctx, "session teardown failed", "error", lerr)
	}
	return true
}

// Register validates reg locally and creates the account. The new user still
// has to log in.
func (a *authService) Register(ctx context.Context, reg models.Registration) (models.Identity, error) {
	if err := validation.Registration(reg); err != nil {
		return models.Identity{}, err
	}
	created, err := a.client.Register(ctx, reg)
	if err != nil {
		return models.Identity{}, fmt.Errorf("register: %w", err)
	}
	return created, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
