package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/identity"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/logging"
)

// fakeClient implements client.Client. Hooks left nil return zero values.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	LoginFn      func(ctx context.Context, creds models.Credentials) (string, error)
	RegisterFn   func(ctx context.Context, reg models.Registration) (models.Identity, error)
	MeFn         func(ctx context.Context) (models.Identity, error)
	GetUserFn    func(ctx context.Context, id string) (models.Identity, error)
	UpdateUserFn func(ctx context.Context, id string, upd models.ProfileUpdate) (models.Identity, error)
	ListCardsFn  func(ctx context.Context) ([]models.Card, error)
	GetCardFn    func(ctx context.Context, id string) (models.Card, error)
	CreateCardFn func(ctx context.Context, in models.CardInput) (models.Card, error)
	ToggleLikeFn func(ctx context.Context, id string) (*models.Card, error)
	PingErr      error
	CloseErr     error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeClient) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) Close() error { f.hit("Close"); return f.CloseErr }

func (f *fakeClient) Ping(ctx context.Context) error { f.hit("Ping"); return f.PingErr }

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	f.hit("Login")
	if f.LoginFn == nil {
		return "", nil
	}
	return f.LoginFn(ctx, creds)
}

func (f *fakeClient) Register(ctx context.Context, reg models.Registration) (models.Identity, error) {
	f.hit("Register")
	if f.RegisterFn == nil {
		return models.Identity{}, nil
	}
	return f.RegisterFn(ctx, reg)
}

func (f *fakeClient) Me(ctx context.Context) (models.Identity, error) {
	f.hit("Me")
	if f.MeFn == nil {
		return models.Identity{}, client.ErrUnavailable
	}
	return f.MeFn(ctx)
}

func (f *fakeClient) GetUser(ctx context.Context, id string) (models.Identity, error) {
	f.hit("GetUser")
	if f.GetUserFn == nil {
		return models.Identity{}, client.ErrUnavailable
	}
	return f.GetUserFn(ctx, id)
}

func (f *fakeClient) UpdateUser(ctx context.Context, id string, upd models.ProfileUpdate) (models.Identity, error) {
	f.hit("UpdateUser")
	if f.UpdateUserFn == nil {
		return models.Identity{}, nil
	}
	return f.UpdateUserFn(ctx, id, upd)
}

func (f *fakeClient) ListCards(ctx context.Context) ([]models.Card, error) {
	f.hit("ListCards")
	if f.ListCardsFn == nil {
		return nil, nil
	}
	return f.ListCardsFn(ctx)
}

func (f *fakeClient) GetCard(ctx context.Context, id string) (models.Card, error) {
	f.hit("GetCard")
	if f.GetCardFn == nil {
		return models.Card{}, client.ErrNotFound
	}
	return f.GetCardFn(ctx, id)
}

func (f *fakeClient) CreateCard(ctx context.Context, in models.CardInput) (models.Card, error) {
	f.hit("CreateCard")
	if f.CreateCardFn == nil {
		return models.Card{}, nil
	}
	return f.CreateCardFn(ctx, in)
}

func (f *fakeClient) ToggleLike(ctx context.Context, id string) (*models.Card, error) {
	f.hit("ToggleLike")
	if f.ToggleLikeFn == nil {
		return nil, nil
	}
	return f.ToggleLikeFn(ctx, id)
}

// fakeSession is an in-memory SessionStore.
type fakeSession struct {
	mu        sync.Mutex
	token     string
	LoginErr  error
	LogoutErr error
}

func (s *fakeSession) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *fakeSession) Login(ctx context.Context, token string) error {
	if s.LoginErr != nil {
		return s.LoginErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *fakeSession) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return s.LogoutErr
}

func makeToken(claims map[string]any) string {
	body, _ := json.Marshal(claims)
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." +
		enc.EncodeToString(body) + "." +
		enc.EncodeToString([]byte("signature"))
}

// signedIn returns a gate whose session and cache already hold id.
func signedIn(id models.Identity) (*fakeSession, *identity.Cache, *Gate) {
	sess := &fakeSession{token: makeToken(map[string]any{"_id": id.ID})}
	cache := identity.NewCache()
	cache.Set(cache.Epoch(), id, identity.SourceAPI)
	return sess, cache, NewGate(sess, cache)
}

func discard() logging.Logger { return logging.Discard() }
