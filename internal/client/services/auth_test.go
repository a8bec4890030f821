package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/identity"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/validation"
)

func newAuth(fc *fakeClient, sess *fakeSession) (AuthService, *identity.Cache) {
	cache := identity.NewCache()
	return NewAuthService(fc, sess, cache, discard()), cache
}

func TestResolve_NoToken(t *testing.T) {
	fc := &fakeClient{}
	svc, cache := newAuth(fc, &fakeSession{})

	st, err := svc.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Unauthenticated, st)
	assert.Zero(t, fc.Calls("Me"), "no fetch without a token")
	_, _, ok := cache.Get()
	assert.False(t, ok)
}

func TestResolve_TokenIdentityBeforeFetch_ThenAPIWins(t *testing.T) {
	sess := &fakeSession{token: makeToken(map[string]any{"_id": "u1", "email": "a@b.com"})}
	fc := &fakeClient{}
	svc, cache := newAuth(fc, sess)

	var seen models.Identity
	var seenSource identity.Source
	fc.MeFn = func(ctx context.Context) (models.Identity, error) {
		seen, seenSource, _ = cache.Get()
		return models.Identity{ID: "u1", Email: "a@b.com", Name: models.Name{First: "Ann", Last: "Bee"}}, nil
	}

	st, err := svc.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, IdentityResolved, st)

	assert.Equal(t, models.Identity{ID: "u1", Email: "a@b.com"}, seen)
	assert.Equal(t, identity.SourceToken, seenSource)

	got, src, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, identity.SourceAPI, src)
	assert.Equal(t, "Ann Bee", got.Name.Full())
}

func TestResolve_DecodeFails_FetchSucceeds(t *testing.T) {
	sess := &fakeSession{token: "corrupted-storage"}
	fc := &fakeClient{MeFn: func(ctx context.Context) (models.Identity, error) {
		return models.Identity{ID: "u9"}, nil
	}}
	svc, cache := newAuth(fc, sess)

	st, err := svc.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, IdentityResolved, st)
	got, src, _ := cache.Get()
	assert.Equal(t, "u9", got.ID)
	assert.Equal(t, identity.SourceAPI, src)
}

func TestResolve_DecodeFails_FetchFails_TearsDown(t *testing.T) {
	sess := &fakeSession{token: "a.b.c"}
	fc := &fakeClient{}
	svc, cache := newAuth(fc, sess)

	st, err := svc.Resolve(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, Unauthenticated, st)
	_, ok := sess.Token()
	assert.False(t, ok, "token cleared")
	_, _, ok = cache.Get()
	assert.False(t, ok, "cache cleared")
}

func TestResolve_FetchFails_KeepsTokenIdentity(t *testing.T) {
	sess := &fakeSession{token: makeToken(map[string]any{"_id": "u1", "isBusiness": true})}
	fc := &fakeClient{MeFn: func(ctx context.Context) (models.Identity, error) {
		return models.Identity{}, client.ErrUnavailable
	}}
	svc, cache := newAuth(fc, sess)

	st, err := svc.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, IdentityResolved, st)
	got, src, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, identity.SourceToken, src)
	assert.True(t, got.IsBusiness)
	_, ok = sess.Token()
	assert.True(t, ok)
}

func TestResolve_Unauthorized_TearsDownEvenWithTokenIdentity(t *testing.T) {
	sess := &fakeSession{token: makeToken(map[string]any{"_id": "u1"})}
	fc := &fakeClient{MeFn: func(ctx context.Context) (models.Identity, error) {
		return models.Identity{}, &client.APIError{Method: "GET", Path: "/users/me", StatusCode: 401}
	}}
	svc, cache := newAuth(fc, sess)

	st, err := svc.Resolve(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, Unauthenticated, st)
	assert.Equal(t, Unauthenticated, svc.State())
	_, _, ok := cache.Get()
	assert.False(t, ok)
}

func TestResolve_LateFetchAfterLogoutIsDropped(t *testing.T) {
	sess := &fakeSession{token: makeToken(map[string]any{"_id": "u1"})}
	fc := &fakeClient{}
	svc, cache := newAuth(fc, sess)

	fc.MeFn = func(ctx context.Context) (models.Identity, error) {
		require.NoError(t, svc.Logout(ctx))
		return models.Identity{ID: "u1"}, nil
	}

	st, err := svc.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Unauthenticated, st)
	_, _, ok := cache.Get()
	assert.False(t, ok, "stale fetch must not repopulate the cache")
}

func TestResolve_CancelledDuringFetch(t *testing.T) {
	sess := &fakeSession{token: makeToken(map[string]any{"_id": "u1"})}
	ctx, cancel := context.WithCancel(context.Background())
	fc := &fakeClient{MeFn: func(context.Context) (models.Identity, error) {
		cancel()
		return models.Identity{}, client.ErrUnavailable
	}}
	svc, cache := newAuth(fc, sess)

	_, err := svc.Resolve(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, ok := sess.Token()
	assert.True(t, ok, "cancelled fetch does not end the session")
	_, src, _ := cache.Get()
	assert.Equal(t, identity.SourceToken, src)
}

func TestLogin_Success(t *testing.T) {
	token := makeToken(map[string]any{"_id": "u1"})
	sess := &fakeSession{}
	fc := &fakeClient{
		LoginFn: func(ctx context.Context, creds models.Credentials) (string, error) {
			assert.Equal(t, "a@b.com", creds.Email)
			return token, nil
		},
		MeFn: func(ctx context.Context) (models.Identity, error) {
			return models.Identity{ID: "u1", Email: "a@b.com"}, nil
		},
	}
	svc, cache := newAuth(fc, sess)

	st, err := svc.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, IdentityResolved, st)

	got, _ := sess.Token()
	assert.Equal(t, token, got)
	id, _, _ := cache.Get()
	assert.Equal(t, "a@b.com", id.Email)
}

func TestLogin_ReplacesPreviousIdentity(t *testing.T) {
	sess := &fakeSession{}
	fc := &fakeClient{
		LoginFn: func(context.Context, models.Credentials) (string, error) {
			return makeToken(map[string]any{"_id": "u2"}), nil
		},
	}
	svc, cache := newAuth(fc, sess)
	cache.Set(cache.Epoch(), models.Identity{ID: "u1"}, identity.SourceAPI)

	_, err := svc.Login(context.Background(), models.Credentials{Email: "b@b.com", Password: "x"})
	require.NoError(t, err)
	id, src, _ := cache.Get()
	assert.Equal(t, "u2", id.ID)
	assert.Equal(t, identity.SourceToken, src)
}

func TestLogin_ValidationNeverSends(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newAuth(fc, &fakeSession{})

	_, err := svc.Login(context.Background(), models.Credentials{Email: "nope"})
	require.ErrorIs(t, err, validation.ErrValidation)
	assert.Zero(t, fc.Calls("Login"))
}

func TestLogin_Rejected(t *testing.T) {
	sess := &fakeSession{}
	fc := &fakeClient{LoginFn: func(context.Context, models.Credentials) (string, error) {
		return "", &client.APIError{StatusCode: 400, Message: "Invalid email or password"}
	}}
	svc, _ := newAuth(fc, sess)

	st, err := svc.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, client.ErrRejected)
	assert.Equal(t, Unauthenticated, st)
	assert.Zero(t, fc.Calls("Me"))
}

func TestLogout_ClearsEvenWhenStorageFails(t *testing.T) {
	sess := &fakeSession{token: "t", LogoutErr: errors.New("disk full")}
	svc, cache := newAuth(&fakeClient{}, sess)
	cache.Set(cache.Epoch(), models.Identity{ID: "u1"}, identity.SourceAPI)

	err := svc.Logout(context.Background())
	require.Error(t, err)
	assert.Equal(t, Unauthenticated, svc.State())
	_, _, ok := cache.Get()
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	fc := &fakeClient{RegisterFn: func(ctx context.Context, reg models.Registration) (models.Identity, error) {
		return models.Identity{ID: "new", Email: reg.Email}, nil
	}}
	svc, _ := newAuth(fc, &fakeSession{})

	_, err := svc.Register(context.Background(), models.Registration{Email: "x"})
	require.ErrorIs(t, err, validation.ErrValidation)
	assert.Zero(t, fc.Calls("Register"))

	reg := models.Registration{
		Name:     models.Name{First: "Dana", Last: "Levi"},
		Phone:    "050-1234567",
		Email:    "dana@example.com",
		Password: "secret1",
		Address:  models.Address{State: "C", Country: "IL", City: "TA", Street: "Main", HouseNumber: 1, Zip: 1},
	}
	got, err := svc.Register(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)
}

func TestPingAndClose(t *testing.T) {
	fc := &fakeClient{PingErr: client.ErrUnavailable}
	svc, _ := newAuth(fc, &fakeSession{})

	require.ErrorIs(t, svc.Ping(context.Background()), client.ErrUnavailable)
	require.NoError(t, svc.Close(context.Background()))
	assert.Equal(t, 1, fc.Calls("Close"))
}
