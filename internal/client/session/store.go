// Package session owns the client's credential token.
//
// The token is persisted under a single metadata key so a restarted client
// resumes the previous session. IsAuthenticated is a presence check: an
// expired or revoked token still counts until the API rejects it and the
// caller logs out.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bizcards/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bizcards/internal/common"
	"github.com/dmitrijs2005/bizcards/internal/dbx"
)

// Store is safe for concurrent use.
type Store struct {
	db *sql.DB

	mu    sync.RWMutex
	token string
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

// Load reads the persisted token into memory. A missing token is not an
// error; it leaves the store logged out.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.repo(s.db).Get(ctx, common.TokenMetadataKey)
	if errors.Is(err, common.ErrorNotFound) {
		s.set("")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}

	s.set(strings.TrimSpace(string(raw)))
	return nil
}

// Login persists token and makes it the current credential.
func (s *Store) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return common.ErrEmptyToken
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Set(ctx, common.TokenMetadataKey, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.set(token)
	return nil
}

// Logout forgets the token. Memory is cleared even when the storage delete
// fails; the storage error is still returned.
func (s *Store) Logout(ctx context.Context) error {
	s.set("")
	if err := s.repo(s.db).Delete(ctx, common.TokenMetadataKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Token returns the current credential. It satisfies client.TokenSource.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

func (s *Store) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
