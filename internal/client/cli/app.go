package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/config"
	"github.com/dmitrijs2005/bizcards/internal/client/identity"
	"github.com/dmitrijs2005/bizcards/internal/client/repositories/cards"
	"github.com/dmitrijs2005/bizcards/internal/client/services"
	"github.com/dmitrijs2005/bizcards/internal/client/session"
	"github.com/dmitrijs2005/bizcards/internal/client/storage"
	"github.com/dmitrijs2005/bizcards/internal/filex"
	"github.com/dmitrijs2005/bizcards/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config         *config.Config
	authService    services.AuthService
	cardService    services.CardService
	profileService services.ProfileService
	gate           *services.Gate
	log            logging.Logger
	db             *sql.DB
	reader         *bufio.Reader
	out            io.Writer

	mu   sync.RWMutex
	mode Mode
}

// NewApp opens local storage, restores the saved token and wires the
// services. The caller must call Run, which releases everything on return.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, os.Stderr)

	dbPath, err := filex.ExpandHome(c.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if err := filex.EnsureParentDir(dbPath); err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	store := session.NewStore(db)
	if err := store.Load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, store, client.Options{
		Timeout:           c.RequestTimeout,
		RequestsPerSecond: c.RequestsPerSecond,
		Burst:             c.RequestBurst,
		Logger:            log,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cache := identity.NewCache()
	gate := services.NewGate(store, cache)

	return &App{
		config:         c,
		authService:    services.NewAuthService(apiClient, store, cache, log),
		cardService:    services.NewCardService(apiClient, gate, cards.NewReplica(c.CardCacheTTL), c.PageSize, log),
		profileService: services.NewProfileService(apiClient, gate, cache, log),
		gate:           gate,
		log:            log,
		db:             db,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

func (a *App) Gate() gateView {
	return a.gate
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)
	a.Root(ctx)
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "close api client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "close storage", "error", err)
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the API every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
