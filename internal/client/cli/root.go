package cli

import (
	"context"

	"github.com/dmitrijs2005/bizcards/internal/client/services"
)

func (a *App) getStatus() string {
	s := ""
	if id, _, ok := a.gate.Identity(); ok {
		s = id.DisplayName() + " "
	} else if a.gate.IsAuthenticated() {
		s = "(resolving) "
	}
	s += string(a.Mode())
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

// Root restores the previous session, starts the connectivity watcher and
// runs the REPL until the user exits or ctx is cancelled.
func (a *App) Root(ctx context.Context) {
	printlnFn(titleStyle.Render("Business cards CLI") + " (type 'help' for commands)")

	a.checkOnline(ctx)
	a.restoreSession(ctx)

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) restoreSession(ctx context.Context) {
	if a.gate.State() == services.Unauthenticated {
		return
	}
	st, err := a.authService.Resolve(ctx)
	if err != nil {
		a.log.Warn(ctx, "saved session dropped", "error", err)
		printlnFn(renderError(err))
		return
	}
	if st == services.IdentityResolved {
		if id, _, ok := a.gate.Identity(); ok {
			printlnFn(renderSuccess("Welcome back, " + id.DisplayName() + "!"))
		}
	}
}
