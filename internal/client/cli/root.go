package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/readdaily/internal/client/client"
	"github.com/dmitrijs2005/readdaily/internal/client/services"
	"github.com/dmitrijs2005/readdaily/internal/common"
)

func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		s = a.session.Email + " "
	}
	if m := a.currentMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the REPL until the user exits. In remote mode the connectivity
// watcher runs alongside it.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to ReadDaily CLI (type 'help' for commands)")
	if last := a.service.LastEmail(ctx); last != "" {
		fmt.Fprintf(a.out, "Last signed in as %s; type 'login' to continue\n", last)
	}

	if a.currentMode() != ModeLocal {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// describeError turns service errors into short user-facing messages.
func describeError(err error) string {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "authentication failed or session expired, use 'login'"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrNoLocalAccount):
		return "no such account on this machine, use 'register'"
	case errors.Is(err, common.ErrorForbidden):
		return "this command requires the admin role"
	case errors.Is(err, services.ErrNotSupported):
		return err.Error()
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "already exists"
	default:
		return err.Error()
	}
}
