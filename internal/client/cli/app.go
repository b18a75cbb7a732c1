package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/client/client"
	"github.com/dmitrijs2005/readdaily/internal/client/config"
	"github.com/dmitrijs2005/readdaily/internal/client/models"
	"github.com/dmitrijs2005/readdaily/internal/client/services"
	"github.com/dmitrijs2005/readdaily/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
	ModeLocal   Mode = "local"
)

type App struct {
	config  *config.Config
	service services.Service
	logger  logging.Logger
	session *models.Session
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the local database and builds the service for the configured
// mode. In local mode the configured catalog file, if any, is imported.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	a := &App{config: c, logger: logger, reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	switch c.Mode {
	case config.ModeLocal:
		loc, err := c.Location()
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		a.service = services.NewLocalService(db, loc, logger)
		a.mode = ModeLocal

		if c.CatalogPath != "" {
			if err := a.importFile(ctx, c.CatalogPath); err != nil {
				_ = db.Close()
				return nil, err
			}
		}

	default:
		apiClient, err := client.NewReadDailyClient(c.ServerEndpointAddr)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		a.service = services.NewRemoteService(apiClient, db, logger)
		a.mode = ModeOnline
	}

	return a, nil
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.service.Close(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) isAdmin() bool {
	return a.session != nil && a.session.IsAdmin()
}

// StartOnlineStatusWatcher pings the service every interval and flips the
// mode between online and offline. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

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

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.service.Ping(ctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}
