// Package server wires the ReadDaily server: storage, services, the gRPC
// endpoint, the metrics endpoint and the scheduled jobs, and runs them until
// a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/dmitrijs2005/readdaily/internal/server/config"
	"github.com/dmitrijs2005/readdaily/internal/server/metadata"
	"github.com/dmitrijs2005/readdaily/internal/server/observability"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/readdaily/internal/server/scheduler"
	"github.com/dmitrijs2005/readdaily/internal/server/services"
	"github.com/dmitrijs2005/readdaily/internal/server/summarizer"
	"github.com/dmitrijs2005/readdaily/internal/server/youtube"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/readdaily/internal/server/grpc"
)

const purgeTokensSpec = "@hourly"

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	registry   *prometheus.Registry
	grpcServer *gs.GRPCServer
	scheduler  *scheduler.Scheduler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	clock := services.NewClock(loc)

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	sessions := services.NewSessionTracker(db, rm, c.SessionIdleTimeout, clock)
	users := services.NewUserService(db, rm, c, sessions, clock, logger)
	readingSvc := services.NewReadingService(db, rm, sessions, clock, logger)
	extractor := metadata.NewExtractor(c.FetchTimeout, c.FetchRatePerSecond, logger)

	svc := gs.Services{
		Users:   users,
		Reading: readingSvc,
		Social:  services.NewSocialService(db, rm),
		Sharing: services.NewSharingService(db, rm, extractor, clock, logger),
		Catalog: services.NewCatalogService(db, rm, clock),
		Export:  services.NewExportService(readingSvc, c, clock, logger),
		Clock:   clock,
	}

	sched := scheduler.New(loc, logger)
	if err := sched.Add("purge_refresh_tokens", purgeTokensSpec, func(ctx context.Context) error {
		n, err := users.PurgeExpiredTokens(ctx)
		if err != nil {
			return err
		}
		logger.Debug(ctx, "Expired refresh tokens purged", "count", n)
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	if c.AutomationEnabled() {
		automation, err := newAutomation(ctx, c, db, rm, clock, logger)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		svc.Automation = automation

		if err := sched.Add("content_automation", c.AutomationCron, func(ctx context.Context) error {
			stats, err := automation.Run(ctx)
			metrics.AutomationRun(stats.Created, err)
			if err != nil {
				return err
			}
			logger.Info(ctx, "Content automation finished",
				"fetched", stats.Fetched, "skipped", stats.Skipped, "created", stats.Created, "failed", stats.Failed)
			return nil
		}); err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		logger.Warn(ctx, "Content automation disabled: no YouTube API key or channels configured")
	}

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		registry:   registry,
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, svc, metrics, c.SecretKey),
		scheduler:  sched,
	}, nil
}

func newAutomation(ctx context.Context, c *config.Config, db *sql.DB, rm repomanager.RepositoryManager,
	clock services.Clock, logger logging.Logger) (*services.AutomationService, error) {
	videos, err := youtube.New(ctx, c.YouTubeAPIKey)
	if err != nil {
		return nil, fmt.Errorf("youtube client init error: %w", err)
	}
	sum := summarizer.New(c.OpenAIAPIKey, c.OpenAIBaseURL, c.OpenAIModel, c.LLMTimeout, logger)
	return services.NewAutomationService(db, rm, videos, sum, c.YouTubeChannels, c.MaxVideosPerRun, clock, logger), nil
}

// Run blocks until ctx is cancelled, a termination signal arrives or one of
// the components fails, then stops the rest and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.grpcServer.Run(ctx)
	})

	if app.config.MetricsAddr != "" {
		ms := observability.NewServer(app.config.MetricsAddr, app.registry, app.logger)
		g.Go(func() error {
			return ms.Run(ctx)
		})
	}

	g.Go(func() error {
		return app.scheduler.Run(ctx)
	})

	err := g.Wait()

	closeCtx := context.Background()
	app.logger.Info(closeCtx, "Closing database")
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(closeCtx, "db close error", "error", cerr)
	}

	if err != nil {
		app.logger.Error(closeCtx, "app stopped with error", "error", err)
		return err
	}
	app.logger.Info(closeCtx, "App stopped")
	return nil
}
