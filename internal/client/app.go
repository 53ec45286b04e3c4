package client

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/scorebook-app/scorebook/internal/config"
	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/internal/service"
	"github.com/scorebook-app/scorebook/internal/workers"
)

// shutdownGrace bounds the final drain attempt before the process exits.
const shutdownGrace = 5 * time.Second

// App is the long-running sync agent: it keeps the local replica reconciled
// with the remote until the process is told to stop.
type App struct {
	cfg      *config.ClientConfig
	services *service.Services
	logger   *logger.Logger
}

// NewApp assembles the client application from pre-wired services.
func NewApp(cfg *config.ClientConfig, services *service.Services, log *logger.Logger) (*App, error) {
	if cfg == nil || services == nil {
		return nil, errors.New("client app: nil configuration or services")
	}
	return &App{cfg: cfg, services: services, logger: log}, nil
}

// Run implements [Client]. It restores queued work from the previous run,
// converges with the remote when a session is available, and then keeps the
// background sync job running until SIGINT/SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.services.Store.Reconcile(ctx); err != nil {
		return err
	}

	if a.services.Session.Valid() {
		if err := a.services.Store.PullAll(ctx); err != nil {
			// Offline start is normal; queued work will flow once the
			// remote is reachable again.
			a.logger.Warn().Err(err).Msg("initial pull skipped")
		}
	} else {
		a.logger.Info().Msg("no active session; sync suspended until a token appears")
	}

	pool := workers.NewWorkers(
		workers.NewSyncWorker(ctx, a.services.Job, a.cfg.Sync.Interval),
	)
	pool.Run()
	a.services.Job.Trigger()

	<-ctx.Done()
	a.logger.Info().Msg("shutting down; flushing sync queue")

	a.services.Job.Stop()

	// One last bounded drain so short-lived sessions do not strand edits.
	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := a.services.Engine.Sync(flushCtx); err != nil {
		a.logger.Warn().Err(err).Msg("final drain incomplete; intents remain queued")
	}

	return nil
}
