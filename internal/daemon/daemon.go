package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spendquest-app/spendquest/internal/api"
	"github.com/spendquest-app/spendquest/internal/app/progression"
	"github.com/spendquest-app/spendquest/internal/infra/sqlite"
)

// Daemon is the long-running SpendQuest process. It owns the store,
// the progression engine, and the HTTP API server.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Engine *progression.Engine
	Server *api.Server

	version string
	cancel  context.CancelFunc
}

// New creates a daemon from the on-disk configuration.
func New(version string) (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, version)
}

// NewWithConfig creates a daemon from an explicit configuration.
func NewWithConfig(cfg Config, version string) (*Daemon, error) {
	dir := cfg.Store.Dir
	if dir == "" {
		dir = spendquestHome()
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sqlite.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	pcfg := progression.DefaultConfig()
	if cfg.Rewards.XPExpense > 0 {
		pcfg.XPExpense = cfg.Rewards.XPExpense
	}
	if cfg.Rewards.XPReportView > 0 {
		pcfg.XPReportView = cfg.Rewards.XPReportView
	}
	if cfg.Rewards.XPStreakDay > 0 {
		pcfg.XPStreakDay = cfg.Rewards.XPStreakDay
	}
	if cfg.Rewards.XPUnderBudget > 0 {
		pcfg.XPUnderBudget = cfg.Rewards.XPUnderBudget
	}
	if cfg.Rewards.FreezeCost > 0 {
		pcfg.FreezeCost = cfg.Rewards.FreezeCost
	}
	pcfg.StoreTimeout = cfg.StoreTimeout()

	engine := progression.NewEngine(db, pcfg)

	server := api.NewServer(engine, version)
	server.SetCORSOrigins(cfg.API.CORSOrigins)
	if cfg.Telemetry.Prometheus {
		server.EnableMetrics()
	}

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Engine:  engine,
		Server:  server,
		version: version,
	}, nil
}

// Serve starts the HTTP API server and blocks until the context is
// canceled or a termination signal arrives.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	defer cancel()

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[daemon] SpendQuest %s serving on http://%s", d.version, addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Printf("[daemon] received %s, shutting down", sig)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[daemon] shutdown: %v", err)
	}

	return d.DB.Close()
}

// Close releases daemon resources without serving.
func (d *Daemon) Close() error {
	if d.cancel != nil {
		d.cancel()
	}
	return d.DB.Close()
}
