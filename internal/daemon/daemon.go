package daemon

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/smilepoint-health/smilepoint/internal/api"
	"github.com/smilepoint-health/smilepoint/internal/app/rewards"
	"github.com/smilepoint-health/smilepoint/internal/health"
	"github.com/smilepoint-health/smilepoint/internal/infra/sqlite"
)

// Daemon is the SmilePoint runtime. It wires the store, the rewards engine,
// and the HTTP API together.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Engine *rewards.Service
	Server *api.Server
	Health *health.Checker
	Log    *log.Logger
	cancel context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dataDir := cfg.Storage.Dir
	if dataDir == "" {
		dataDir = smilepointHome()
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	engine := rewards.NewService(db)

	srv := api.NewServer(engine)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	srv.SetCORSOrigins(cfg.API.CORSOrigins)

	checker := health.NewChecker(db, dataDir)
	srv.SetHealth(checker)

	return &Daemon{
		Config: cfg,
		DB:     db,
		Engine: engine,
		Server: srv,
		Health: checker,
		Log:    newLogger(cfg.Logging),
	}, nil
}

// newLogger builds the daemon logger from the logging config, appending to
// the configured file. Falls back to stderr when the file cannot be opened.
func newLogger(cfg LoggingConfig) *log.Logger {
	out := io.Writer(os.Stderr)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0700); err == nil {
			if f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600); err == nil {
				out = f
			}
		}
	}
	return log.New(out, "[daemon] ", log.LstdFlags)
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		d.Log.Printf("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("SmilePoint rewards engine serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}
	d.Log.Printf("serving on %s", addr)
	if d.Config.Logging.Level == "debug" {
		d.Log.Printf("storage dir %s, cors origins %v", d.Config.Storage.Dir, d.Config.API.CORSOrigins)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
