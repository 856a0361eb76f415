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

	"github.com/sage-journal/sage/internal/api"
	"github.com/sage-journal/sage/internal/app/progression"
	"github.com/sage-journal/sage/internal/catalog"
	"github.com/sage-journal/sage/internal/infra/kvstore"
	_ "github.com/sage-journal/sage/internal/infra/metrics" // Register Prometheus metrics
)

// Daemon is the sage runtime. It wires the store, the progression
// engine, and the HTTP API together.
type Daemon struct {
	Config Config
	Store  *kvstore.Store
	Engine *progression.Engine
	Server *api.Server
}

// New creates a Daemon with configuration loaded from disk.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dir := cfg.Storage.Dir
	if dir == "" {
		dir = sageHome()
	}

	store, err := kvstore.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	engine := progression.New(store, catalog.Default(),
		progression.WithNotificationPolicy(cfg.Notifications.Policy()))

	srv := api.NewServer(engine)
	if cfg.API.EnableMetrics {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config: cfg,
		Store:  store,
		Engine: engine,
		Server: srv,
	}, nil
}

// Serve runs the HTTP API until the context is cancelled or a
// termination signal arrives.
func (d *Daemon) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: d.Server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[daemon] listening on http://%s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		d.Close()
		return err
	case sig := <-sigCh:
		log.Printf("[daemon] received %s, shutting down", sig)
	case <-ctx.Done():
		log.Printf("[daemon] context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[daemon] shutdown: %v", err)
	}
	return d.Close()
}

// Close releases the daemon's resources.
func (d *Daemon) Close() error {
	if d.Store != nil {
		return d.Store.Close()
	}
	return nil
}
