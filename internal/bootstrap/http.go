package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/justicia-ai/leia-auth/config"
	httpx "github.com/justicia-ai/leia-auth/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config  *config.AppConfig
	Runtime *AuthRuntime
	Logger  *slog.Logger
}

// RunHTTPServer builds the router, starts the server, and blocks until
// the context is canceled or a shutdown signal arrives. Shutdown drains
// in-flight requests with a timeout.
func RunHTTPServer(ctx context.Context, cfg HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler := buildHTTPHandler(logger, cfg)
	addr := cfg.Config.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(signalCtx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}

		logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}

func buildHTTPHandler(logger *slog.Logger, cfg HTTPServerConfig) http.Handler {
	router := httpx.NewRouter(httpx.RouterServices{
		Auth:         cfg.Runtime.Service,
		Provider:     cfg.Runtime.Provider,
		CookieDomain: cfg.Config.HTTP.CookieDomain,
		Logger:       logger,
	})

	// Order: Recover -> Logging -> Router
	h := httpx.Logging(logger)(router)
	h = httpx.Recover(logger)(h)
	return h
}
