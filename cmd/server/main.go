package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/hello-world-api/internal/http/routes"
	"github.com/janisto/hello-world-api/internal/platform/config"
	"github.com/janisto/hello-world-api/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-world-api/internal/platform/middleware"
	"github.com/janisto/hello-world-api/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "1.0.0"

const (
	apiTitle        = "Hello World API"
	docsPath        = "/docs"
	shutdownTimeout = 10 * time.Second
)

func main() {
	code := serve()
	if err := logging.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "logger sync error: %v\n", err)
	}
	os.Exit(code)
}

func serve() int {
	ctx := context.Background()
	if err := logging.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.LogError(ctx, "config load failed", err)
		return 1
	}

	ln, err := listen(cfg)
	if err != nil {
		logging.LogError(ctx, "listen failed", err, zap.String("addr", cfg.Addr()))
		return 1
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, ln, newServer(newRouter())); err != nil {
		logging.LogError(context.Background(), "server error", err)
		return 1
	}
	logging.LogInfo(context.Background(), "server exited")
	return 0
}

// listen binds the configured port on all interfaces.
func listen(cfg config.Config) (net.Listener, error) {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}
	return ln, nil
}

func newRouter() *chi.Mux {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		chimiddleware.RedirectSlashes,
		// RealIP trusts X-Forwarded-For; Cloud Run's front end sets it.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		logging.RequestLogger(),
		logging.AccessLogger(),
		respond.Recoverer(),
	)

	api := humachi.New(router, newAPIConfig())
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)
	routes.Register(api)

	return router
}

func newAPIConfig() huma.Config {
	cfg := huma.DefaultConfig(apiTitle, Version)
	cfg.DocsPath = docsPath
	// Responses carry exactly their payload; no $schema link is added to bodies.
	cfg.CreateHooks = nil
	return cfg
}

// addCBORContent documents application/cbor wherever application/json is documented.
func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

func newServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// run serves on ln until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, ln net.Listener, srv *http.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		logging.LogInfo(ctx, "server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		logging.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
