package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/sumeshkk123/cloud-sub008/cmd/internal/bootstrap"
	"github.com/sumeshkk123/cloud-sub008/commands"
	seedcmd "github.com/sumeshkk123/cloud-sub008/internal/commands/seed"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], nil); err != nil {
		log.Fatalf("cms server: %v", err)
	}
}

// run serves the admin API until ctx is cancelled. ready, when non-nil,
// receives the bound address once the listener is up.
func run(ctx context.Context, args []string, ready chan<- string) error {
	fs := flag.NewFlagSet("cms-server", flag.ContinueOnError)
	addr := fs.String("addr", envOr("CMS_ADDR", ":8080"), "HTTP listen address")
	locales := fs.String("locales", "", "Comma separated list of locales (defaults to CMS_I18N_LOCALES)")
	seedOnStart := fs.Bool("seed", false, "Import the seed directory before serving")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Grace period for in-flight requests")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		Locales:    bootstrap.SplitLocales(*locales),
		EnableSeed: *seedOnStart,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()
	logger := module.Logger

	registration, err := module.Module.RegisterCommands(commands.RegistrationOptions{
		Dispatcher: commands.GlobalDispatcher{},
	})
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	defer registration.Unsubscribe()

	if *seedOnStart {
		cfg := module.Module.Container().Config
		msg := seedcmd.ImportSeedCommand{Directory: cfg.Seed.Dir, Pattern: cfg.Seed.Pattern}
		if err := dispatcher.Dispatch(ctx, msg); err != nil {
			return fmt.Errorf("seed import: %w", err)
		}
		logger.Info("cms.seed.imported", "directory", cfg.Seed.Dir)
	}

	mux := http.NewServeMux()
	if err := module.Module.RegisterRoutes(mux); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", *addr, err)
	}
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()
	logger.Info("cms.server.listening", "addr", listener.Addr().String())
	if ready != nil {
		ready <- listener.Addr().String()
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownTimeout)
	defer cancel()
	logger.Info("cms.server.shutdown")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
