package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cours-de-latin/inflect"
	"github.com/cours-de-latin/inflect/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve predictions over a JSON REST API",
	Long: `Loads (or builds) the model and serves it on server.addr. With
server.watch set, rewriting the cache artifacts (for example by running
"inflect train --force" elsewhere) reloads the model without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	in, err := openInflector()
	if err != nil {
		return err
	}

	srv := server.New(in, logger, cfg.Server.AllowedOrigins)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Server.Watch {
		w, err := server.NewWatcher(srv, cfg.NewCache(), reloadInflector, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(ctx) })
	}

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		return httpServer.Shutdown(sctx)
	})

	return g.Wait()
}

// reloadInflector reads the model back from the cache without ever
// training, so a retrain running elsewhere keeps sole use of it.
func reloadInflector() (*inflect.Inflector, error) {
	opts := cfg.Options()
	opts.Logger = logger
	opts.CacheOnly = true
	return inflect.Open(opts)
}
