package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"status-dashboard/internal/actions"
	"status-dashboard/internal/api"
	"status-dashboard/internal/backend"
	"status-dashboard/internal/board"
	"status-dashboard/internal/config"
	"status-dashboard/internal/console"
	"status-dashboard/internal/logs"
	"status-dashboard/internal/metrics"
	"status-dashboard/internal/poller"
	"status-dashboard/internal/render"
	"status-dashboard/internal/view"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "statusboard:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Root context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logger
	level, err := logs.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logs.NewLogger(cfg.Log.Buffer, level)
	if !cfg.TerminalEnabled() {
		logger.SetOutput(os.Stderr)
	}

	// Metrics
	metricsRegistry := metrics.NewRegistry()

	// Backend
	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout.Std())

	// Board
	dispatchCfg := actions.Config{
		RestartRefreshDelay: cfg.RestartRefreshDelay.Std(),
		ResetReloadDelay:    cfg.ResetReloadDelay.Std(),
		ResetPrompt:         cfg.ResetPrompt,
		RestartLabels:       cfg.ServiceLabels(),
	}
	store := board.NewStore(metricsRegistry, actions.InitialControls(dispatchCfg, cfg.ServiceNames()))

	// Poller
	builder := view.NewBuilder(view.Options{
		Names:     view.NameTable(cfg.ComponentNames),
		SystemKey: cfg.SystemStatusKey,
		TunnelKey: cfg.TunnelKey,
	})
	poll := poller.New(cfg.PollInterval.Std(), client, builder, store, logger, metricsRegistry)

	// Web
	errCh := make(chan error, 2)
	var server *http.Server
	if cfg.Listen != "" {
		hub := api.NewHub(store, logger, metricsRegistry)
		go hub.Run(ctx)
		store.Subscribe(hub.Publish)

		handler := api.NewHandler(store, poll, logger, metricsRegistry, cfg.DataSources)
		httpHandler, err := api.RegisterRoutes(http.NewServeMux(), handler, hub, logger)
		if err != nil {
			return err
		}
		server = &http.Server{
			Addr:              cfg.Listen,
			Handler:           httpHandler,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Infof("web server started on %s", cfg.Listen)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("web server: %w", err)
			}
		}()
	}

	// Terminal and console
	if cfg.TerminalEnabled() {
		term := render.NewTerminal(os.Stdout, render.Options{LogLines: 5, Logs: logger})
		store.Subscribe(term.Render)

		con := console.New(os.Stdin, os.Stdout, term, logger)
		dispatcher := actions.NewDispatcher(
			dispatchCfg,
			client,
			con,
			con,
			store,
			poll,
			func() {
				// Equivalent of a page reload: restart the loop from scratch.
				poll.Stop()
				if err := poll.Start(ctx); err != nil {
					logger.Errorf("restart poller: %v", err)
				}
			},
			logger,
			metricsRegistry,
		)

		go func() {
			errCh <- con.Run(ctx, console.Deps{
				Refresher:  poll,
				Dispatcher: dispatcher,
				Board:      store,
			})
		}()
	}

	if err := poll.Start(ctx); err != nil {
		return err
	}
	defer poll.Stop()

	select {
	case <-ctx.Done():
		err = nil
	case err = <-errCh:
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
	logger.Info("statusboard stopped")
	return err
}
