package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"chameleon/internal/config"
	"chameleon/internal/layout"
	"chameleon/internal/logging"
	"chameleon/internal/observability"
	serverHTTP "chameleon/internal/server/http"
	"chameleon/internal/skin"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered layouts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts.configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	obsConfig, err := observability.LoadConfig(configPath)
	if err != nil {
		return err
	}
	obs, err := observability.New(obsConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			obs.Logger.Error("observability shutdown failed", "error", err)
		}
	}()

	logging.SetDefault(obs.Logger)
	logger := logging.NewComponentLogger("Main")

	cache, err := layout.NewCache(cfg.Skin.LayoutCacheSize)
	if err != nil {
		return err
	}
	renderer := skin.NewRenderer(cache,
		skin.WithMetrics(obs.Metrics),
		skin.WithTracer(obs.Tracer),
		skin.WithLogger(logging.NewComponentLogger("Renderer")),
	)

	router := serverHTTP.NewRouter(serverHTTP.RouterConfig{
		Renderer:       renderer,
		LayoutFile:     cfg.Skin.LayoutFile,
		ContextFile:    cfg.Skin.ContextFile,
		Title:          cfg.Skin.Title,
		Metrics:        obs.Metrics,
		Tracer:         obs.Tracer,
		Logger:         logging.NewComponentLogger("HTTP"),
		Debug:          cfg.Server.Debug,
		EnableCORS:     cfg.Server.EnableCORS,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	server := serverHTTP.NewServer(cfg.Server, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("listening on %s (layout %s)", server.Addr(), cfg.Skin.LayoutFile)
		if err := server.ListenAndServe(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		return server.Shutdown(context.Background())
	})

	return group.Wait()
}
