package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xtding233/switch-game/internal/config"
	"github.com/xtding233/switch-game/internal/grpcapi"
	"github.com/xtding233/switch-game/internal/httpapi"
	"github.com/xtding233/switch-game/internal/logging"
	"github.com/xtding233/switch-game/internal/switchgame"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resolver over HTTP and gRPC",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	loader := config.NewLoader(configDir)
	settings, err := loadSettings(loader)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: settings.LogLevel, Format: settings.LogFormat})
	if err != nil {
		return err
	}
	log.Logger = logger

	rng, err := buildRNG(settings.RNGMode, settings.Seed)
	if err != nil {
		return err
	}
	resolver := switchgame.NewResolver(rng)

	httpSrv := &http.Server{
		Addr:              settings.HTTPAddr,
		Handler:           httpapi.New(resolver, logger.With().Str("transport", "http").Logger(), settings.DefaultTrials, settings.MaxTrials),
		ReadHeaderTimeout: 5 * time.Second,
	}
	grpcSrv := grpcapi.NewGRPCServer(&grpcapi.Server{
		Resolver:      resolver,
		Log:           logger.With().Str("transport", "grpc").Logger(),
		DefaultTrials: settings.DefaultTrials,
		MaxTrials:     settings.MaxTrials,
	})
	grpcLis, err := net.Listen("tcp", settings.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}

	watcher := config.NewFileWatcher(loader.Paths().Files(profile), 250*time.Millisecond, func(path string) {
		loader.Invalidate()
		next, err := loadSettings(loader)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("config reload rejected")
			return
		}
		if err := logging.SetLevel(next.LogLevel); err != nil {
			log.Error().Err(err).Msg("apply log level")
			return
		}
		// listeners, rng and trial limits are fixed for the life of the process
		log.Info().Str("path", path).Str("version", next.Version).Str("log_level", next.LogLevel).Msg("config reloaded")
	})
	watcher.OnError = func(err error) { log.Warn().Err(err).Msg("config watcher") }
	if err := watcher.Start(); err != nil {
		log.Warn().Err(err).Msg("config hot reload disabled")
	} else {
		defer watcher.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", settings.HTTPAddr).Msg("http listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", grpcLis.Addr().String()).Msg("grpc listening")
		if err := grpcSrv.Serve(grpcLis); err != nil {
			return fmt.Errorf("grpc: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
