package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/tickerlens/tickerlens/internal/ai"
	"github.com/tickerlens/tickerlens/internal/api"
	"github.com/tickerlens/tickerlens/internal/config"
	"github.com/tickerlens/tickerlens/internal/indicator"
	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/market"
	"github.com/tickerlens/tickerlens/internal/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "tickerlens-server",
		Usage:   "Stock data API backend with technical indicators and AI analysis",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file loaded before reading the environment",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// run wires the configuration, providers, and router together and serves
// until interrupted.
func run(ctx context.Context, cmd *cli.Command) error {
	if envFile := cmd.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		// A local .env is optional.
		_ = godotenv.Load()
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	l, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer l.Sync()

	provider, err := market.NewDataProvider(cfg.Market.ProviderConfig(), l)
	if err != nil {
		return err
	}

	var search market.SearchProvider
	if cfg.Search.Enabled() {
		search = market.NewTwelveDataClient(cfg.Search.TwelveDataAPIKey, cfg.Search.BaseURL, l)
	} else {
		l.Warn("TWELVEDATA_API_KEY not set, symbol search disabled")
	}

	var analyst ai.Analyst
	if cfg.AI.Enabled() {
		analyst, err = ai.NewDeepSeekAnalyst(cfg.AI.DeepSeekAPIKey, cfg.AI.BaseURL, cfg.AI.RequestTimeout.Std(), l)
		if err != nil {
			return err
		}
	} else {
		l.Warn("DEEPSEEK_API_KEY not set, AI analysis disabled")
	}

	handler := api.NewHandler(provider, search, analyst, indicator.NewEngine(l), version.GetVersion(), l)
	router := api.NewRouter(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)

	go func() {
		l.Info("server listening",
			zap.String("addr", addr),
			zap.String("version", version.GetVersion()),
			zap.String("provider", provider.Name()),
			zap.Bool("search_enabled", search != nil),
			zap.Bool("ai_enabled", analyst != nil),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	l.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
