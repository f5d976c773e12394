package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"ibudget/internal/cli"
	"ibudget/internal/fx"
	apphttp "ibudget/internal/http"
	"ibudget/internal/seed"
	"ibudget/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	st := cli.InitStore(logger, cfg.SQLiteDBPath)
	defer st.Close()

	if err := seed.EnsureDefaults(context.Background(), st, cfg.SeedSamples); err != nil {
		logger.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	rates := fx.New(st, cfg.FxTimeout, cfg.FxProviderURLs)
	dashboard := services.NewDashboardService(st, cfg.CacheSize, cfg.CacheTTL)

	srv := apphttp.NewServer(":"+cfg.Port, st, dashboard, rates, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})
	dashboard.StartCacheJanitor(ctx, 10*time.Minute)

	logger.Info("Starting ibudget server", "port", cfg.Port, "db", cfg.SQLiteDBPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
