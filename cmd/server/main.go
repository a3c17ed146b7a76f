package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/adapter/http/fiber/router"
	"github.com/seu-repo/clinic-advisor/internal/observability/logging"
	"github.com/seu-repo/clinic-advisor/internal/observability/telemetry"
	"github.com/seu-repo/clinic-advisor/internal/service/advisor"
	"github.com/seu-repo/clinic-advisor/internal/service/analysis"
	"github.com/seu-repo/clinic-advisor/internal/service/clinic"
	"github.com/seu-repo/clinic-advisor/internal/service/health"
	"github.com/seu-repo/clinic-advisor/pkg/config"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// 2. Initialize Logger
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	logger.Info("Starting clinic advisor",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	// 3. Resolve secrets from Vault
	if err := applyVaultSecrets(ctx, cfg, logger); err != nil {
		logger.Fatal("Failed to read secrets from Vault", zap.Error(err))
	}

	// 4. Initialize OpenTelemetry
	tracerProvider, err := telemetry.InitTracer(telemetry.TracerConfig{
		Enabled:        cfg.OpenTelemetry.Enabled,
		ServiceName:    cfg.OpenTelemetry.ServiceName,
		ServiceVersion: cfg.App.Version,
		Endpoint:       cfg.OpenTelemetry.Jaeger.Endpoint,
		SampleRatio:    cfg.OpenTelemetry.Jaeger.SamplerParam,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := telemetry.Shutdown(context.Background(), tracerProvider); err != nil {
			logger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// 5. Initialize Profile Store
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open profile store", zap.Error(err), zap.String("driver", cfg.Store.Driver))
	}
	defer store.close()

	// 6. Initialize Message Queue
	messageQueue, err := openQueue(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer messageQueue.Close()
	startAuditSubscribers(messageQueue, logger)

	// 7. Initialize Narrative Generator
	generator, err := newGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Fatal("Failed to initialize narrative generator", zap.Error(err), zap.String("provider", cfg.LLM.Provider))
	}

	// 8. Initialize Services
	engine := analysis.NewEngine(analysis.IndustryAverages{
		OperatingMargin:      cfg.Benchmark.OperatingMargin,
		RentRatio:            cfg.Benchmark.RentRatio,
		LaborRatio:           cfg.Benchmark.LaborRatio,
		AvgRevenuePerPatient: cfg.Benchmark.AvgRevenuePerPatient,
		MonthlyPatients:      cfg.Benchmark.MonthlyPatients,
		MonthlyRevenue:       cfg.Benchmark.MonthlyRevenue,
		NonInsuranceRatio:    cfg.Benchmark.NonInsuranceRatio,
	})
	advisorService := advisor.NewService(engine, generator, advisor.Config{
		NarrativeTimeout:     cfg.LLM.Timeout,
		MaxChatHistory:       cfg.Limits.MaxChatHistory,
		MaxChatMessageLength: cfg.Limits.MaxChatMessageLength,
	}, logger)
	profileService := clinic.NewService(store.repo, messageQueue, logger)

	healthService := health.NewService(cfg.App.Version, logger)
	healthService.RegisterChecker("profile_store", health.PingChecker(store.repo, logger))
	healthService.RegisterChecker("narrative_breaker", health.BreakerChecker(generator.State))

	// 9. Initialize Fiber HTTP Server
	app := router.New(router.Deps{
		Config:   cfg,
		Analysis: advisorService,
		Chat:     advisorService,
		Profiles: profileService,
		Health:   healthService,
		Log:      logger,
	})

	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
