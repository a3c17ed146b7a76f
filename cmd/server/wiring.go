package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/adapter/ai/anthropic"
	"github.com/seu-repo/clinic-advisor/internal/adapter/ai/disabled"
	"github.com/seu-repo/clinic-advisor/internal/adapter/ai/gemini"
	"github.com/seu-repo/clinic-advisor/internal/adapter/ai/openai"
	"github.com/seu-repo/clinic-advisor/internal/adapter/cache"
	"github.com/seu-repo/clinic-advisor/internal/adapter/queue"
	"github.com/seu-repo/clinic-advisor/internal/adapter/storage/kv"
	"github.com/seu-repo/clinic-advisor/internal/adapter/storage/postgres"
	"github.com/seu-repo/clinic-advisor/internal/adapter/storage/sqlite"
	"github.com/seu-repo/clinic-advisor/internal/adapter/vault"
	"github.com/seu-repo/clinic-advisor/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/clinic-advisor/internal/observability/telemetry"
	"github.com/seu-repo/clinic-advisor/internal/ports"
	"github.com/seu-repo/clinic-advisor/pkg/config"
)

type profileStore struct {
	repo  ports.ProfileRepository
	close func()
}

// openStore selects the profile repository for the configured driver.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*profileStore, error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		c, err := cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.KeyPrefix, log)
		if err != nil {
			return nil, err
		}
		return &profileStore{
			repo:  kv.NewProfileRepository(c, log),
			close: func() { _ = c.Close() },
		}, nil

	case config.StorePostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.URL, postgres.PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}, log)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgres.RunMigrations(db); err != nil {
				_ = postgres.Close(db)
				return nil, err
			}
		}
		return &profileStore{
			repo:  postgres.NewProfileRepository(db, log),
			close: func() { _ = postgres.Close(db) },
		}, nil

	case config.StoreSQLite:
		repo, err := sqlite.Open(cfg.SQLite.Path, log)
		if err != nil {
			return nil, err
		}
		return &profileStore{
			repo:  repo,
			close: func() { _ = repo.Close() },
		}, nil

	default:
		c := cache.NewLocalCache(time.Minute, log)
		log.Warn("Using in-memory profile store; the profile is lost on restart")
		return &profileStore{
			repo:  kv.NewProfileRepository(c, log),
			close: func() { _ = c.Close() },
		}, nil
	}
}

func openQueue(cfg *config.Config, log *zap.Logger) (ports.MessageQueue, error) {
	if !cfg.NATS.Enabled {
		return queue.NewNoopQueue(log), nil
	}
	return queue.NewNATSQueue(cfg.NATS.URL, cfg.App.Name, log)
}

// startAuditSubscribers logs profile lifecycle events published by the
// profile service.
func startAuditSubscribers(mq ports.MessageQueue, log *zap.Logger) {
	for _, subject := range []string{ports.SubjectProfileSaved, ports.SubjectProfileDeleted} {
		subject := subject
		err := mq.Subscribe(subject, func(msg []byte) error {
			log.Info("Profile event", zap.String("subject", subject), zap.ByteString("payload", msg))
			return nil
		})
		if err != nil {
			log.Warn("Failed to subscribe", zap.String("subject", subject), zap.Error(err))
		}
	}
}

// newGenerator builds the configured provider behind a circuit breaker.
func newGenerator(ctx context.Context, cfg config.LLMConfig, log *zap.Logger) (*circuitbreaker.Generator, error) {
	var (
		next ports.NarrativeGenerator
		err  error
	)
	switch cfg.Provider {
	case config.ProviderAnthropic:
		next, err = anthropic.NewClient(cfg.APIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens, log)
	case config.ProviderGemini:
		next, err = gemini.NewClient(ctx, cfg.APIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens, log)
	case config.ProviderNone:
		next = disabled.Generator{}
	default:
		next = openai.NewClient(openai.Config{
			BaseURL:     cfg.BaseURL,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		}, log)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, err)
	}

	settings := circuitbreaker.Settings{
		MaxRequests:  cfg.CircuitBreaker.MaxRequests,
		Interval:     cfg.CircuitBreaker.Interval,
		Timeout:      cfg.CircuitBreaker.Timeout,
		MinRequests:  cfg.CircuitBreaker.MinRequests,
		FailureRatio: cfg.CircuitBreaker.FailureThreshold,
	}
	return circuitbreaker.Wrap(next, settings, log, telemetry.RecordBreakerState), nil
}

// applyVaultSecrets overrides the database URL and LLM key with values from
// Vault when enabled. Missing secrets keep the configured values.
func applyVaultSecrets(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if !cfg.Vault.Enabled {
		return nil
	}
	sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token, cfg.Vault.Mount)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if url, err := sm.GetDatabaseURL(ctx); err == nil {
		cfg.Database.URL = url
	} else {
		log.Warn("Database URL not found in Vault", zap.Error(err))
	}
	if key, err := sm.GetLLMAPIKey(ctx); err == nil {
		cfg.LLM.APIKey = key
	} else {
		log.Warn("LLM API key not found in Vault", zap.Error(err))
	}
	return nil
}
