package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads .env (when present), config.yaml and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom("./configs", ".", "/app/configs")
}

// LoadFrom is Load without .env handling, searching only paths for
// config.yaml.
func LoadFrom(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Allow common env vars without APP_ prefix for Docker/VM deploys
	bindings := map[string][]string{
		"http.port":       {"HTTP_PORT", "APP_HTTP_PORT"},
		"database.url":    {"DATABASE_URL", "APP_DATABASE_URL"},
		"redis.url":       {"REDIS_URL", "APP_REDIS_URL"},
		"nats.url":        {"NATS_URL", "APP_NATS_URL"},
		"store.driver":    {"STORE_DRIVER", "APP_STORE_DRIVER"},
		"llm.provider":    {"LLM_PROVIDER", "APP_LLM_PROVIDER"},
		"llm.base_url":    {"LLM_BASE_URL", "APP_LLM_BASE_URL"},
		"llm.api_key":     {"LLM_API_KEY", "APP_LLM_API_KEY"},
		"llm.model":       {"LLM_MODEL", "APP_LLM_MODEL"},
		"vault.address":   {"VAULT_ADDR", "APP_VAULT_ADDRESS"},
		"vault.token":     {"VAULT_TOKEN", "APP_VAULT_TOKEN"},
		"app.environment": {"APP_ENVIRONMENT"},
		"logging.level":   {"LOG_LEVEL", "APP_LOGGING_LEVEL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "clinic-advisor")
	v.SetDefault("app.version", "v1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", "30s")
	// Narrative calls may take up to llm.timeout.
	v.SetDefault("http.write_timeout", "200s")
	v.SetDefault("http.idle_timeout", "120s")
	v.SetDefault("http.body_limit", 1<<20)

	v.SetDefault("store.driver", StoreMemory)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("sqlite.path", "./data/clinic.db")
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.key_prefix", "clinic-advisor:")

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.base_url", "http://localhost:11434/v1")
	v.SetDefault("llm.model", "llama3.1:latest")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 800)
	v.SetDefault("llm.timeout", "180s")
	v.SetDefault("llm.circuit_breaker.max_requests", 3)
	v.SetDefault("llm.circuit_breaker.interval", "60s")
	v.SetDefault("llm.circuit_breaker.timeout", "30s")
	v.SetDefault("llm.circuit_breaker.min_requests", 3)
	v.SetDefault("llm.circuit_breaker.failure_threshold", 0.6)

	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.mount", "secret")

	v.SetDefault("opentelemetry.enabled", false)
	v.SetDefault("opentelemetry.service_name", "clinic-advisor")
	v.SetDefault("opentelemetry.jaeger.endpoint", "http://jaeger:14268/api/traces")
	v.SetDefault("opentelemetry.jaeger.sampler_param", 1.0)

	v.SetDefault("prometheus.enabled", true)
	v.SetDefault("prometheus.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "X-Request-ID"})
	v.SetDefault("cors.max_age", 86400)

	v.SetDefault("limits.max_chat_message_length", 2000)
	v.SetDefault("limits.max_chat_history", 20)

	v.SetDefault("benchmark.operating_margin", 28.6)
	v.SetDefault("benchmark.rent_ratio", 10)
	v.SetDefault("benchmark.labor_ratio", 25)
	v.SetDefault("benchmark.avg_revenue_per_patient", 68594)
	v.SetDefault("benchmark.monthly_patients", 500)
	v.SetDefault("benchmark.monthly_revenue", 29_430_000)
	v.SetDefault("benchmark.non_insurance_ratio", 37.5)
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StoreRedis, StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Store.Driver == StorePostgres && c.Database.URL == "" {
		return errors.New("config: database.url is required for the postgres store")
	}

	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderNone:
	default:
		return fmt.Errorf("config: unknown llm provider %q", c.LLM.Provider)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: invalid http port %d", c.HTTP.Port)
	}
	if c.Limits.MaxChatHistory < 0 {
		return errors.New("config: limits.max_chat_history must not be negative")
	}
	return nil
}
