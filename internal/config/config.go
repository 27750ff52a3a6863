// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Aggregator AggregatorConfig `mapstructure:"aggregator"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// HTTPConfig holds the public API server's settings.
type HTTPConfig struct {
	Addr              string        `mapstructure:"addr"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// CacheConfig holds the cache backend and per-namespace TTL settings.
type CacheConfig struct {
	Backend          string        `mapstructure:"backend"` // "memory" or "redis"
	RedisAddr        string        `mapstructure:"redis_addr"`
	RedisPassword    string        `mapstructure:"redis_password"`
	RedisDB          int           `mapstructure:"redis_db"`
	QuoteTTL         time.Duration `mapstructure:"quote_ttl"`
	CorridorTTL      time.Duration `mapstructure:"corridor_ttl"`
	ProviderTTL      time.Duration `mapstructure:"provider_ttl"`
	JitterMaxSeconds int           `mapstructure:"jitter_max_seconds"`
}

// AggregatorConfig holds the aggregator's tunables. PerProviderTimeoutMS
// (via the HTTP router), MaxAmount and EnabledProviders are applied at
// wiring time. DefaultTimeout, MaxWorkers and DrainTimeout are loaded and
// MaxWorkers is validated, but none of the three is passed to the
// executor, which uses its own built-in defaults.
type AggregatorConfig struct {
	DefaultTimeout       time.Duration `mapstructure:"default_timeout"`
	PerProviderTimeoutMS int           `mapstructure:"per_provider_timeout_ms"`
	MaxWorkers           int           `mapstructure:"max_workers"`
	DrainTimeout         time.Duration `mapstructure:"drain_timeout"`
	MaxAmount            float64       `mapstructure:"max_amount"`
	EnabledProviders     []string      `mapstructure:"enabled_providers"`
}

// ProvidersConfig holds per-provider credentials and base URLs.
type ProvidersConfig struct {
	Wise       ProviderCredentials `mapstructure:"wise"`
	Remitly    ProviderCredentials `mapstructure:"remitly"`
	Xoom       ProviderCredentials `mapstructure:"xoom"`
	WorldRemit ProviderCredentials `mapstructure:"worldremit"`
	Instarem   ProviderCredentials `mapstructure:"instarem"`
}

// ProviderCredentials holds a single provider adapter's connection details.
type ProviderCredentials struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	APISecret  string        `mapstructure:"api_secret"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Disabled   bool          `mapstructure:"disabled"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("REMIT")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("app.name", "REMIT_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "REMIT_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "REMIT_LOG_LEVEL", "LOG_LEVEL")

	v.BindEnv("http.addr", "REMIT_HTTP_ADDR", "HTTP_ADDR")
	v.BindEnv("http.requests_per_minute", "REMIT_RATE_LIMIT_RPM", "RATE_LIMIT_RPM")

	v.BindEnv("cache.backend", "REMIT_CACHE_BACKEND", "CACHE_BACKEND")
	v.BindEnv("cache.redis_addr", "REMIT_REDIS_ADDR", "REDIS_ADDR")
	v.BindEnv("cache.redis_password", "REMIT_REDIS_PASSWORD", "REDIS_PASSWORD")
	v.BindEnv("cache.quote_ttl", "REMIT_QUOTE_CACHE_TTL", "QUOTE_CACHE_TTL")
	v.BindEnv("cache.corridor_ttl", "REMIT_CORRIDOR_CACHE_TTL", "CORRIDOR_CACHE_TTL")
	v.BindEnv("cache.provider_ttl", "REMIT_PROVIDER_CACHE_TTL", "PROVIDER_CACHE_TTL")
	v.BindEnv("cache.jitter_max_seconds", "REMIT_JITTER_MAX_SECONDS", "JITTER_MAX_SECONDS")

	v.BindEnv("aggregator.max_workers", "REMIT_MAX_WORKERS", "AGGREGATOR_MAX_WORKERS")
	v.BindEnv("aggregator.default_timeout", "REMIT_DEFAULT_TIMEOUT")
	v.BindEnv("aggregator.per_provider_timeout_ms", "REMIT_PER_PROVIDER_TIMEOUT_MS", "PER_PROVIDER_TIMEOUT_MS")
	v.BindEnv("aggregator.max_amount", "REMIT_MAX_AMOUNT")

	v.BindEnv("providers.wise.api_key", "REMIT_WISE_API_KEY", "WISE_API_KEY")
	v.BindEnv("providers.remitly.api_key", "REMIT_REMITLY_API_KEY", "REMITLY_API_KEY")
	v.BindEnv("providers.xoom.api_key", "REMIT_XOOM_API_KEY", "XOOM_API_KEY")
	v.BindEnv("providers.worldremit.api_key", "REMIT_WORLDREMIT_API_KEY", "WORLDREMIT_API_KEY")
	v.BindEnv("providers.instarem.api_key", "REMIT_INSTAREM_API_KEY", "INSTAREM_API_KEY")

	v.BindEnv("telemetry.enabled", "REMIT_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "REMIT_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "REMIT_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "remit-aggregator")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "35s")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("http.requests_per_minute", 120)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.quote_ttl", "1800s")
	v.SetDefault("cache.corridor_ttl", "43200s")
	v.SetDefault("cache.provider_ttl", "86400s")
	v.SetDefault("cache.jitter_max_seconds", 300)

	v.SetDefault("aggregator.default_timeout", "30s")
	v.SetDefault("aggregator.per_provider_timeout_ms", 5000)
	v.SetDefault("aggregator.max_workers", 32)
	v.SetDefault("aggregator.drain_timeout", "2s")
	v.SetDefault("aggregator.max_amount", 1000000)
	v.SetDefault("aggregator.enabled_providers", []string{"wise", "remitly", "xoom", "worldremit", "instarem"})

	v.SetDefault("providers.wise.base_url", "https://api.wise.com")
	v.SetDefault("providers.wise.timeout", "30s")
	v.SetDefault("providers.remitly.base_url", "https://api.remitly.com")
	v.SetDefault("providers.remitly.timeout", "30s")
	v.SetDefault("providers.xoom.base_url", "https://api.xoom.com")
	v.SetDefault("providers.xoom.timeout", "30s")
	v.SetDefault("providers.worldremit.base_url", "https://api.worldremit.com")
	v.SetDefault("providers.worldremit.timeout", "30s")
	v.SetDefault("providers.instarem.base_url", "https://api.instarem.com")
	v.SetDefault("providers.instarem.timeout", "30s")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "remit-aggregator")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be memory or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required when cache.backend is redis")
	}
	if c.Aggregator.MaxWorkers <= 0 {
		return fmt.Errorf("aggregator.max_workers must be positive")
	}
	return nil
}
