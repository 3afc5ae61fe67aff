// Package config manages environment variables.
//
// It reads variables from the `.env` file (when present),
// loads them into structured Go types, and validates that
// required values are present so they can be reused across
// the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional blocks (observability, oracle tuning, pricing).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the SHOERENTAL_ prefix. The prefix is stripped,
	the rest is lowercased, and "." is the nesting delimiter:

		SHOERENTAL_DATABASE.HOST      -> database.host      -> Config.Database.Host
		SHOERENTAL_OPENAI.API_KEY     -> openai.api_key     -> Config.OpenAI.APIKey
		SHOERENTAL_PRICING.FEE_POLICY -> pricing.fee_policy -> Config.Pricing.FeePolicy
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "SHOERENTAL_"

// ServiceName identifies this service in logs, traces and the APM.
const ServiceName = "shoe-rental"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration" validate:"required"`
	OpenAI        OpenAIConfig         `koanf:"openai" validate:"required"`
	Pricing       PricingConfig        `koanf:"pricing"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string          `koanf:"port" validate:"required"`
	ReadTimeout        int             `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int             `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int             `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string        `koanf:"cors_allowed_origins" validate:"required"`
	RateLimit          RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig tunes the per-client token buckets.
//
// Global applies to every route. Rentals applies on top of Global to the
// rental creation route, since each request there costs one oracle call.
type RateLimitConfig struct {
	GlobalRPS     float64 `koanf:"global_rps" validate:"gte=0"`
	GlobalBurst   int     `koanf:"global_burst" validate:"gte=0"`
	RentalsRPS    float64 `koanf:"rentals_rps" validate:"gte=0"`
	RentalsBurst  int     `koanf:"rentals_burst" validate:"gte=0"`
	ExpiresInSecs int     `koanf:"expires_in" validate:"gte=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// IntegrationConfig stores credentials for third-party delivery services.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
	MailFrom     string `koanf:"mail_from"`
}

// OpenAIConfig configures the discount oracle.
//
// BaseURL is optional; set it to target an OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey      string        `koanf:"api_key" validate:"required"`
	Model       string        `koanf:"model" validate:"required"`
	BaseURL     string        `koanf:"base_url" validate:"omitempty,url"`
	Temperature float32       `koanf:"temperature" validate:"gte=0,lte=2"`
	Timeout     time.Duration `koanf:"timeout" validate:"gte=0"`
}

// FeePolicy selects how a discount is applied to a rental fee.
type FeePolicy string

const (
	// FeePolicyFlat subtracts the discount value from the fee as an amount.
	FeePolicyFlat FeePolicy = "flat"
	// FeePolicyPercentage reduces the fee by the discount as a percentage.
	FeePolicyPercentage FeePolicy = "percentage"
)

// PricingConfig holds the money-related knobs of the rental workflow.
type PricingConfig struct {
	FeePolicy FeePolicy `koanf:"fee_policy" validate:"omitempty,oneof=flat percentage"`
}

const (
	defaultOracleTemperature = 0.7
	defaultOracleTimeout     = 30 * time.Second
	defaultMailFrom          = "Shoe Rental <onboarding@resend.dev>"
)

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults, and returns the result.
//
// Unlike a fatal-on-error loader, every failure is returned so the caller
// (main) decides how to exit.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	applyDefaults(mainConfig)

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name and environment always follow the primary block so
	// telemetry is tagged consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills optional blocks left empty by the environment.
func applyDefaults(cfg *Config) {
	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}

	if cfg.OpenAI.Temperature == 0 {
		cfg.OpenAI.Temperature = defaultOracleTemperature
	}
	if cfg.OpenAI.Timeout == 0 {
		cfg.OpenAI.Timeout = defaultOracleTimeout
	}

	if cfg.Pricing.FeePolicy == "" {
		cfg.Pricing.FeePolicy = FeePolicyFlat
	}

	if cfg.Integration.MailFrom == "" {
		cfg.Integration.MailFrom = defaultMailFrom
	}

	rl := &cfg.Server.RateLimit
	if rl.GlobalRPS == 0 {
		rl.GlobalRPS = 20
	}
	if rl.GlobalBurst == 0 {
		rl.GlobalBurst = 40
	}
	if rl.RentalsRPS == 0 {
		rl.RentalsRPS = 2
	}
	if rl.RentalsBurst == 0 {
		rl.RentalsBurst = 5
	}
	if rl.ExpiresInSecs == 0 {
		rl.ExpiresInSecs = 180
	}
}
