package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Base currency all rates are expressed against.
	BaseCurrencyCode string

	// External rate provider.
	ProviderName    string
	ProviderBaseURL string
	ProviderTimeout time.Duration

	// Freshness threshold for stored rates.
	RateMaxAge time.Duration

	// TTL handed to pkg/ratecache consumers.
	CacheTTL time.Duration

	// Seed rates as rate-to-base per currency code.
	SeedRates map[string]decimal.Decimal

	// Startup hooks for the refresh paths.
	SeedOnStart    bool
	RefreshOnStart bool

	// Rate limiting spec in ulule/limiter format, e.g. "120-M".
	RateLimitSpec string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("BASE_CURRENCY_CODE", "USD")
	viper.SetDefault("PROVIDER_NAME", "exchangerate-api")
	viper.SetDefault("PROVIDER_BASE_URL", "https://open.er-api.com/v6")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("RATE_MAX_AGE", "1h")
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("SEED_RATES", "")
	viper.SetDefault("SEED_ON_START", true)
	viper.SetDefault("REFRESH_ON_START", false)
	viper.SetDefault("RATE_LIMIT", "120-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	cfg.BaseCurrencyCode = strings.ToUpper(viper.GetString("BASE_CURRENCY_CODE"))
	if len(cfg.BaseCurrencyCode) != 3 {
		return nil, fmt.Errorf("BASE_CURRENCY_CODE must be a 3-letter code, got %q", cfg.BaseCurrencyCode)
	}

	cfg.ProviderName = viper.GetString("PROVIDER_NAME")
	cfg.ProviderBaseURL = viper.GetString("PROVIDER_BASE_URL")
	cfg.ProviderTimeout = parseDurationWithDefault("PROVIDER_TIMEOUT", 10*time.Second)
	cfg.RateMaxAge = parseDurationWithDefault("RATE_MAX_AGE", time.Hour)
	cfg.CacheTTL = parseDurationWithDefault("CACHE_TTL", 5*time.Minute)

	seedRates, err := ParseSeedRates(viper.GetString("SEED_RATES"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_RATES: %w", err)
	}
	cfg.SeedRates = seedRates

	cfg.SeedOnStart = viper.GetBool("SEED_ON_START")
	cfg.RefreshOnStart = viper.GetBool("REFRESH_ON_START")
	cfg.RateLimitSpec = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

func parseDurationWithDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}

// ParseSeedRates parses a "CODE=rate,CODE=rate" spec into rate-to-base values
// keyed by currency code, e.g. "EUR=1.087,IDR=0.0000612". Rates must be
// positive decimals; codes must be 3 letters.
func ParseSeedRates(spec string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	if strings.TrimSpace(spec) == "" {
		return rates, nil
	}
	for _, entry := range strings.Split(spec, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed entry %q", entry)
		}
		code := strings.ToUpper(strings.TrimSpace(parts[0]))
		if len(code) != 3 {
			return nil, fmt.Errorf("currency code %q must be 3 letters", code)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("rate for %s: %w", code, err)
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("rate for %s must be positive, got %s", code, rate)
		}
		rates[code] = rate
	}
	return rates, nil
}
