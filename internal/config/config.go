package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/example/dme-recommend-service/internal/domain"
)

type Config struct {
	Port          string        `mapstructure:"PORT"`
	Env           string        `mapstructure:"ENV"`
	DatabaseURL   string        `mapstructure:"DATABASE_URL"`
	NATSURL       string        `mapstructure:"NATS_URL"`
	StanClusterID string        `mapstructure:"STAN_CLUSTER_ID"`
	StanClientID  string        `mapstructure:"STAN_CLIENT_ID"`
	StanSubject   string        `mapstructure:"STAN_SUBJECT"`
	StanDurable   string        `mapstructure:"STAN_DURABLE"`
	GeminiAPIKey  string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string        `mapstructure:"GEMINI_MODEL"`
	OracleTimeout time.Duration `mapstructure:"ORACLE_TIMEOUT"`
	FilterPolicy  string        `mapstructure:"FILTER_POLICY"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("STAN_CLUSTER_ID", "dme-cluster")
	v.SetDefault("STAN_SUBJECT", "orders")
	v.SetDefault("STAN_DURABLE", "dme-durable")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("ORACLE_TIMEOUT", "60s")
	v.SetDefault("FILTER_POLICY", string(domain.PolicyStrict))

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("NATS_URL")
	v.BindEnv("STAN_CLUSTER_ID")
	v.BindEnv("STAN_CLIENT_ID")
	v.BindEnv("STAN_SUBJECT")
	v.BindEnv("STAN_DURABLE")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("GEMINI_MODEL")
	v.BindEnv("ORACLE_TIMEOUT")
	v.BindEnv("FILTER_POLICY")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Policy returns the configured eligibility filter policy.
func (c *Config) Policy() (domain.FilterPolicy, error) {
	switch domain.FilterPolicy(c.FilterPolicy) {
	case domain.PolicyStrict:
		return domain.PolicyStrict, nil
	case domain.PolicyRosterOnly:
		return domain.PolicyRosterOnly, nil
	default:
		return "", fmt.Errorf("FILTER_POLICY must be %q or %q, got %q",
			domain.PolicyStrict, domain.PolicyRosterOnly, c.FilterPolicy)
	}
}

// Validate checks settings needed to serve requests. The Gemini key has no
// safe default; refusing to start beats failing on the first order.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	return nil
}
