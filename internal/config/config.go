package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	PriceSourceYahoo    = "yahoo"
	PriceSourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Prices      PricesConfig   `mapstructure:"prices"`
	Yahoo       YahooConfig    `mapstructure:"yahoo"`
}

type ServerConfig struct {
	GRPCPort    string `mapstructure:"grpc_port"`
	APIToken    string `mapstructure:"api_token"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

type DatabaseConfig struct {
	ConnStr  string `mapstructure:"conn_str"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type PricesConfig struct {
	Source      string `mapstructure:"source"`
	AssetSymbol string `mapstructure:"asset_symbol"`
	FXSymbol    string `mapstructure:"fx_symbol"`
}

type YahooConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from an optional .env file, an optional config.yaml and the environment.
// Environment keys are the upper-cased paths with dots replaced by underscores (e.g. SERVER_GRPC_PORT),
// plus the short aliases GRPC_PORT, API_TOKEN and DB_CONN_STR.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindAliases(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")

	v.SetDefault("server.grpc_port", ":8080")
	v.SetDefault("server.api_token", "dev-token")
	v.SetDefault("server.metrics_addr", ":9090")

	// Docker friendly defaults, same as a local postgres
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "goldflow")

	v.SetDefault("prices.source", PriceSourceYahoo)
	v.SetDefault("prices.asset_symbol", "GC=F")
	v.SetDefault("prices.fx_symbol", "TRY=X")

	v.SetDefault("yahoo.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("yahoo.timeout", 15*time.Second)
}

func bindAliases(v *viper.Viper) {
	aliases := map[string][]string{
		"server.grpc_port":    {"SERVER_GRPC_PORT", "GRPC_PORT"},
		"server.api_token":    {"SERVER_API_TOKEN", "API_TOKEN"},
		"server.metrics_addr": {"SERVER_METRICS_ADDR", "METRICS_ADDR"},
		"database.conn_str":   {"DATABASE_CONN_STR", "DB_CONN_STR"},
		"database.host":       {"DATABASE_HOST", "DB_HOST"},
		"database.port":       {"DATABASE_PORT", "DB_PORT"},
		"database.user":       {"DATABASE_USER", "DB_USER"},
		"database.password":   {"DATABASE_PASSWORD", "DB_PASSWORD"},
		"database.name":       {"DATABASE_NAME", "DB_NAME"},
		"prices.source":       {"PRICES_SOURCE", "PRICE_SOURCE"},
		"prices.asset_symbol": {"PRICES_ASSET_SYMBOL", "ASSET_SYMBOL"},
		"prices.fx_symbol":    {"PRICES_FX_SYMBOL", "FX_SYMBOL"},
		"yahoo.base_url":      {"YAHOO_BASE_URL"},
		"yahoo.timeout":       {"YAHOO_TIMEOUT"},
	}
	for key, envs := range aliases {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Server.GRPCPort == "" {
		return fmt.Errorf("grpc port cannot be empty")
	}
	if c.Server.APIToken == "" {
		return fmt.Errorf("api token cannot be empty")
	}

	switch c.Prices.Source {
	case PriceSourceYahoo:
		if c.Yahoo.BaseURL == "" {
			return fmt.Errorf("yahoo base url cannot be empty")
		}
		if c.Yahoo.Timeout <= 0 {
			return fmt.Errorf("yahoo timeout must be greater than 0")
		}
	case PriceSourcePostgres:
		if c.Database.DSN() == "" {
			return fmt.Errorf("database connection cannot be empty")
		}
	default:
		return fmt.Errorf("unknown price source %q", c.Prices.Source)
	}

	if c.Prices.AssetSymbol == "" || c.Prices.FXSymbol == "" {
		return fmt.Errorf("asset and fx symbols cannot be empty")
	}

	return nil
}

// DSN returns the explicit connection string, or builds one from the individual fields
func (d DatabaseConfig) DSN() string {
	if d.ConnStr != "" {
		return d.ConnStr
	}
	if d.Host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}
