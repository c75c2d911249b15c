package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       App       `mapstructure:"app"`
	Server    Server    `mapstructure:"server"`
	Database  Database  `mapstructure:"database"`
	YouTube   YouTube   `mapstructure:"youtube"`
	Gemini    Gemini    `mapstructure:"gemini"`
	Cache     Cache     `mapstructure:"cache"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
	Quota     Quota     `mapstructure:"quota"`
	Demo      Demo      `mapstructure:"demo"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORS          `mapstructure:"cors"`
}

// CORS holds CORS configuration
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Database holds Postgres configuration
type Database struct {
	ConnectionString string `mapstructure:"connection_string"`
}

// YouTube holds YouTube Data API configuration
type YouTube struct {
	APIKey string `mapstructure:"api_key"`
}

// Gemini holds LLM provider configuration
type Gemini struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

// Cache holds freshness windows for the two derived-analysis cache slots.
type Cache struct {
	CommentsTTLDays int `mapstructure:"comments_ttl_days"`
	AnalysisTTLDays int `mapstructure:"analysis_ttl_days"`
}

// CommentsTTL returns the comments cache window as a duration.
func (c Cache) CommentsTTL() time.Duration {
	return time.Duration(c.CommentsTTLDays) * 24 * time.Hour
}

// AnalysisTTL returns the full-analysis cache window as a duration.
func (c Cache) AnalysisTTL() time.Duration {
	return time.Duration(c.AnalysisTTLDays) * 24 * time.Hour
}

// RateLimit holds per-user per-feature request budgets.
type RateLimit struct {
	Enabled           bool `mapstructure:"enabled"`
	AnalyzePerMinute  int  `mapstructure:"analyze_per_minute"`
	CommentsPerMinute int  `mapstructure:"comments_per_minute"`
}

// Quota holds monthly plan entitlements per feature.
type Quota struct {
	FreeAnalysesPerMonth int `mapstructure:"free_analyses_per_month"`
	ProAnalysesPerMonth  int `mapstructure:"pro_analyses_per_month"`
}

// Demo holds demo-mode configuration. When Enabled is true and MockProvider is
// false, the analysis endpoint returns a fixed fixture document without
// touching any external collaborator.
type Demo struct {
	Enabled      bool `mapstructure:"enabled"`
	MockProvider bool `mapstructure:"mock_provider"`
}

// Load reads configuration from the given file (or the default search path),
// layering .env and environment variables on top.
func Load(cfgFile string) (*Config, error) {
	// Best effort: .env is optional
	_ = godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".creatorlens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("CREATORLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; everything has defaults or env overrides
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides maps the well-known secret env vars onto the config tree.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("YOUTUBE_API_KEY"); key != "" {
		cfg.YouTube.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.ConnectionString = dsn
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.cors.enabled", true)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})

	v.SetDefault("gemini.model", "gemini-flash-lite-latest")
	v.SetDefault("gemini.temperature", 0.4)

	v.SetDefault("cache.comments_ttl_days", 7)
	v.SetDefault("cache.analysis_ttl_days", 30)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.analyze_per_minute", 6)
	v.SetDefault("rate_limit.comments_per_minute", 12)

	v.SetDefault("quota.free_analyses_per_month", 25)
	v.SetDefault("quota.pro_analyses_per_month", 500)

	v.SetDefault("demo.enabled", false)
	v.SetDefault("demo.mock_provider", false)
}
