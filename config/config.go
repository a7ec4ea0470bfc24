package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SKILLMATCH_SERVER_PORT
const EnvPrefix = "SKILLMATCH"

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Jobs      JobsConfig      `mapstructure:"jobs"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
}

// MatchingConfig holds scoring and ranking configuration
type MatchingConfig struct {
	TopK            int `mapstructure:"top_k"`
	Workers         int `mapstructure:"workers"`
	AdditionalLimit int `mapstructure:"additional_limit"` // additional skills shown in upload responses
	PreviewLength   int `mapstructure:"preview_length"`   // resume preview characters in upload responses
}

// JobsConfig holds job source configuration
type JobsConfig struct {
	SourceURL         string        `mapstructure:"source_url"` // empty serves the demo dataset
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxRetries        int           `mapstructure:"max_retries"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type            string        `mapstructure:"type"` // "memory"
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// LogConfig holds logging configuration
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Load loads configuration from .env, environment variables and config files.
// v may carry flag bindings; nil uses a fresh instance. configFile overrides the search paths.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	if v == nil {
		v = viper.New()
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/skillmatch/")
	}

	// Environment variable settings
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_upload_bytes", 16<<20) // 16 MiB

	// Matching defaults
	v.SetDefault("matching.top_k", 10)
	v.SetDefault("matching.workers", 4)
	v.SetDefault("matching.additional_limit", 10)
	v.SetDefault("matching.preview_length", 500)

	// Job source defaults
	v.SetDefault("jobs.source_url", "")
	v.SetDefault("jobs.timeout", "30s")
	v.SetDefault("jobs.requests_per_second", 1.0)
	v.SetDefault("jobs.burst", 5)
	v.SetDefault("jobs.max_retries", 3)
	v.SetDefault("jobs.user_agent", "SkillMatch/1.0")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Log defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Matching.TopK <= 0 {
		return fmt.Errorf("matching top_k must be positive, got: %d", config.Matching.TopK)
	}

	if config.Matching.Workers <= 0 {
		return fmt.Errorf("matching workers must be positive, got: %d", config.Matching.Workers)
	}

	if config.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server max_upload_bytes must be positive, got: %d", config.Server.MaxUploadBytes)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.Jobs.SourceURL != "" {
		u, err := url.Parse(config.Jobs.SourceURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("jobs source_url must be an http(s) URL, got: %s", config.Jobs.SourceURL)
		}
	}

	return nil
}
