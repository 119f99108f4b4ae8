package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Redis      RedisConfig      `mapstructure:"redis"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Host      string        `mapstructure:"host"`
	Port      int           `mapstructure:"port"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// ScoringConfig holds the fixed rule parameters and verdict thresholds.
// The values are read-only after Load; evaluators receive them by value.
type ScoringConfig struct {
	Keywords          []string `mapstructure:"keywords"`
	KeywordWeight     int      `mapstructure:"keyword_weight"`
	CompoundWeight    int      `mapstructure:"compound_weight"`
	AmountThreshold   float64  `mapstructure:"amount_threshold"`
	AmountWeight      int      `mapstructure:"amount_weight"`
	SenderDigitWeight int      `mapstructure:"sender_digit_weight"`
	RequestBonus      int      `mapstructure:"request_bonus"`
	HighAmountBonus   int      `mapstructure:"high_amount_bonus"`
	HighThreshold     int      `mapstructure:"high_threshold"`
	MediumThreshold   int      `mapstructure:"medium_threshold"`
	MaxScore          int      `mapstructure:"max_score"`
}

type ClassifierConfig struct {
	SmoothingAlpha float64 `mapstructure:"smoothing_alpha"`
}

// Load reads configuration from file and environment variables.
// A missing config file is not an error; defaults cover every key.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/payguard-lab")
	}

	// Environment variables
	v.SetEnvPrefix("PAYGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("redis.enabled", "PAYGUARD_REDIS_ENABLED")
	v.BindEnv("redis.host", "PAYGUARD_REDIS_HOST")
	v.BindEnv("redis.port", "PAYGUARD_REDIS_PORT")
	v.BindEnv("redis.password", "PAYGUARD_REDIS_PASSWORD")
	v.BindEnv("app.environment", "PAYGUARD_APP_ENVIRONMENT")
	v.BindEnv("server.http_port", "PAYGUARD_SERVER_HTTP_PORT")

	setDefaults(v)

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

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "payguard-lab")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "payguard:")
	v.SetDefault("redis.cache_ttl", "10m")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests_per_minute", 120)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("scoring.keywords", []string{
		"request", "collect", "upi pin", "approve", "claim reward", "receive money",
	})
	v.SetDefault("scoring.keyword_weight", 20)
	v.SetDefault("scoring.compound_weight", 40)
	v.SetDefault("scoring.amount_threshold", 5000)
	v.SetDefault("scoring.amount_weight", 20)
	v.SetDefault("scoring.sender_digit_weight", 10)
	v.SetDefault("scoring.request_bonus", 15)
	v.SetDefault("scoring.high_amount_bonus", 15)
	v.SetDefault("scoring.high_threshold", 60)
	v.SetDefault("scoring.medium_threshold", 30)
	v.SetDefault("scoring.max_score", 100)

	v.SetDefault("classifier.smoothing_alpha", 1.0)
}

// DefaultScoring returns the scoring parameters used when no config is loaded,
// mirroring the viper defaults. Convenient for tests and library use.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		Keywords: []string{
			"request", "collect", "upi pin", "approve", "claim reward", "receive money",
		},
		KeywordWeight:     20,
		CompoundWeight:    40,
		AmountThreshold:   5000,
		AmountWeight:      20,
		SenderDigitWeight: 10,
		RequestBonus:      15,
		HighAmountBonus:   15,
		HighThreshold:     60,
		MediumThreshold:   30,
		MaxScore:          100,
	}
}

// DefaultClassifier returns the classifier parameters used when no config is loaded.
func DefaultClassifier() ClassifierConfig {
	return ClassifierConfig{SmoothingAlpha: 1.0}
}
