package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               string        `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevelName       string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	HTTPTimeoutSeconds int           `envconfig:"HTTP_TIMEOUT_SECONDS" default:"60" validate:"gt=0"`
	AnalysisTimeout    time.Duration `envconfig:"ANALYSIS_TIMEOUT" default:"2m" validate:"gte=0"`
	MaxUploadBytes     int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760" validate:"gt=0"`
	AllowedOrigins     []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	RateLimitRPS       float64       `envconfig:"RATE_LIMIT_RPS" default:"2" validate:"gt=0"`
	RateLimitBurst     int           `envconfig:"RATE_LIMIT_BURST" default:"5" validate:"gt=0"`

	// An empty key is allowed: the completion call reports it as an upstream fault.
	OpenAIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1" validate:"required,url"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4" validate:"required"`

	RetryMax          int           `envconfig:"RETRY_MAX" default:"5" validate:"gte=0,lte=10"`
	RetryInitialDelay time.Duration `envconfig:"RETRY_INITIAL_DELAY" default:"1s" validate:"gt=0"`
	RetryMultiplier   float64       `envconfig:"RETRY_MULTIPLIER" default:"2" validate:"gte=1"`

	HTTPTimeout time.Duration `ignored:"true"`
	LogLevel    slog.Level    `ignored:"true"`
}

func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config from env: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevelName))); err != nil {
		cfg.LogLevel = slog.LevelInfo
	}
	return cfg, nil
}
