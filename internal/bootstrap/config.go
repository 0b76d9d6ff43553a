package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/target/dirsearch/config"
)

// LoggerConfig controls the process logger.
type LoggerConfig struct {
	// Output defaults to stderr so logs never interleave with command output.
	Output io.Writer
	Level  slog.Level
	// Text selects a human-readable handler instead of JSON.
	Text bool
}

// InitLogger initializes the structured logger and installs it as the default.
func InitLogger(cfg LoggerConfig) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler = slog.NewJSONHandler(out, opts)
	if cfg.Text {
		handler = slog.NewTextHandler(out, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// LoggerConfigFor derives logger settings from the application config.
func LoggerConfigFor(cfg *config.AppConfig) LoggerConfig {
	if cfg == nil {
		return LoggerConfig{Level: slog.LevelInfo}
	}
	return LoggerConfig{Level: cfg.SlogLevel(), Text: cfg.IsDev}
}

// LoadConfig loads configuration from environment variables, reading .env
// first when present.
func LoadConfig() (config.AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}
