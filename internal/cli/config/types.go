// Package config loads the skyjson CLI configuration from defaults,
// an optional skyjson.yaml, environment variables, and command flags,
// in that order of increasing priority.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/skyjson/skyjson/pkg/arena"
	"github.com/skyjson/skyjson/pkg/json"
)

// Config holds everything the CLI can tune. None of it changes parsing
// semantics; it gates the allocation ceiling and diagnostic output only.
type Config struct {
	Arena  ArenaConfig  `koanf:"arena"`
	Parser ParserConfig `koanf:"parser"`
	Log    LogConfig    `koanf:"log"`
}

// ArenaConfig sizes the per-invocation arena.
type ArenaConfig struct {
	Capacity int `koanf:"capacity"` // bytes
}

// ParserConfig bounds recursion in the parser and printer.
type ParserConfig struct {
	MaxDepth int `koanf:"max_depth"`
}

// LogConfig controls the diagnostic side channel.
type LogConfig struct {
	Level string `koanf:"level"` // none, error, warn, info, debug
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Arena:  ArenaConfig{Capacity: arena.DefaultCapacity},
		Parser: ParserConfig{MaxDepth: json.DefaultMaxDepth},
		Log:    LogConfig{Level: "info"},
	}
}

// Validate checks the configuration for values the core would reject.
func (c *Config) Validate() error {
	if c.Arena.Capacity <= 0 {
		return fmt.Errorf("arena.capacity must be positive, got %d", c.Arena.Capacity)
	}
	if c.Parser.MaxDepth < 1 {
		return fmt.Errorf("parser.max_depth must be at least 1, got %d", c.Parser.MaxDepth)
	}
	switch c.Log.Level {
	case "none", "error", "warn", "info", "debug":
		return nil
	default:
		return fmt.Errorf("log.level must be one of none, error, warn, info, debug; got %q", c.Log.Level)
	}
}

// Logger builds a structured logger writing to w at the configured
// level. Level "none" discards everything.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	if c.Log.Level == "none" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var level slog.Level
	switch c.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	default:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type configKey struct{}

type loggerKey struct{}

// NewContext stores cfg in the context for command handlers.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the loaded config, or Default when none was set.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	return Default()
}

// WithLogger stores the logger in the context for command handlers.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// GetLogger returns the context logger, or a discarding one.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
