package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/everisa/core"
	"github.com/tebeka/atexit"
)

// LogConfig holds logger configuration.
type LogConfig struct {
	Level     string `yaml:"level"`  // debug, info, trace, warn or error
	Format    string `yaml:"format"` // text or json
	File      string `yaml:"file"`
	AddSource bool   `yaml:"add_source"`
}

// DefaultLogConfig logs warnings and above as text to stderr.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "warn",
		Format: "text",
	}
}

func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "trace":
		return core.LevelTrace, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// NewLogger creates a logger writing to out.
func NewLogger(cfg LogConfig, out io.Writer) *slog.Logger {
	level, _ := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// InitLogger installs the default slog logger. When a log file is
// configured, it is closed when the program exits through atexit.
func InitLogger(cfg LogConfig) error {
	var out io.Writer = os.Stderr

	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}

		atexit.Register(func() { _ = file.Close() })
		out = file
	}

	slog.SetDefault(NewLogger(cfg, out))

	return nil
}
