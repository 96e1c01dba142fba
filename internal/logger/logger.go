// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Logger is the global logger. Components default to it when no logger is injected.
var Logger = log.Logger

// Config controls level, output format and timestamp layout
type Config struct {
	Level      string `mapstructure:"level" json:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format     string `mapstructure:"format" json:"format" validate:"omitempty,oneof=json pretty"`
	TimeFormat string `mapstructure:"time_format" json:"time_format"`
}

// Init replaces the global logger and sets the process-wide timestamp layout.
// Logs go to stderr so stdout stays free for command output.
func Init(cfg Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}
	Logger = New(os.Stderr, cfg)
	log.Logger = Logger
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
}

// New builds a logger writing to w without touching global state. JSON
// timestamps use the layout set by Init.
func New(w io.Writer, cfg Config) zerolog.Logger {
	out := w
	if strings.EqualFold(cfg.Format, FormatPretty) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: cfg.TimeFormat}
	}

	return zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name onto zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Ctx returns the logger carried by ctx, or the global logger when none is attached.
func Ctx(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled && zerolog.DefaultContextLogger == nil {
		return &Logger
	}
	return l
}

// WithContext attaches l to ctx.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}
