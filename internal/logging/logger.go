package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/finadvisor/finadvisor/internal/config"
	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to stdout according to cfg.
func New(cfg config.LoggingConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter builds a logger writing to w. Console format is used unless
// the format is "json".
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	out := w
	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	}

	ctx := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.IncludeCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// CalculationLogger adapts a zerolog.Logger to the calculation.Logger interface.
type CalculationLogger struct {
	Log zerolog.Logger
}

// NewCalculationLogger tags every entry with component=calculation.
func NewCalculationLogger(l zerolog.Logger) CalculationLogger {
	return CalculationLogger{Log: l.With().Str("component", "calculation").Logger()}
}

func (c CalculationLogger) Debugf(format string, args ...any) {
	c.Log.Debug().Msg(fmt.Sprintf(format, args...))
}

func (c CalculationLogger) Infof(format string, args ...any) {
	c.Log.Info().Msg(fmt.Sprintf(format, args...))
}

func (c CalculationLogger) Warnf(format string, args ...any) {
	c.Log.Warn().Msg(fmt.Sprintf(format, args...))
}

func (c CalculationLogger) Errorf(format string, args ...any) {
	c.Log.Error().Msg(fmt.Sprintf(format, args...))
}
