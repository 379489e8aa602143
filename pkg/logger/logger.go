package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the process-wide structured logger. It logs to stdout until Init
// is called.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init initializes the global logger.
func Init(serviceName string, isDevelopment bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var output io.Writer = os.Stdout
	if isDevelopment {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	Logger = zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	log.Logger = Logger
}

// SetOutput redirects the global logger, keeping its level and fields.
// Tests use it to capture log lines.
func SetOutput(w io.Writer) {
	Logger = Logger.Output(w)
	log.Logger = Logger
}

// WithContext returns a logger enriched with the trace and span ids carried by ctx.
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Logger.With().Logger()
	if ctx == nil {
		return &l
	}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		l = l.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}
	return &l
}

func Info(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Info()
}

func Error(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Error()
}

func Debug(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Debug()
}

func Warn(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Warn()
}

// SetLevel sets the global log level. Unknown values fall back to info.
func SetLevel(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
