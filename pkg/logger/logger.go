package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Namespaces used as the component field on sub-loggers
const (
	APP        = "APP"
	CONFIG     = "CONFIG"
	CLIENT     = "CLIENT"
	GENERATION = "GENERATION"
	HANDLER    = "HANDLER"
	MIDDLEWARE = "MIDDLEWARE"
	REDIS      = "REDIS"
	RELAY      = "RELAY"
	SEO        = "SEO"
	SERVICE    = "SERVICE"
)

func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT
func Init() {
	InitWithWriter(os.Stderr)
}

// InitWithWriter is Init with an explicit destination
func InitWithWriter(w io.Writer) {
	zerolog.SetGlobalLevel(parseLevel(os.Getenv("LOG_LEVEL")))
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// For returns a sub-logger tagged with the given namespace
func For(namespace string) zerolog.Logger {
	return log.With().Str("component", strings.ToLower(namespace)).Logger()
}
