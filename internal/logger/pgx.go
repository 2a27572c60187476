package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// pgx tracelog levels, mirrored here so the database package can cast the
// returned value without this package importing pgx.
const (
	pgxLogLevelNone  = 1
	pgxLogLevelError = 2
	pgxLogLevelWarn  = 3
	pgxLogLevelInfo  = 4
	pgxLogLevelDebug = 5
	pgxLogLevelTrace = 6
)

// NewPgxLogger builds the logger used for SQL query logging in local
// development. Console output on purpose: query logs are for humans.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps a zerolog level onto the pgx tracelog level
// scale (higher is more verbose in pgx, opposite of zerolog).
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return pgxLogLevelTrace
	case zerolog.DebugLevel:
		return pgxLogLevelDebug
	case zerolog.InfoLevel:
		return pgxLogLevelInfo
	case zerolog.WarnLevel:
		return pgxLogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return pgxLogLevelError
	default:
		return pgxLogLevelNone
	}
}
