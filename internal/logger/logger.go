// Package logger configures the application's logging, monitoring, and
// observability.
//
// It uses zerolog for structured logging and integrates with New Relic to
// instrument the codebase, forwarding logs, metrics, and traces. When no
// New Relic license key is configured everything degrades to plain zerolog.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/pressroomhq/pressroom/internal/config"
)

// LoggerService wraps the optional New Relic application instance.
//
// It exists so the rest of the codebase can ask "is APM on?" without
// importing agent setup details. GetApplication returns nil when New Relic
// is not configured, and every caller treats nil as "skip telemetry".
type LoggerService struct {
	nrApp *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when disabled.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.nrApp
}

// Shutdown flushes pending telemetry. Safe to call when disabled.
func (s *LoggerService) Shutdown(timeout time.Duration) {
	if s == nil || s.nrApp == nil {
		return
	}
	s.nrApp.Shutdown(timeout)
}

// New constructs the application logger and the observability service.
//
// Behavior:
//   - log level comes from observability config (env-dependent default)
//   - "console" format pretty-prints to stdout, anything else emits JSON
//   - when New Relic is configured with log forwarding, the output writer
//     is wrapped so log lines are decorated and forwarded by the agent
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	obs := cfg.Observability

	level, err := zerolog.ParseLevel(obs.GetLogLevel())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", obs.GetLogLevel(), err)
	}

	service := &LoggerService{}

	if obs.NewRelic.LicenseKey != "" {
		nrApp, err := newrelic.NewApplication(
			newrelic.ConfigAppName(obs.ServiceName),
			newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
			newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize New Relic: %w", err)
		}
		service.nrApp = nrApp
	}

	var out io.Writer = os.Stdout
	if obs.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	// Wrap the writer so the agent annotates each line with linking
	// metadata and forwards it. Only makes sense for JSON output.
	if service.nrApp != nil && obs.NewRelic.AppLogForwardingEnabled && obs.Logging.Format != "console" {
		w := zerologWriter.New(out, service.nrApp)
		out = &w
	}

	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", obs.ServiceName).
		Str("env", obs.Environment).
		Logger()

	return &log, service, nil
}

// WithTraceContext returns a child logger carrying the transaction's
// trace.id and span.id so log lines correlate with distributed traces.
func WithTraceContext(log zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return log
	}
	md := txn.GetLinkingMetadata()
	return log.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}
