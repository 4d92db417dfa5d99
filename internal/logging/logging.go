// Package logging defines the minimal structured logger used across the
// launcher. Components accept the Logger interface so callers can plug in
// their own implementation; every logging call is advisory and must never
// influence a component's result.
package logging

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger provides structured logging with optional key-value pairs.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs warning-level messages with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})
}

// noopLogger is a Logger implementation that does nothing.
// This is the default logger used when none is provided.
type noopLogger struct{}

func (n *noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Error(msg string, keysAndValues ...interface{}) {}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &noopLogger{}
}

// charmAdapter adapts *charmlog.Logger (whose methods take an interface{}
// message) to the Logger interface (which takes a string message).
type charmAdapter struct {
	logger *charmlog.Logger
}

func (c *charmAdapter) Debug(msg string, keysAndValues ...interface{}) {
	c.logger.Debug(msg, keysAndValues...)
}

func (c *charmAdapter) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Info(msg, keysAndValues...)
}

func (c *charmAdapter) Warn(msg string, keysAndValues ...interface{}) {
	c.logger.Warn(msg, keysAndValues...)
}

func (c *charmAdapter) Error(msg string, keysAndValues ...interface{}) {
	c.logger.Error(msg, keysAndValues...)
}

// New returns a logger writing human-readable output to stderr.
// Debug-level messages are emitted only when debug is true.
func New(debug bool) Logger {
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "vulnera",
	})
	if debug {
		logger.SetLevel(charmlog.DebugLevel)
	}
	return &charmAdapter{logger: logger}
}
