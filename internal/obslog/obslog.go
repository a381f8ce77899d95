// Package obslog provides the structured logging the solver and its
// command-line tools report progress and errors through, in place of the
// teacher engine's bare log.SetOutput/Log(string) file appender.
package obslog

import (
	"go.uber.org/zap"
)

// Logger is the narrow interface the solver reports to: a search beginning,
// a search ending with its result, and incidental warnings along the way.
// It mirrors the teacher's BeginSearch/EndSearch/PrintPV shape, generalized
// from chess principal variations to nimber results.
type Logger interface {
	// BeginSearch signals that a new top-level nimber computation started.
	BeginSearch(game string, method string)
	// EndSearch reports a top-level computation's result and duration.
	EndSearch(nimber uint8, elapsedSeconds float64)
	// Warn reports a non-fatal problem (e.g. a corrupted cache entry
	// skipped during replay) that doesn't stop the search.
	Warn(msg string, fields ...zap.Field)
}

// NulLogger is a Logger that does nothing, the obslog counterpart of the
// teacher's NulLogger.
type NulLogger struct{}

func (NulLogger) BeginSearch(string, string) {}
func (NulLogger) EndSearch(uint8, float64)   {}
func (NulLogger) Warn(string, ...zap.Field)  {}

// ZapLogger adapts a *zap.Logger into a Logger.
type ZapLogger struct {
	L *zap.Logger
}

// New builds a ZapLogger in production (JSON, info-level) configuration.
func New() (*ZapLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{L: l}, nil
}

// NewDevelopment builds a ZapLogger in development (console, debug-level)
// configuration, for use by the command-line tools when run interactively.
func NewDevelopment() (*ZapLogger, error) {
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{L: l}, nil
}

func (z *ZapLogger) BeginSearch(game, method string) {
	z.L.Info("search started", zap.String("game", game), zap.String("method", method))
}

func (z *ZapLogger) EndSearch(nimber uint8, elapsedSeconds float64) {
	z.L.Info("search finished", zap.Uint8("nimber", nimber), zap.Float64("elapsed_seconds", elapsedSeconds))
}

func (z *ZapLogger) Warn(msg string, fields ...zap.Field) {
	z.L.Warn(msg, fields...)
}

func (z *ZapLogger) Sync() error { return z.L.Sync() }
