// Package runlog wraps zap with the per-phase timing helpers the
// orchestrator and supervisor use to report structured durations
// alongside every step of a table's run.
package runlog

import (
	"time"

	"go.uber.org/zap"
)

// New builds a production zap logger. Callers should defer Sync() on
// the returned logger.
func New() (*zap.Logger, error) {
	return zap.NewProduction()
}

// Phase times a unit of work and logs its duration on completion,
// regardless of whether fn returns an error.
func Phase(log *zap.Logger, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	fields := []zap.Field{zap.String("phase", name), zap.Duration("duration", time.Since(start))}
	if err != nil {
		log.Error("phase failed", append(fields, zap.Error(err))...)
		return err
	}
	log.Info("phase complete", fields...)
	return nil
}

// Table returns a logger scoped to one table worker, the way every
// per-table log line should be attributable at a glance.
func Table(log *zap.Logger, table string) *zap.Logger {
	return log.With(zap.String("table", table))
}

// File returns a logger scoped to one file within a table worker.
func File(log *zap.Logger, key string) *zap.Logger {
	return log.With(zap.String("file", key))
}
