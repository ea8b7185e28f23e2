package logging

import (
	"log/slog"
)

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("exhash")
//	log.Info("table initialized")
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithBucket creates a logger with bucket context.
// Useful for directory and bucket store operations.
//
// Example:
//
//	log := logging.WithBucket(bucketID)
//	log.Warn("bucket save failed")
func WithBucket(bucketID uint64) *slog.Logger {
	return GetLogger().With("bucket_id", bucketID)
}
