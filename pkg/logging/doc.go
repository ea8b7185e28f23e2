// Package logging provides a process-wide structured logger for keydex.
//
// The package wraps [log/slog] and exposes a single global logger instance
// that is initialized once and then retrieved via GetLogger. All subsystems
// should obtain a logger through this package rather than constructing their
// own slog.Logger values, so that log level and output destination are
// controlled from a single place.
//
// # Initialisation
//
// Call Init (or InitDefault for sensible defaults) once at program startup,
// before any goroutines that might call GetLogger are spawned:
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug}); err != nil {
//	    log.Fatal(err)
//	}
//
// InitDefault writes INFO-level logs to stderr.
//
// # Retrieving the logger
//
//	logger := logging.GetLogger()
//	logger.Info("index loaded", "keys", n)
//
// If GetLogger is called before Init, a default stderr logger is created
// lazily (via sync.Once) so that packages that log during init are safe.
//
// # Context helpers
//
// WithComponent and WithBucket return loggers with a pre-attached attribute,
// so call sites stay terse:
//
//	logging.WithBucket(id).Warn("save failed", "error", err)
package logging
