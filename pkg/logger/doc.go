// Package logger provides structured logging for shotpair.
//
// It wraps zerolog behind a small Logger interface so that components can
// accept an injected logger and tests can substitute a TestLogger:
//
//	log, err := logger.New(&cfg.Logging)
//	log.WithField("pair", 3).Info("Captured pair")
//	log.WithError(err).Warn("Left capture failed")
//
// Console output is human readable and written to stderr. Setting
// logging.file additionally appends JSON events to that file.
package logger
