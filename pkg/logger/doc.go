// Package logger provides the structured logging interface used across vkbackup.
//
// It wraps zerolog with a small Logger interface, a coloured console writer on
// stderr (stdout belongs to the progress display), optional file output and a
// process-wide logger reachable through GetLogger.
//
//	err := logger.Initialize(&cfg.Logging)
//	log := logger.GetLogger().WithField("run_id", runID)
//	log.InfoWithFields("photos fetched", map[string]interface{}{"count": 5})
//
// LogRequest strips access tokens from URLs before they are logged. TestLogger
// captures messages for assertions and NewNopLogger discards them.
package logger
