// Package logging provides structured logging for wsdemo.
//
// The package wraps a global zap logger with package-level helpers so that
// the connection manager, the TUI and the commands all log the same way.
//
// # Silent by default
//
// The terminal belongs to Bubble Tea while the client runs, so nothing is
// logged unless a level is requested, either with --log-level or with the
// WSDEMO_LOG_LEVEL environment variable. Output goes to --log-file (or
// WSDEMO_LOG_FILE) and falls back to stderr.
//
//	wsdemo --log-level debug --log-file /tmp/wsdemo.log
//
// # Log Levels
//
//   - debug: ready-state transitions, hex and ASCII payload dumps, pings
//   - info: connection events and every message sent or received
//   - warn: dropped sends, failed dials
//   - error: unexpected failures
//
// # Structured Logging
//
//	logging.Info("Dial failed",
//	    zap.String("url", "ws://localhost:1323/ws"),
//	    zap.Error(err),
//	)
package logging
