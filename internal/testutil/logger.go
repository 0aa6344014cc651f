// Package testutil provides shared helpers for the server's tests.
package testutil

import "log/slog"

// DiscardLogger returns a slog.Logger that discards all output. Use in
// tests to keep handler and store logging quiet.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
