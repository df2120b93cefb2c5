package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler discards all output; tests only need a non-nil logger.
func NewTestHandler(_ slog.Level) slog.Handler {
	return slog.NewTextHandler(io.Discard, nil)
}
