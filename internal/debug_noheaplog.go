//go:build !debugheaplog

package internal

import (
	"context"
	"log/slog"
)

// HeapAllocDebugging is set by the debugheaplog build tag.
const HeapAllocDebugging = false

// LogEnabled reports whether l logs at lvl. A nil logger logs nothing.
func LogEnabled(l *slog.Logger, lvl slog.Level) bool {
	return l != nil && l.Handler().Enabled(context.Background(), lvl)
}

// LogAttrs logs to l if it is not nil. Every package logger goes through
// LogAttrs so that the debugheaplog build tag can swap in a printer that
// reports heap allocations instead.
func LogAttrs(l *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	if l != nil {
		l.LogAttrs(context.Background(), level, msg, attrs...)
	}
}
