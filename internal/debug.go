package internal

import (
	"log/slog"
	"runtime"
	"sync"
)

// LevelTrace is below debug and marks per-event logs of the protocol
// machines: event classification, frame dispatch and queue operations.
const LevelTrace slog.Level = slog.LevelDebug - 2

var (
	memstats    runtime.MemStats
	lastAllocs  uint64
	lastMallocs uint64
	allocmu     sync.Mutex
)

// LevelString returns the name printed for a log level. It differs from
// [slog.Level.String] only in naming [LevelTrace].
func LevelString(lvl slog.Level) string {
	if lvl == LevelTrace {
		return "TRACE"
	}
	return lvl.String()
}

// ReplaceLevel is a [slog.HandlerOptions] ReplaceAttr function printing
// [LevelTrace] by name.
func ReplaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(LevelString(lvl))
		}
	}
	return a
}

// LogAllocs prints the heap growth since the last call, if any. It uses the
// runtime print builtins so that it does not allocate itself.
func LogAllocs(msg string) {
	allocmu.Lock()
	defer allocmu.Unlock()
	runtime.ReadMemStats(&memstats)
	if memstats.TotalAlloc == lastAllocs {
		return
	}
	print("[ALLOC] ", msg)
	print(" inc=", int64(memstats.TotalAlloc)-int64(lastAllocs))
	print(" n=", int64(memstats.Mallocs)-int64(lastMallocs))
	print(" heap=", memstats.HeapAlloc)
	print(" tot=", memstats.TotalAlloc)
	println()
	lastAllocs = memstats.TotalAlloc
	lastMallocs = memstats.Mallocs
}
