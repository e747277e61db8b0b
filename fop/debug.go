package fop

import (
	"log/slog"

	"github.com/soypat/cop1/internal"
)

type logger struct {
	log *slog.Logger
}

func (l logger) logenabled(lvl slog.Level) bool {
	return internal.LogEnabled(l.log, lvl)
}

func (l logger) logattrs(lvl slog.Level, msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, lvl, msg, attrs...)
}

func (l logger) debug(msg string, attrs ...slog.Attr) {
	l.logattrs(slog.LevelDebug, msg, attrs...)
}

func (l logger) trace(msg string, attrs ...slog.Attr) {
	l.logattrs(internal.LevelTrace, msg, attrs...)
}

func (l logger) logerr(msg string, attrs ...slog.Attr) {
	l.logattrs(slog.LevelError, msg, attrs...)
}

func (cb *ControlBlock) traceEvent(msg string, ev Event) {
	if cb.logenabled(internal.LevelTrace) {
		cb.trace(msg,
			slog.String("ev", ev.String()),
			slog.String("state", cb.state.String()),
			slog.Uint64("vs", uint64(cb.vs)),
			slog.Uint64("nnr", uint64(cb.nnr)),
			slog.Uint64("txcnt", uint64(cb.txCnt)),
			slog.Uint64("ss", uint64(cb.ss)),
		)
	}
}
