package farm

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

func (cb *ControlBlock) traceEvent(msg string, ev Event, seq uint8) {
	if cb.logenabled(internal.LevelTrace) {
		cb.trace(msg,
			slog.String("ev", ev.String()),
			slog.String("state", cb.state.String()),
			slog.Uint64("seq", uint64(seq)),
			slog.Uint64("vr", uint64(cb.vr)),
			slog.Bool("lockout", cb.lockout),
			slog.Bool("wait", cb.wait),
			slog.Bool("rt", cb.retransmit),
		)
	}
}
