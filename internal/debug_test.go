//go:build !debugheaplog

package internal

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestReplaceLevel(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace, ReplaceAttr: ReplaceLevel}))
	if !LogEnabled(l, LevelTrace) || LogEnabled(nil, slog.LevelError) {
		t.Fatal("unexpected enabled levels")
	}
	LogAttrs(l, LevelTrace, "ev", slog.Int("n", 1))
	LogAttrs(l, slog.LevelWarn, "alert")
	LogAttrs(nil, slog.LevelError, "dropped")
	got := buf.String()
	for _, want := range []string{"level=TRACE msg=ev n=1", "level=WARN msg=alert"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "dropped") {
		t.Error("nil logger must not log")
	}
}
