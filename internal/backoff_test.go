package internal

import (
	"testing"
	"time"
)

func TestBackoff(t *testing.T) {
	b := NewBackoff(BackoffLinkPump)
	for i := 0; i < 16; i++ {
		b.Miss()
	}
	if b.Wait() != 2*time.Millisecond {
		t.Fatalf("want wait capped at 2ms, got %s", b.Wait())
	}
	b.Hit()
	if b.Wait() != backoffMinWait {
		t.Fatalf("want wait reset to minimum, got %s", b.Wait())
	}
	var zero Backoff
	defer func() {
		if recover() == nil {
			t.Fatal("want panic on uninitialized backoff")
		}
	}()
	zero.Hit()
}

func TestPrand32(t *testing.T) {
	seen := make(map[uint32]bool)
	v := uint32(1)
	for i := 0; i < 1000; i++ {
		v = Prand32(v)
		if v == 0 || seen[v] {
			t.Fatalf("iter %d: sequence repeated or hit zero: %d", i, v)
		}
		seen[v] = true
	}
	if Prand32(uint32(0)) != 0 {
		t.Fatal("zero seed must stay zero")
	}
}
