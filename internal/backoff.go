package internal

import "time"

type BackoffFlags uint8

const (
	// BackoffLinkPump is for loops moving frames over a simulated link.
	// They must poll well above the rate of the retransmission timer.
	BackoffLinkPump BackoffFlags = 1 << iota
)

const backoffMinWait = time.Microsecond

func backoffMaxWait(flags BackoffFlags) time.Duration {
	if flags&BackoffLinkPump != 0 {
		return 2 * time.Millisecond
	}
	return 100 * time.Millisecond
}

func NewBackoff(flags BackoffFlags) Backoff {
	return Backoff{
		wait:    uint32(backoffMinWait),
		maxWait: uint32(backoffMaxWait(flags)),
	}
}

// Backoff sleeps for exponentially increasing periods while a polling loop
// finds no work. A Backoff with a non-zero maxWait is ready for use.
type Backoff struct {
	// wait is the sleep duration of the next call to Miss.
	wait    uint32
	maxWait uint32
}

// Hit resets the wait to its minimum after the loop found work.
func (b *Backoff) Hit() {
	if b.maxWait == 0 {
		panic("Backoff not initialized")
	}
	b.wait = uint32(backoffMinWait)
}

// Miss sleeps and doubles the wait up to its maximum.
func (b *Backoff) Miss() {
	if b.maxWait == 0 {
		panic("Backoff not initialized")
	}
	time.Sleep(time.Duration(b.wait))
	b.wait = min(2*b.wait, b.maxWait)
}

// Wait returns the duration the next call to Miss sleeps for.
func (b *Backoff) Wait() time.Duration { return time.Duration(b.wait) }
