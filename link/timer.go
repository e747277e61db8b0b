package link

import (
	"errors"
	"sync"
	"time"
)

var errNoLock = errors.New("link: timer not bound to a lock")

// Timer is the restartable single shot retransmission timer of a virtual channel.
// Start, Cancel and Running must be called while holding the lock the timer
// was bound to. The expiry callback runs with that lock held. A fire that
// races with a later Start or Cancel is discarded.
type Timer struct {
	mu      sync.Locker
	onFire  func()
	t       *time.Timer
	gen     uint64
	running bool
}

// bind must be called while holding mu. Any pending expiry is discarded.
func (t *Timer) bind(mu sync.Locker, onFire func()) {
	t.stop()
	t.mu = mu
	t.onFire = onFire
}

// Start schedules expiry after d, discarding any pending expiry.
func (t *Timer) Start(d time.Duration) error {
	if t.mu == nil {
		return errNoLock
	}
	t.stop()
	t.running = true
	gen := t.gen
	t.t = time.AfterFunc(d, func() { t.fire(gen) })
	return nil
}

// Cancel stops the timer. Cancelling a stopped timer is a no-op.
func (t *Timer) Cancel() error {
	t.stop()
	return nil
}

// Running returns true if the timer is scheduled to expire.
func (t *Timer) Running() bool { return t.running }

func (t *Timer) stop() {
	t.gen++
	t.running = false
	if t.t != nil {
		t.t.Stop()
		t.t = nil
	}
}

func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen || !t.running {
		return // Stale.
	}
	t.running = false
	t.t = nil
	t.onFire()
}
