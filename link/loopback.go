package link

import (
	"context"
	"log/slog"
	"math"

	"github.com/soypat/cop1/internal"
)

// Loopback is a simulated lossy link between the senders of a ground
// registry and the receivers of a space registry. Frames travel uplink and
// CLCWs travel downlink; each is dropped with a fixed probability drawn from
// a deterministic pseudo random sequence. Loopback is not safe for concurrent use.
type Loopback struct {
	ground *Registry
	space  *Registry
	// dropBelow is the loss probability scaled to the uint32 range.
	dropBelow uint32
	prand     uint32
	buf       []byte
	stats     LoopbackStats
	logger
}

// LoopbackStats counts the traffic moved by a [Loopback].
type LoopbackStats struct {
	Frames        int
	FramesDropped int
	CLCWs         int
	CLCWsDropped  int
	// RecvErrors counts frames rejected by a receiver with an error.
	RecvErrors int
}

// NewLoopback returns a link moving frames from the senders in ground to the
// receivers in space. loss is the probability of dropping each frame and CLCW.
func NewLoopback(ground, space *Registry, loss float64, seed uint32, log *slog.Logger) (*Loopback, error) {
	if loss < 0 || loss >= 1 || math.IsNaN(loss) {
		return nil, errLossRange
	}
	if seed == 0 {
		seed = 1 // Xorshift is stuck at zero.
	}
	return &Loopback{
		ground:    ground,
		space:     space,
		dropBelow: uint32(loss * math.MaxUint32),
		prand:     seed,
		logger:    logger{log: log},
	}, nil
}

// Stats returns the traffic counters.
func (lb *Loopback) Stats() LoopbackStats { return lb.stats }

func (lb *Loopback) drop() bool {
	lb.prand = internal.Prand32(lb.prand)
	return lb.prand < lb.dropBelow
}

// Step moves every frame awaiting transmission to its receiver and then one
// CLCW from every receiver back to its sender. It returns the number of frames
// and CLCWs delivered.
func (lb *Loopback) Step() (moved int) {
	lb.ground.Ascend(func(k Key, s *Sender, _ *Receiver) bool {
		if s == nil {
			return true
		}
		for {
			f, ok := s.NextFrame()
			if !ok {
				break
			}
			lb.stats.Frames++
			if lb.drop() {
				lb.stats.FramesDropped++
				lb.trace("loopback:drop-frame", slog.Uint64("vcid", uint64(k.VCID)))
				continue
			}
			// Receivers must not alias the sent queue copy.
			lb.buf = append(lb.buf[:0], f.Frame...)
			_, err := lb.space.Route(lb.buf)
			if err != nil {
				lb.stats.RecvErrors++
				lb.debug("loopback:route", slog.Uint64("vcid", uint64(k.VCID)), slog.String("err", err.Error()))
			}
			moved++
		}
		return true
	})
	var word [4]byte
	lb.space.Ascend(func(k Key, _ *Sender, r *Receiver) bool {
		if r == nil {
			return true
		}
		lb.stats.CLCWs++
		if lb.drop() {
			lb.stats.CLCWsDropped++
			return true
		}
		_, err := lb.ground.RouteCLCW(k.SCID, r.CLCW(word[:0]))
		if err != nil {
			lb.debug("loopback:route-clcw", slog.Uint64("vcid", uint64(k.VCID)), slog.String("err", err.Error()))
		}
		moved++
		return true
	})
	return moved
}

// Run calls Step until ctx is done or done returns true, backing off while
// there is no traffic to move. done is called between steps.
func (lb *Loopback) Run(ctx context.Context, done func() bool) error {
	backoff := internal.NewBackoff(internal.BackoffLinkPump)
	for ctx.Err() == nil {
		if done != nil && done() {
			return nil
		}
		// A step always moves CLCWs; only frames count as traffic.
		before := lb.stats.Frames
		lb.Step()
		if lb.stats.Frames == before {
			backoff.Miss()
		} else {
			backoff.Hit()
		}
	}
	return ctx.Err()
}

// Pending returns true if any sender has frames awaiting transmission.
func (lb *Loopback) Pending() bool {
	pending := false
	lb.ground.Ascend(func(_ Key, s *Sender, _ *Receiver) bool {
		pending = s != nil && s.Status().PendingTx > 0
		return !pending
	})
	return pending
}
