package farm

import (
	"testing"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/seqs"
)

// Here we define internal testing helpers that may be used in any *_test.go file
// but are not exported.

type fakeRx struct {
	full bool
}

func (rx *fakeRx) Full() bool { return rx.full }

// FrameStep defines a single received frame and the FARM state expected after processing it.
type FrameStep struct {
	Seq    seqs.Value
	Bypass cop1.BypassType
	Ctrl   cop1.ControlType
	Cmd    []byte
	RxFull bool // Receive queue full before frame arrives.

	WantResult cop1.FarmResult
	WantState  State
	WantVR     seqs.Value
	WantFlags  flags
}

type flags struct {
	lockout, wait, retransmit bool
}

func (cb *ControlBlock) helperFlags() flags {
	return flags{lockout: cb.lockout, wait: cb.wait, retransmit: cb.retransmit}
}

func (cb *ControlBlock) HelperInitState(t *testing.T, rx *fakeRx, state State, vr seqs.Value, w seqs.Size) {
	t.Helper()
	err := cb.Configure(rx, Config{Width: w})
	if err != nil {
		t.Fatal(err)
	}
	cb.state = state
	cb.vr = vr
	switch state {
	case StateWait:
		cb.wait = true
		cb.retransmit = true
	case StateLockout:
		cb.lockout = true
	}
}

func (cb *ControlBlock) HelperSteps(t *testing.T, rx *fakeRx, steps []FrameStep) {
	t.Helper()
	for i, step := range steps {
		rx.full = step.RxFull
		got := cb.Accept(step.Seq, step.Bypass, step.Ctrl, step.Cmd)
		if got != step.WantResult {
			t.Fatalf("step %d: want result %s, got %s", i, step.WantResult, got)
		}
		if cb.state != step.WantState {
			t.Fatalf("step %d: want state %s, got %s", i, step.WantState, cb.state)
		}
		if cb.vr != step.WantVR {
			t.Fatalf("step %d: want V(R)=%d, got %d", i, step.WantVR, cb.vr)
		}
		if f := cb.helperFlags(); f != step.WantFlags {
			t.Fatalf("step %d: want flags %+v, got %+v", i, step.WantFlags, f)
		}
	}
}
