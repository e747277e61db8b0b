package farm

import (
	"testing"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/seqs"
)

func TestClassifyTypeA(t *testing.T) {
	for _, w := range []seqs.Size{2, 10, 64, 254} {
		for _, vr := range []seqs.Value{0, 1, 127, 200, 255} {
			var rx fakeRx
			var cb ControlBlock
			cb.HelperInitState(t, &rx, StateOpen, vr, w)
			_, pw, nw := cb.Window()
			var counts [E9 + 1]int
			for s := 0; s < 256; s++ {
				seq := seqs.Value(s)
				ev := cb.Classify(seq, cop1.TypeA, cop1.ControlData, nil)
				if ev < E1 || ev > E5 {
					t.Fatalf("w=%d vr=%d seq=%d: Type-A frame classified as %s", w, vr, seq, ev)
				}
				counts[ev]++

				// Accept on a copy so every frame sees the same starting V(R).
				cp := cb
				res := cp.Accept(seq, cop1.TypeA, cop1.ControlData, nil)
				advanced := cp.vr != vr
				if advanced != (ev == E1) {
					t.Fatalf("w=%d vr=%d seq=%d ev=%s: V(R) advanced=%v", w, vr, seq, ev, advanced)
				}
				if ev == E1 && (res != cop1.FarmEnqueue || cp.vr != vr+1) {
					t.Fatalf("w=%d vr=%d: E1 result %s vr=%d", w, vr, res, cp.vr)
				} else if ev != E1 && res != cop1.FarmDiscard {
					t.Fatalf("w=%d vr=%d seq=%d: %s result %s", w, vr, seq, ev, res)
				}
			}
			if counts[E1] != 1 || counts[E3] != int(pw)-1 || counts[E4] != int(nw) ||
				counts[E5] != 256-1-(int(pw)-1)-int(nw) {
				t.Fatalf("w=%d vr=%d: bad event partition %v", w, vr, counts[1:6])
			}
		}
	}
}

func TestReceiveQueueFull(t *testing.T) {
	var rx fakeRx
	var cb ControlBlock
	cb.HelperInitState(t, &rx, StateOpen, 5, 10)
	cb.HelperSteps(t, &rx, []FrameStep{
		{
			Seq: 5, Bypass: cop1.TypeA, RxFull: true,
			WantResult: cop1.FarmDiscard, WantState: StateWait, WantVR: 5,
			WantFlags: flags{wait: true, retransmit: true},
		},
		{ // Still no room.
			Seq: 5, Bypass: cop1.TypeA, RxFull: true,
			WantResult: cop1.FarmDiscard, WantState: StateWait, WantVR: 5,
			WantFlags: flags{wait: true, retransmit: true},
		},
	})
	cb.BufferRelease()
	rx.full = false
	if cb.State() != StateOpen || cb.Wait() || !cb.Retransmit() {
		t.Fatalf("after buffer release: state=%s wait=%v rt=%v", cb.State(), cb.Wait(), cb.Retransmit())
	}
	cb.HelperSteps(t, &rx, []FrameStep{
		{
			Seq: 5, Bypass: cop1.TypeA,
			WantResult: cop1.FarmEnqueue, WantState: StateOpen, WantVR: 6,
		},
	})
}

func TestSequence(t *testing.T) {
	var rx fakeRx
	var cb ControlBlock
	cb.HelperInitState(t, &rx, StateOpen, 254, 10)
	cb.HelperSteps(t, &rx, []FrameStep{
		{Seq: 254, WantResult: cop1.FarmEnqueue, WantState: StateOpen, WantVR: 255},
		{Seq: 255, WantResult: cop1.FarmEnqueue, WantState: StateOpen, WantVR: 0},
		// Frame 1 lost, frame 2 arrives inside positive window.
		{Seq: 2, WantResult: cop1.FarmDiscard, WantState: StateOpen, WantVR: 0, WantFlags: flags{retransmit: true}},
		// Duplicate of an already accepted frame.
		{Seq: 255, WantResult: cop1.FarmDiscard, WantState: StateOpen, WantVR: 0, WantFlags: flags{retransmit: true}},
		{Seq: 0, WantResult: cop1.FarmEnqueue, WantState: StateOpen, WantVR: 1},
		// Far outside both windows.
		{Seq: 100, WantResult: cop1.FarmDiscard, WantState: StateLockout, WantVR: 1, WantFlags: flags{lockout: true}},
		{Seq: 1, WantResult: cop1.FarmDiscard, WantState: StateLockout, WantVR: 1, WantFlags: flags{lockout: true}},
	})
}

func TestTypeB(t *testing.T) {
	unlock := cop1.UnlockCommand()
	setvr := cop1.SetVRCommand(42)
	var tests = []struct {
		name  string
		state State
		step  FrameStep
	}{
		{
			name: "unlock open", state: StateOpen,
			step: FrameStep{Bypass: cop1.TypeB, Ctrl: cop1.ControlCommand, Cmd: unlock,
				WantResult: cop1.FarmOK, WantState: StateOpen, WantVR: 10},
		},
		{
			name: "unlock wait", state: StateWait,
			step: FrameStep{Bypass: cop1.TypeB, Ctrl: cop1.ControlCommand, Cmd: unlock,
				WantResult: cop1.FarmOK, WantState: StateOpen, WantVR: 10},
		},
		{
			name: "unlock lockout", state: StateLockout,
			step: FrameStep{Bypass: cop1.TypeB, Ctrl: cop1.ControlCommand, Cmd: unlock,
				WantResult: cop1.FarmOK, WantState: StateOpen, WantVR: 10},
		},
		{
			name: "setvr open", state: StateOpen,
			step: FrameStep{Bypass: cop1.TypeB, Ctrl: cop1.ControlCommand, Cmd: setvr,
				WantResult: cop1.FarmOK, WantState: StateOpen, WantVR: 42},
		},
		{
			name: "setvr wait", state: StateWait,
			step: FrameStep{Bypass: cop1.TypeB, Ctrl: cop1.ControlCommand, Cmd: setvr,
				WantResult: cop1.FarmOK, WantState: StateOpen, WantVR: 42},
		},
		{
			name: "setvr lockout", state: StateLockout,
			step: FrameStep{Bypass: cop1.TypeB, Ctrl: cop1.ControlCommand, Cmd: setvr,
				WantResult: cop1.FarmOK, WantState: StateLockout, WantVR: 10, WantFlags: flags{lockout: true}},
		},
		{
			name: "data lockout", state: StateLockout,
			step: FrameStep{Bypass: cop1.TypeB, Ctrl: cop1.ControlData, Cmd: setvr,
				WantResult: cop1.FarmPriorityEnq, WantState: StateLockout, WantVR: 10, WantFlags: flags{lockout: true}},
		},
		{
			name: "bad command", state: StateOpen,
			step: FrameStep{Bypass: cop1.TypeB, Ctrl: cop1.ControlCommand, Cmd: []byte{0x82, 1, 0},
				WantResult: cop1.FarmError, WantState: StateOpen, WantVR: 10},
		},
		{
			name: "typeA command", state: StateOpen,
			step: FrameStep{Seq: 10, Bypass: cop1.TypeA, Ctrl: cop1.ControlCommand,
				WantResult: cop1.FarmDiscard, WantState: StateOpen, WantVR: 10},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var rx fakeRx
			var cb ControlBlock
			cb.HelperInitState(t, &rx, tc.state, 10, 10)
			before := cb.FarmB()
			cb.HelperSteps(t, &rx, []FrameStep{tc.step})
			wantCount := before
			if tc.step.WantResult == cop1.FarmOK || tc.step.WantResult == cop1.FarmPriorityEnq {
				wantCount = (before + 1) % 4
			}
			if cb.FarmB() != wantCount {
				t.Errorf("FARM-B counter %d, want %d", cb.FarmB(), wantCount)
			}
		})
	}
}

func TestFarmBCounterWraps(t *testing.T) {
	var rx fakeRx
	var cb ControlBlock
	cb.HelperInitState(t, &rx, StateOpen, 0, 10)
	for i := 0; i < 9; i++ {
		if res := cb.Accept(0, cop1.TypeB, cop1.ControlData, nil); res != cop1.FarmPriorityEnq {
			t.Fatalf("BD frame: %s", res)
		}
		if cb.FarmB() != uint8(i+1)%4 {
			t.Fatalf("after %d BD frames counter is %d", i+1, cb.FarmB())
		}
	}
}

func TestReport(t *testing.T) {
	var rx fakeRx
	var cb ControlBlock
	err := cb.Configure(&rx, Config{Width: 10, VCID: 7})
	if err != nil {
		t.Fatal(err)
	}
	cb.Accept(0, cop1.TypeA, cop1.ControlData, nil)
	cb.Accept(3, cop1.TypeA, cop1.ControlData, nil)
	r := cb.Report()
	if r.COPInEffect != 1 || r.VCID != 7 || r.Value != 1 || !r.Retransmit || r.Wait || r.Lockout {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestConfigure(t *testing.T) {
	var rx fakeRx
	var cb ControlBlock
	if err := cb.Configure(nil, Config{Width: 10}); err == nil {
		t.Error("expected error on nil queue")
	}
	if err := cb.Configure(&rx, Config{Width: 1}); err == nil {
		t.Error("expected error on window 1")
	}
	if err := cb.Configure(&rx, Config{Width: 255}); err == nil {
		t.Error("expected error on window 255")
	}
	if err := cb.Configure(&rx, Config{Width: 10, VCID: 64}); err == nil {
		t.Error("expected error on VCID 64")
	}
}
