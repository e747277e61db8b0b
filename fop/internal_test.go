package fop

import (
	"errors"
	"testing"
	"time"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/clcw"
	"github.com/soypat/cop1/seqs"
)

// Here we define internal testing helpers that may be used in any *_test.go file
// but are not exported.

var errFake = errors.New("fake collaborator failure")

type fakeWait struct {
	fdus []cop1.FDU
}

func (w *fakeWait) Push(fdu cop1.FDU) error {
	if len(w.fdus) != 0 {
		return cop1.ErrQueueFull
	}
	w.fdus = append(w.fdus, fdu)
	return nil
}

func (w *fakeWait) Pop() (cop1.FDU, bool) {
	if len(w.fdus) == 0 {
		return cop1.FDU{}, false
	}
	fdu := w.fdus[0]
	w.fdus = w.fdus[:0]
	return fdu, true
}

func (w *fakeWait) Empty() bool { return len(w.fdus) == 0 }
func (w *fakeWait) Clear()      { w.fdus = w.fdus[:0] }

type fakeSent struct {
	items []QueueItem
}

func (s *fakeSent) Push(item QueueItem) error { s.items = append(s.items, item); return nil }

func (s *fakeSent) Pop() (QueueItem, bool) {
	if len(s.items) == 0 {
		return QueueItem{}, false
	}
	it := s.items[0]
	s.items = s.items[1:]
	return it, true
}

func (s *fakeSent) Peek() (QueueItem, bool) {
	if len(s.items) == 0 {
		return QueueItem{}, false
	}
	return s.items[0], true
}

func (s *fakeSent) Len() int { return len(s.items) }
func (s *fakeSent) Clear()   { s.items = nil }

func (s *fakeSent) FirstRetransmit(typ cop1.BypassType) *QueueItem {
	for i := range s.items {
		if s.items[i].Type == typ && s.items[i].Retransmit {
			return &s.items[i]
		}
	}
	return nil
}

func (s *fakeSent) MarkRetransmit(typ cop1.BypassType) {
	if typ == cop1.TypeB {
		if len(s.items) > 0 && s.items[0].Type == cop1.TypeB {
			s.items[0].Retransmit = true
		}
		return
	}
	for i := range s.items {
		if s.items[i].Type == cop1.TypeA {
			s.items[i].Retransmit = true
		}
	}
}

type txFrame struct {
	svc   cop1.Service
	frame []byte
}

type fakeTx struct {
	frames   []txFrame
	canceled int
	fail     bool
}

func (tx *fakeTx) Push(svc cop1.Service, frame []byte) error {
	if tx.fail {
		return errFake
	}
	tx.frames = append(tx.frames, txFrame{svc: svc, frame: frame})
	return nil
}

func (tx *fakeTx) Cancel() {
	tx.canceled++
	tx.frames = tx.frames[:0]
}

// take removes and returns all frames queued for transmission.
func (tx *fakeTx) take() []txFrame {
	f := tx.frames
	tx.frames = nil
	return f
}

type fakeTimer struct {
	running    bool
	starts     int
	lastD      time.Duration
	failStart  bool
	failCancel bool
}

func (t *fakeTimer) Start(d time.Duration) error {
	if t.failStart {
		return errFake
	}
	t.running = true
	t.starts++
	t.lastD = d
	return nil
}

func (t *fakeTimer) Cancel() error {
	if t.failCancel {
		return errFake
	}
	t.running = false
	return nil
}

// fakePacker packs frames as the sequence number followed by the data.
type fakePacker struct{}

func (fakePacker) Pack(dst []byte, fdu *cop1.FDU, seq seqs.Value) ([]byte, error) {
	dst = append(dst, uint8(seq))
	return append(dst, fdu.Data...), nil
}

type testFOP struct {
	ControlBlock
	wait  fakeWait
	sent  fakeSent
	tx    fakeTx
	timer fakeTimer
}

const testT1 = 2 * time.Second

func newTestFOP(t *testing.T, window seqs.Size, txLim uint8, tt TimeoutType) *testFOP {
	t.Helper()
	f := new(testFOP)
	err := f.Configure(Collaborators{
		Wait:   &f.wait,
		Sent:   &f.sent,
		Tx:     &f.tx,
		Timer:  &f.timer,
		Packer: fakePacker{},
	}, Config{SlidingWindow: window, T1: testT1, TxLimit: txLim, TimeoutType: tt})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func adFDU(data ...byte) cop1.FDU {
	return cop1.FDU{Bypass: cop1.TypeA, Ctrl: cop1.ControlData, Flag: cop1.SeqUnseg, Data: data}
}

func report(nr seqs.Value) clcw.Report {
	return clcw.Report{COPInEffect: 1, Value: nr}
}

func (f *testFOP) mustNotify(t *testing.T, got, want cop1.Notification) {
	t.Helper()
	if got != want {
		t.Fatalf("want notification %s, got %s (state=%s vs=%d nnr=%d)", want, got, f.state, f.vs, f.nnr)
	}
}

func (f *testFOP) mustState(t *testing.T, want State) {
	t.Helper()
	if f.state != want {
		t.Fatalf("want state %s, got %s", want, f.state)
	}
}

// HelperSend requests transfer of n AD frames and expects all of them sent.
func (f *testFOP) HelperSend(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		f.mustNotify(t, f.RequestTransfer(adFDU(byte(i))), cop1.AcceptTx)
	}
}

// HelperCheckWindow checks that the outstanding frames never exceed the sliding window
// and that the sent queue holds exactly the outstanding frames.
func (f *testFOP) HelperCheckWindow(t *testing.T) {
	t.Helper()
	out := f.Outstanding()
	if out > f.slideWnd {
		t.Fatalf("outstanding frames %d exceed window %d", out, f.slideWnd)
	}
	if f.state != StateInit && f.state != StateInitBC && f.sent.Len() != int(out) {
		t.Fatalf("sent queue holds %d frames, want %d", f.sent.Len(), out)
	}
	for i, it := range f.sent.items {
		if it.Type == cop1.TypeA && it.Seq != f.nnr+seqs.Value(i) {
			t.Fatalf("sent queue item %d has seq %d, want %d", i, it.Seq, f.nnr+seqs.Value(i))
		}
	}
}
