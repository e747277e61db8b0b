// Package fop implements FOP-1, the Frame Operation Procedure that runs on the
// sending end of a COP-1 virtual channel.
package fop

import (
	"log/slog"
	"time"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/seqs"
)

// Config holds the managed parameters of FOP-1.
type Config struct {
	// SlidingWindow is the FOP sliding window width K, the maximum number of
	// unacknowledged Type-A frames.
	SlidingWindow seqs.Size
	// T1 is the initial value of the retransmission timer.
	T1 time.Duration
	// TxLimit is the maximum number of transmissions of a frame, first included.
	TxLimit     uint8
	TimeoutType TimeoutType
	Logger      *slog.Logger
}

// Validate checks the configuration parameter ranges.
func (cfg *Config) Validate() error {
	switch {
	case cfg.SlidingWindow < 1 || cfg.SlidingWindow > 254:
		return errWindowRange
	case cfg.TxLimit < 1:
		return errTxLimit
	case cfg.TimeoutType > TimeoutSuspend:
		return errTimeoutType
	case cfg.T1 < 0:
		return errNegativeT1
	}
	return nil
}

// ControlBlock holds the state of FOP-1 for a single virtual channel and
// drives the queues and timer of the channel in response to events.
// A ControlBlock is not safe for concurrent use: every method processes
// one event to completion and callers must serialize calls.
//
// The Type-A sequence number space:
//
//	     1          2          3
//	----------|----------|----------
//	        NN(R)       V(S)   NN(R)+K
//	1. acknowledged frames
//	2. sent frames awaiting acknowledgement, held in the sent queue
//	3. sequence numbers that may be used for new frames
type ControlBlock struct {
	state    State
	vs       seqs.Value
	nnr      seqs.Value
	slideWnd seqs.Size
	txLim    uint8
	txCnt    uint8
	tt       TimeoutType
	t1       time.Duration
	ss       uint8
	signal   cop1.Notification

	wait   WaitQueue
	sent   SentQueue
	tx     TxQueue
	timer  Timer
	packer Packer
	logger
}

// Configure resets FOP to the Initial state with V(S)=NN(R)=0 using the
// given collaborators and parameters.
func (cb *ControlBlock) Configure(c Collaborators, cfg Config) error {
	if !c.complete() {
		return errMissingCollaborator
	}
	err := cfg.Validate()
	if err != nil {
		return err
	}
	*cb = ControlBlock{
		state:    StateInit,
		slideWnd: cfg.SlidingWindow,
		txLim:    cfg.TxLimit,
		tt:       cfg.TimeoutType,
		t1:       cfg.T1,
		signal:   cop1.Ignore,
		wait:     c.Wait,
		sent:     c.Sent,
		tx:       c.Tx,
		timer:    c.Timer,
		packer:   c.Packer,
		logger:   logger{log: cfg.Logger},
	}
	return nil
}

// SetLogger sets the logger to be used by the ControlBlock.
func (cb *ControlBlock) SetLogger(log *slog.Logger) {
	cb.logger = logger{log: log}
}

// State returns the current FOP-1 state.
func (cb *ControlBlock) State() State { return cb.state }

// VS returns V(S), the sequence number the next new Type-A frame is sent with.
func (cb *ControlBlock) VS() seqs.Value { return cb.vs }

// NNR returns NN(R), the sequence number of the oldest unacknowledged Type-A frame.
func (cb *ControlBlock) NNR() seqs.Value { return cb.nnr }

// Outstanding returns the number of Type-A frames sent but not yet acknowledged.
func (cb *ControlBlock) Outstanding() seqs.Size { return seqs.Sizeof(cb.nnr, cb.vs) }

// SlidingWindow returns the FOP sliding window width K.
func (cb *ControlBlock) SlidingWindow() seqs.Size { return cb.slideWnd }

// TxLimit returns the maximum number of transmissions of a frame.
func (cb *ControlBlock) TxLimit() uint8 { return cb.txLim }

// TxCount returns the number of transmissions of the oldest outstanding frame.
func (cb *ControlBlock) TxCount() uint8 { return cb.txCnt }

// TimeoutType returns the configured reaction to timer expiry.
func (cb *ControlBlock) TimeoutType() TimeoutType { return cb.tt }

// T1 returns the initial value of the retransmission timer.
func (cb *ControlBlock) T1() time.Duration { return cb.t1 }

// SuspendState returns SS: 0 when not suspended, or 1 through 4 identifying
// the state FOP was suspended from (ACTIVE, RT_NO_WAIT, RT_WAIT, INIT_NO_BC).
func (cb *ControlBlock) SuspendState() uint8 { return cb.ss }

// Signal returns the last notification emitted.
func (cb *ControlBlock) Signal() cop1.Notification { return cb.signal }

// notify records n as the last emitted notification and returns it.
func (cb *ControlBlock) notify(n cop1.Notification) cop1.Notification {
	cb.signal = n
	return n
}

// notifyOrSignal is applied to the result of look for FDU and look for directive.
// An ignored result leaves the last notification in place.
func (cb *ControlBlock) notifyOrSignal(n cop1.Notification) cop1.Notification {
	if n == cop1.Ignore {
		return cb.signal
	}
	return cb.notify(n)
}

func (cb *ControlBlock) undef(msg string, err error) cop1.Notification {
	cb.logerr(msg, slog.String("state", cb.state.String()), slog.String("err", err.Error()))
	return cb.notify(cop1.UndefError)
}

// initialize purges both queues and resets the transmission count and suspend state.
func (cb *ControlBlock) initialize() {
	cb.wait.Clear()
	cb.sent.Clear()
	cb.txCnt = 1
	cb.ss = 0
}

// alert aborts AD service: the timer is canceled, both queues are purged and
// FOP returns to the Initial state. If the timer cannot be canceled nothing is
// modified and UNDEF_ERROR is returned.
func (cb *ControlBlock) alert(code cop1.Notification) cop1.Notification {
	err := cb.timer.Cancel()
	if err != nil {
		return cb.undef("fop:alert", err)
	}
	purged := cb.sent.Len()
	cb.wait.Clear()
	cb.sent.Clear()
	cb.state = StateInit
	cb.logattrs(slog.LevelWarn, "fop:alert",
		slog.String("alert", code.String()),
		slog.Int("negative_tx", purged),
		slog.Uint64("vs", uint64(cb.vs)),
		slog.Uint64("nnr", uint64(cb.nnr)),
	)
	return cb.notify(code)
}

// suspend records the current state in SS and moves to the Initial state
// without purging queues so that AD service may later be resumed.
func (cb *ControlBlock) suspend() cop1.Notification {
	cb.ss = cb.state.suspendCode()
	cb.state = StateInit
	cb.debug("fop:suspend", slog.Uint64("ss", uint64(cb.ss)))
	return cb.notify(cop1.Suspend)
}

// resume restarts the timer and clears the suspend state.
func (cb *ControlBlock) resume() error {
	err := cb.timer.Start(cb.t1)
	if err != nil {
		return err
	}
	cb.ss = 0
	return nil
}

// lookForFDU sends pending Type-A frames. A frame flagged for retransmission
// takes priority over new frames. New frames are only sent while V(S) lies in
// the window [NN(R), NN(R)+K) so the number of outstanding frames never exceeds K.
func (cb *ControlBlock) lookForFDU() cop1.Notification {
	if it := cb.sent.FirstRetransmit(cop1.TypeA); it != nil {
		it.Retransmit = false
		err := cb.tx.Push(cop1.ServiceAD, it.Frame)
		if err != nil {
			return cb.undef("fop:retransmit", err)
		}
		cb.trace("fop:retransmit", slog.Uint64("seq", uint64(it.Seq)))
		return cop1.Ignore
	}
	if cb.wait.Empty() {
		return cop1.Ignore
	}
	if !seqs.InWindow(cb.vs, cb.nnr, cb.slideWnd) {
		return cop1.DelayResp
	}
	return cb.transmitAD()
}

// transmitAD moves the waiting FDU to the sent queue with sequence number V(S).
func (cb *ControlBlock) transmitAD() cop1.Notification {
	fdu, ok := cb.wait.Pop()
	if !ok {
		return cb.notify(cop1.UndefError)
	}
	frame, err := cb.packer.Pack(nil, &fdu, cb.vs)
	if err != nil {
		return cb.undef("fop:pack-ad", err)
	}
	if cb.sent.Len() == 0 {
		cb.txCnt = 1
	}
	err = cb.timer.Start(cb.t1)
	if err != nil {
		return cb.undef("fop:timer", err)
	}
	err = cb.sent.Push(QueueItem{Frame: frame, Type: cop1.TypeA, Seq: cb.vs})
	if err != nil {
		return cb.undef("fop:sent-push", err)
	}
	cb.trace("fop:transmit-ad", slog.Uint64("seq", uint64(cb.vs)), slog.Int("len", len(frame)))
	cb.vs++
	err = cb.tx.Push(cop1.ServiceAD, frame)
	if err != nil {
		return cb.undef("fop:tx-push", err)
	}
	return cop1.AcceptTx
}

// transmitBC sends a control command frame and keeps a copy in the sent queue
// until the receiver reports it was executed.
func (cb *ControlBlock) transmitBC(cmd []byte) error {
	fdu := cop1.FDU{Bypass: cop1.TypeB, Ctrl: cop1.ControlCommand, Flag: cop1.SeqUnseg, Data: cmd}
	frame, err := cb.packer.Pack(nil, &fdu, 0)
	if err != nil {
		return err
	}
	cb.txCnt = 1
	err = cb.timer.Start(cb.t1)
	if err != nil {
		return err
	}
	err = cb.sent.Push(QueueItem{Frame: frame, Type: cop1.TypeB})
	if err != nil {
		return err
	}
	return cb.tx.Push(cop1.ServiceBC, frame)
}

// transmitBD sends an expedited data frame. BD frames are not retransmitted.
func (cb *ControlBlock) transmitBD(fdu *cop1.FDU) cop1.Notification {
	frame, err := cb.packer.Pack(nil, fdu, 0)
	if err != nil {
		cb.logerr("fop:pack-bd", slog.String("err", err.Error()))
		return cb.notify(cop1.RejectTx)
	}
	err = cb.tx.Push(cop1.ServiceBD, frame)
	if err != nil {
		cb.logerr("fop:tx-push-bd", slog.String("err", err.Error()))
		return cb.notify(cop1.RejectTx)
	}
	return cb.notify(cop1.AcceptTx)
}

// initiateADRetransmission flags every outstanding Type-A frame for retransmission.
func (cb *ControlBlock) initiateADRetransmission() error {
	err := cb.timer.Start(cb.t1)
	if err != nil {
		return err
	}
	cb.tx.Cancel()
	cb.txCnt++
	cb.sent.MarkRetransmit(cop1.TypeA)
	cb.debug("fop:ad-retransmission", slog.Uint64("txcnt", uint64(cb.txCnt)), slog.Uint64("nnr", uint64(cb.nnr)))
	return nil
}

// initiateBCRetransmission flags the outstanding control command frame for retransmission.
func (cb *ControlBlock) initiateBCRetransmission() error {
	err := cb.timer.Start(cb.t1)
	if err != nil {
		return err
	}
	cb.tx.Cancel()
	cb.txCnt++
	cb.sent.MarkRetransmit(cop1.TypeB)
	cb.debug("fop:bc-retransmission", slog.Uint64("txcnt", uint64(cb.txCnt)))
	return nil
}

// removeAckedFrames drops frames acknowledged by report value nr from the sent queue.
func (cb *ControlBlock) removeAckedFrames(nr seqs.Value) {
	removed := 0
	for removed <= int(cb.slideWnd) {
		head, ok := cb.sent.Peek()
		if !ok || (head.Type == cop1.TypeA && head.Seq == nr) {
			break
		}
		cb.sent.Pop()
		removed++
	}
	if removed > 0 {
		cb.nnr = nr
		cb.txCnt = 1
	}
	cb.trace("fop:acked", slog.Int("removed", removed), slog.Uint64("nnr", uint64(cb.nnr)))
}

// releaseCopyOfBC drops the control command frame at the head of the sent queue.
func (cb *ControlBlock) releaseCopyOfBC() {
	head, ok := cb.sent.Peek()
	if ok && head.Type == cop1.TypeB {
		cb.sent.Pop()
	}
}

// lookForDirective retransmits the control command frame if it is flagged for retransmission.
func (cb *ControlBlock) lookForDirective() cop1.Notification {
	if _, ok := cb.sent.Peek(); !ok {
		return cb.notify(cop1.UndefError)
	}
	it := cb.sent.FirstRetransmit(cop1.TypeB)
	if it == nil {
		return cop1.AcceptDir
	}
	it.Retransmit = false
	err := cb.tx.Push(cop1.ServiceBC, it.Frame)
	if err != nil {
		cb.logerr("fop:retransmit-bc", slog.String("err", err.Error()))
		return cb.BCReject()
	}
	return cop1.AcceptDir
}
