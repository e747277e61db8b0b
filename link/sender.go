package link

import (
	"log/slog"
	"sync"
	"time"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/clcw"
	"github.com/soypat/cop1/fop"
	"github.com/soypat/cop1/seqs"
	"github.com/soypat/cop1/tc"
)

// SenderConfig configures the sending end of a virtual channel.
type SenderConfig struct {
	Frame tc.Config
	FOP   fop.Config
	// TxQueueSize is the number of frames that can await the physical channel.
	// Defaults to 256.
	TxQueueSize int
	// Notify, if set, receives the notifications raised by timer expiry.
	// It is called with the channel lock held and must not call Sender methods.
	Notify func(cop1.Notification)
	Logger *slog.Logger
}

// Sender is the sending end of a COP-1 virtual channel. It owns the FOP-1
// state machine, its queues and retransmission timer, and splits SDUs into
// transfer frames. Sender is safe for concurrent use.
type Sender struct {
	mu     sync.Mutex
	fop    fop.ControlBlock
	wait   WaitQueue
	sent   SentQueue
	tx     TxQueue
	timer  Timer
	packer *tc.Packer
	segAD  tc.Segmenter
	segBD  tc.Segmenter
	key    Key
	notify func(cop1.Notification)
	logger
}

// Configure resets the sender to the FOP Initial state. A running
// retransmission timer is stopped and every queue is purged.
func (s *Sender) Configure(cfg SenderConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	packer, err := tc.NewPacker(cfg.Frame)
	if err != nil {
		return err
	}
	txSize := cfg.TxQueueSize
	if txSize <= 0 {
		txSize = 256
	}
	if err = cfg.FOP.Validate(); err != nil {
		return err
	}
	// Reset fields individually, the mutex must not be copied.
	s.packer = nil
	s.key = Key{SCID: cfg.Frame.SCID, VCID: cfg.Frame.VCID}
	s.notify = cfg.Notify
	s.logger = logger{log: cfg.Logger}
	s.wait.reset()
	s.sent.reset(sentQueueSize)
	s.tx.reset(txSize)
	s.segAD.Reset(&cfg.Frame)
	s.segBD.Reset(&cfg.Frame)
	s.timer.bind(&s.mu, s.onTimerExpired)
	err = s.fop.Configure(fop.Collaborators{
		Wait:   &s.wait,
		Sent:   &s.sent,
		Tx:     &s.tx,
		Timer:  &s.timer,
		Packer: packer,
	}, cfg.FOP)
	if err != nil {
		return err
	}
	// A non-nil packer marks the sender as configured.
	s.packer = packer
	return nil
}

// onTimerExpired runs with s.mu held.
func (s *Sender) onTimerExpired() {
	n := s.fop.HandleTimerExpired()
	s.checkAlert(n)
	s.logNotification("link:timer-expired", n)
	if s.notify != nil {
		s.notify(n)
	}
}

// Key returns the spacecraft and virtual channel identifiers of the sender.
func (s *Sender) Key() Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Send requests the sequence-controlled transfer of sdu over the AD service,
// segmenting it as needed. A temporary [*NotificationError] is returned when
// part of the SDU could not be handed to FOP yet because the sliding window is
// full; the same sdu must be passed again later to continue from where it stopped.
// A nil error means every segment was accepted by FOP, though the last one
// may still wait for window space before transmission.
func (s *Sender) Send(sdu []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.packer == nil {
		return errNotConfigured
	} else if len(sdu) == 0 {
		return errEmptySDU
	}
	if !s.wait.Empty() || s.tx.Full() {
		return &NotificationError{Op: "send", Notification: cop1.DelayResp}
	}
	n := s.segAD.Transfer(sdu, cop1.TypeA, s.fop.RequestTransfer)
	s.trace("link:send", slog.Int("len", len(sdu)), slog.String("notif", n.String()), slog.Int("off", s.segAD.Offset()))
	switch {
	case n == cop1.AcceptTx:
		return nil
	case n == cop1.DelayResp && !s.segAD.InProgress():
		return nil
	}
	return &NotificationError{Op: "send", Notification: n}
}

// SendExpedited transfers sdu over the BD service, bypassing the sequence
// control of FOP and the acceptance checks of FARM.
func (s *Sender) SendExpedited(sdu []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.packer == nil {
		return errNotConfigured
	} else if len(sdu) == 0 {
		return errEmptySDU
	}
	n := s.segBD.Transfer(sdu, cop1.TypeB, s.fop.RequestTransfer)
	if n != cop1.AcceptTx {
		return &NotificationError{Op: "send-expedited", Notification: n}
	}
	return nil
}

// SendPending returns true while an SDU passed to [Sender.Send] has segments
// that were not handed to FOP yet.
func (s *Sender) SendPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.segAD.InProgress()
}

// NextFrame pops the next frame awaiting transmission. Taking a frame counts
// as its acceptance by the lower layer, which may release further frames.
// The returned frame must not be modified.
func (s *Sender) NextFrame() (TxFrame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.tx.Pop()
	if !ok {
		return f, false
	}
	n := s.lowerAccept(f.Service)
	s.trace("link:next-frame", slog.String("svc", f.Service.String()), slog.Int("len", len(f.Frame)), slog.String("notif", n.String()))
	return f, true
}

// lowerAccept feeds the acceptance of a frame of service svc back to FOP.
// A control command retransmission that cannot be queued alerts.
func (s *Sender) lowerAccept(svc cop1.Service) cop1.Notification {
	var n cop1.Notification
	switch svc {
	case cop1.ServiceAD:
		n = s.fop.ADAccept()
	case cop1.ServiceBC:
		n = s.fop.BCAccept()
	case cop1.ServiceBD:
		n = s.fop.BDAccept()
	}
	s.checkAlert(n)
	if n.IsAlert() {
		s.logNotification("link:lower-layer-accept", n)
	}
	return n
}

// Reject reports that the lower layer could not accept a frame of service svc.
// FOP alerts with ALERT_LLIF.
func (s *Sender) Reject(svc cop1.Service) cop1.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.packer == nil {
		return cop1.Ignore
	}
	var n cop1.Notification
	switch svc {
	case cop1.ServiceAD:
		n = s.fop.ADReject()
	case cop1.ServiceBC:
		n = s.fop.BCReject()
	case cop1.ServiceBD:
		n = s.fop.BDReject()
	default:
		return cop1.UndefError
	}
	s.checkAlert(n)
	s.logNotification("link:lower-layer-reject", n)
	return n
}

// HandleCLCW processes a CLCW received for this virtual channel.
func (s *Sender) HandleCLCW(r clcw.Report) cop1.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.packer == nil {
		return cop1.Ignore
	}
	n := s.fop.HandleCLCW(r)
	s.checkAlert(n)
	s.trace("link:clcw", slog.Uint64("nr", uint64(r.Value)), slog.String("notif", n.String()))
	if n.IsAlert() || n == cop1.Suspend {
		s.logNotification("link:clcw", n)
	}
	return n
}

// HandleCLCWWord decodes and processes a raw 4 octet CLCW.
func (s *Sender) HandleCLCWWord(word []byte) (cop1.Notification, error) {
	r, err := clcw.Parse(word)
	if err != nil {
		return cop1.Ignore, err
	}
	if r.VCID != s.Key().VCID {
		return cop1.Ignore, errVCIDMismatch
	}
	return s.HandleCLCW(r), nil
}

// Directives.

func (s *Sender) InitiateNoCLCW() cop1.Notification {
	return s.directive("init", (*fop.ControlBlock).InitiateNoCLCW)
}

func (s *Sender) InitiateWithCLCW() cop1.Notification {
	return s.directive("init-clcw", (*fop.ControlBlock).InitiateWithCLCW)
}

func (s *Sender) InitiateWithUnlock() cop1.Notification {
	return s.directive("init-unlock", (*fop.ControlBlock).InitiateWithUnlock)
}

func (s *Sender) InitiateWithSetVR(vr seqs.Value) cop1.Notification {
	return s.directive("init-setvr", func(cb *fop.ControlBlock) cop1.Notification { return cb.InitiateWithSetVR(vr) })
}

// TerminateAD aborts the AD service. Any SDU segmentation in progress and
// frames not yet taken by [Sender.NextFrame] are discarded.
func (s *Sender) TerminateAD() cop1.Notification {
	return s.directive("terminate", func(cb *fop.ControlBlock) cop1.Notification {
		n := cb.TerminateAD()
		if n == cop1.PositiveDir {
			s.purge(n)
		}
		return n
	})
}

func (s *Sender) ResumeAD() cop1.Notification {
	return s.directive("resume", (*fop.ControlBlock).ResumeAD)
}

func (s *Sender) SetVS(vs seqs.Value) cop1.Notification {
	return s.directive("setvs", func(cb *fop.ControlBlock) cop1.Notification { return cb.SetVS(vs) })
}

func (s *Sender) SetSlidingWindow(k seqs.Size) cop1.Notification {
	return s.directive("window", func(cb *fop.ControlBlock) cop1.Notification { return cb.SetSlidingWindow(k) })
}

func (s *Sender) SetT1(t1 time.Duration) cop1.Notification {
	return s.directive("t1", func(cb *fop.ControlBlock) cop1.Notification { return cb.SetT1(t1) })
}

func (s *Sender) SetTxLimit(limit uint8) cop1.Notification {
	return s.directive("txlimit", func(cb *fop.ControlBlock) cop1.Notification { return cb.SetTxLimit(limit) })
}

func (s *Sender) SetTimeoutType(tt fop.TimeoutType) cop1.Notification {
	return s.directive("timeout-type", func(cb *fop.ControlBlock) cop1.Notification { return cb.SetTimeoutType(tt) })
}

func (s *Sender) directive(name string, fn func(*fop.ControlBlock) cop1.Notification) cop1.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.packer == nil {
		return cop1.RejectDir
	}
	n := fn(&s.fop)
	s.checkAlert(n)
	s.debug("link:directive", slog.String("dir", name), slog.String("notif", n.String()), slog.String("state", s.fop.State().String()))
	return n
}

// SenderStatus is a snapshot of the state of a sending virtual channel.
type SenderStatus struct {
	Key          Key
	State        fop.State
	VS, NNR      seqs.Value
	Outstanding  seqs.Size
	Window       seqs.Size
	TxCount      uint8
	TxLimit      uint8
	SuspendState uint8
	Signal       cop1.Notification
	TimerRunning bool
	// PendingTx is the number of frames awaiting the physical channel.
	PendingTx int
}

// Status returns a snapshot of the sender state.
func (s *Sender) Status() SenderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SenderStatus{
		Key:          s.key,
		State:        s.fop.State(),
		VS:           s.fop.VS(),
		NNR:          s.fop.NNR(),
		Outstanding:  s.fop.Outstanding(),
		Window:       s.fop.SlidingWindow(),
		TxCount:      s.fop.TxCount(),
		TxLimit:      s.fop.TxLimit(),
		SuspendState: s.fop.SuspendState(),
		Signal:       s.fop.Signal(),
		TimerRunning: s.timer.Running(),
		PendingTx:    s.tx.Len(),
	}
}

// checkAlert discards the link state belonging to an aborted AD service
// when FOP purged its queues.
func (s *Sender) checkAlert(n cop1.Notification) {
	if n.IsAlert() {
		s.purge(n)
	}
}

// purge drops the segmentation in progress and the frames awaiting the
// physical channel. Frames of a dead session must not reach the receiver
// after the next initiation.
func (s *Sender) purge(n cop1.Notification) {
	pending := s.tx.Len()
	s.tx.Cancel()
	inProgress := s.segAD.InProgress()
	s.segAD.Abort()
	s.segBD.Abort()
	if pending > 0 || inProgress {
		s.debug("link:purge", slog.String("notif", n.String()),
			slog.Int("frames", pending), slog.Bool("segmenting", inProgress))
	}
}

func (s *Sender) logNotification(msg string, n cop1.Notification) {
	lvl := slog.LevelDebug
	if n.IsAlert() || n == cop1.Suspend || n == cop1.UndefError {
		lvl = slog.LevelWarn
	}
	if !s.logenabled(lvl) {
		return
	}
	s.logattrs(lvl, msg,
		slog.Uint64("scid", uint64(s.key.SCID)),
		slog.Uint64("vcid", uint64(s.key.VCID)),
		slog.String("notif", n.String()),
		slog.String("state", s.fop.State().String()),
	)
}
