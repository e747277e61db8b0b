package link

import (
	"log/slog"
	"sync"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/clcw"
	"github.com/soypat/cop1/farm"
	"github.com/soypat/cop1/seqs"
	"github.com/soypat/cop1/tc"
)

// ReceiverConfig configures the receiving end of a virtual channel.
type ReceiverConfig struct {
	Frame tc.Config
	// Width is the FARM sliding window width. Defaults to 254.
	Width uint8
	// RxQueueSize is the number of reassembled SDUs held until read. Defaults to 16.
	RxQueueSize int
	// ValidateFlags are applied to the frame validation checks.
	ValidateFlags cop1.ValidateFlags
	Logger        *slog.Logger
}

// Receiver is the receiving end of a COP-1 virtual channel. It runs the
// frame validation checks, FARM-1 and SDU reassembly on received frames.
// Receiver is safe for concurrent use.
type Receiver struct {
	mu    sync.Mutex
	farm  farm.ControlBlock
	reasm tc.Reassembler
	rx    RxQueue
	cfg   tc.Config
	vld   cop1.Validator
	key   Key
	// configured is set after a successful call to Configure.
	configured bool
	logger
}

// Configure resets the receiver to the FARM Open state with V(R)=0.
func (r *Receiver) Configure(cfg ReceiverConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := cfg.Frame.Validate()
	if err != nil {
		return err
	}
	width := cfg.Width
	if width == 0 {
		width = 254
	}
	rxSize := cfg.RxQueueSize
	if rxSize <= 0 {
		rxSize = 16
	}
	r.rx.reset(rxSize)
	err = r.farm.Configure(&r.rx, farm.Config{
		Width:  seqs.Size(width),
		VCID:   cfg.Frame.VCID,
		Logger: cfg.Logger,
	})
	if err != nil {
		return err
	}
	r.cfg = cfg.Frame
	r.key = Key{SCID: cfg.Frame.SCID, VCID: cfg.Frame.VCID}
	r.vld = *cop1.NewValidator(cfg.ValidateFlags)
	r.reasm.Reset(&r.cfg)
	r.logger = logger{log: cfg.Logger}
	r.configured = true
	return nil
}

// Key returns the spacecraft and virtual channel identifiers of the receiver.
func (r *Receiver) Key() Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.key
}

// Recv processes a received transfer frame: delimiting, frame validation,
// FARM-1 and reassembly. Complete SDUs are queued for [Receiver.ReadSDU].
// A non-nil error is returned for frames failing validation and for
// reassembly faults; FARM verdicts are returned as values.
func (r *Receiver) Recv(frame []byte) (cop1.FarmResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.configured {
		return cop1.FarmDiscard, errNotConfigured
	}
	frm, err := tc.Delimit(frame)
	if err != nil {
		return cop1.FarmDiscard, err
	}
	r.vld.ResetErr()
	frm.Validate(&r.vld, &r.cfg)
	if r.vld.HasError() {
		err = r.vld.Err()
		r.debug("link:rx-invalid", slog.String("err", err.Error()))
		return cop1.FarmDiscard, err
	}
	data := frm.Data(&r.cfg)
	flag := cop1.SeqUnseg
	if r.cfg.SegmentHeader {
		flag, _ = frm.SegmentHeader()
	}
	res := r.farm.Accept(frm.Seq(), frm.Bypass(), frm.ControlCommand(), data)
	r.trace("link:rx",
		slog.Uint64("seq", uint64(frm.Seq())),
		slog.String("type", frm.Bypass().String()),
		slog.String("res", res.String()),
		slog.Uint64("vr", uint64(r.farm.VR())),
	)
	switch {
	case res == cop1.FarmError:
		r.reasm.Abort()
		return res, nil
	case res == cop1.FarmOK && frm.ControlCommand() == cop1.ControlCommand:
		// Unlock and Set V(R) restart the sequenced stream.
		if r.reasm.Open() {
			r.reasm.Abort()
			r.debug("link:reassembly-reset", slog.Uint64("vr", uint64(r.farm.VR())))
		}
		return res, nil
	case !res.Accepted():
		return res, nil
	}
	sdu, err := r.reasm.Put(flag, data)
	if err != nil {
		r.debug("link:reassembly", slog.String("err", err.Error()))
		return res, err
	} else if sdu == nil {
		return res, nil // Segment buffered.
	}
	err = r.rx.push(sdu, res == cop1.FarmPriorityEnq)
	if err != nil {
		r.logerr("link:rx-queue", slog.String("err", err.Error()))
	}
	return res, err
}

// ReadSDU pops the oldest SDU in the receive queue. Reading does not release
// the FARM Wait state, see [Receiver.BufferRelease].
func (r *Receiver) ReadSDU() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sdu, ok := r.rx.pop()
	if !ok {
		return nil, cop1.ErrQueueEmpty
	}
	return sdu, nil
}

// Buffered returns the number of SDUs awaiting [Receiver.ReadSDU].
func (r *Receiver) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rx.Len()
}

// BufferRelease signals FARM that the receive queue has room again.
func (r *Receiver) BufferRelease() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.configured && !r.rx.Full() {
		r.farm.BufferRelease()
	}
}

// Report returns the CLCW content describing the FARM state.
func (r *Receiver) Report() clcw.Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.farm.Report()
}

// CLCW appends the encoded 4 octet CLCW of the channel to dst.
func (r *Receiver) CLCW(dst []byte) []byte {
	return clcw.Append(dst, r.Report())
}

// State returns the FARM-1 state of the channel.
func (r *Receiver) State() farm.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.farm.State()
}
