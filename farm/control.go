// Package farm implements FARM-1, the Frame Acceptance and Reporting Mechanism
// that runs on the receiving end of a COP-1 virtual channel.
package farm

import (
	"log/slog"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/clcw"
	"github.com/soypat/cop1/seqs"
)

// RxQueue is the receive queue FARM delivers accepted frame data to.
// FARM only needs to know whether there is room for one more item.
type RxQueue interface {
	Full() bool
}

// Config holds the parameters of a FARM-1 instance.
type Config struct {
	// Width is the FARM sliding window width W. The positive and negative
	// windows are each W/2 wide.
	Width seqs.Size
	// VCID is the virtual channel reported in outgoing CLCWs.
	VCID   uint8
	Logger *slog.Logger
}

// ControlBlock holds the state of FARM-1 for a single virtual channel.
// A ControlBlock is not safe for concurrent use.
//
// The expected frame sequence number space around V(R):
//
//	   negative window     |  positive window
//	----[vr-nw ... vr-1]--vr--[vr+1 ... vr+pw-1]----
//	         E4            E1/E2         E3           E5 elsewhere
type ControlBlock struct {
	state      State
	vr         seqs.Value
	lockout    bool
	wait       bool
	retransmit bool
	farmb      uint8
	w, pw, nw  seqs.Size
	vcid       uint8
	rx         RxQueue
	logger
}

// Configure resets FARM to the Open state with V(R)=0 and all flags cleared.
func (cb *ControlBlock) Configure(rx RxQueue, cfg Config) error {
	if rx == nil {
		return errNilRxQueue
	} else if cfg.Width < 2 || cfg.Width > 254 {
		return errWindowRange
	} else if cfg.VCID > 63 {
		return errVCIDRange
	}
	*cb = ControlBlock{
		state:  StateOpen,
		w:      cfg.Width,
		pw:     cfg.Width / 2,
		nw:     cfg.Width / 2,
		vcid:   cfg.VCID,
		rx:     rx,
		logger: logger{log: cfg.Logger},
	}
	return nil
}

// State returns the current FARM-1 state.
func (cb *ControlBlock) State() State { return cb.state }

// VR returns V(R), the sequence number of the next expected Type-A frame.
func (cb *ControlBlock) VR() seqs.Value { return cb.vr }

// Window returns the total, positive and negative window widths.
func (cb *ControlBlock) Window() (w, pw, nw seqs.Size) { return cb.w, cb.pw, cb.nw }

func (cb *ControlBlock) Lockout() bool    { return cb.lockout }
func (cb *ControlBlock) Wait() bool       { return cb.wait }
func (cb *ControlBlock) Retransmit() bool { return cb.retransmit }

// FarmB returns the 2 bit count of accepted Type-B frames.
func (cb *ControlBlock) FarmB() uint8 { return cb.farmb }

// Report returns the CLCW describing the current FARM state.
func (cb *ControlBlock) Report() clcw.Report {
	return clcw.Report{
		COPInEffect: 1,
		VCID:        cb.vcid,
		Lockout:     cb.lockout,
		Wait:        cb.wait,
		Retransmit:  cb.retransmit,
		FarmB:       cb.farmb,
		Value:       cb.vr,
	}
}

// BufferRelease signals FARM that the receive queue has room again.
// It clears the Wait flag, leaving the Wait state for Open. A locked out
// FARM stays locked out until an Unlock command is received.
func (cb *ControlBlock) BufferRelease() {
	if !cb.wait && cb.state != StateWait {
		return
	}
	cb.wait = false
	if cb.state == StateWait {
		cb.state = StateOpen
	}
	cb.debug("farm:buffer-release", slog.String("state", cb.state.String()))
}

// Classify returns the event a frame with the given header fields raises
// given the current FARM state. It does not modify the ControlBlock.
func (cb *ControlBlock) Classify(seq seqs.Value, bypass cop1.BypassType, ctrl cop1.ControlType, cmd []byte) Event {
	switch {
	case bypass == cop1.TypeA && ctrl == cop1.ControlData:
		switch seqs.Classify(seq, cb.vr, cb.pw, cb.nw) {
		case seqs.PosEqual:
			if cb.rx.Full() {
				return E2
			}
			return E1
		case seqs.PosPositive:
			return E3
		case seqs.PosNegative:
			return E4
		default:
			return E5
		}
	case bypass == cop1.TypeB && ctrl == cop1.ControlData:
		return E6
	case bypass == cop1.TypeB && ctrl == cop1.ControlCommand:
		if cop1.IsUnlockCommand(cmd) {
			return E7
		} else if _, ok := cop1.ParseSetVRCommand(cmd); ok {
			return E8
		}
	}
	return E9
}

// Accept runs FARM-1 on a received transfer frame with sequence number seq
// and returns whether its data must be delivered. cmd is the frame data
// field of Type-B control command frames and is ignored otherwise.
func (cb *ControlBlock) Accept(seq seqs.Value, bypass cop1.BypassType, ctrl cop1.ControlType, cmd []byte) cop1.FarmResult {
	ev := cb.Classify(seq, bypass, ctrl, cmd)
	cb.traceEvent("farm:accept", ev, uint8(seq))
	if bypass == cop1.TypeB && ctrl == cop1.ControlCommand && ev == E9 {
		// Unknown control command.
		return cop1.FarmError
	}
	return cb.transition(ev, cmd)
}

func (cb *ControlBlock) transition(ev Event, cmd []byte) cop1.FarmResult {
	switch ev {
	case E1:
		switch cb.state {
		case StateOpen:
			cb.vr++
			cb.retransmit = false
			return cop1.FarmEnqueue
		case StateWait:
			// Receive queue cannot have room while in Wait.
			return cop1.FarmError
		case StateLockout:
			return cop1.FarmDiscard
		}

	case E2:
		switch cb.state {
		case StateOpen:
			cb.retransmit = true
			cb.wait = true
			cb.state = StateWait
			return cop1.FarmDiscard
		case StateWait, StateLockout:
			return cop1.FarmDiscard
		}

	case E3:
		switch cb.state {
		case StateOpen:
			cb.retransmit = true
			return cop1.FarmDiscard
		case StateWait, StateLockout:
			return cop1.FarmDiscard
		}

	case E4:
		switch cb.state {
		case StateOpen, StateWait, StateLockout:
			return cop1.FarmDiscard
		}

	case E5:
		switch cb.state {
		case StateOpen, StateWait:
			cb.lockout = true
			cb.state = StateLockout
			cb.logattrs(slog.LevelWarn, "farm:lockout", slog.Uint64("vr", uint64(cb.vr)))
			return cop1.FarmDiscard
		case StateLockout:
			return cop1.FarmDiscard
		}

	case E6:
		cb.farmb = (cb.farmb + 1) % 4
		return cop1.FarmPriorityEnq

	case E7:
		cb.farmb = (cb.farmb + 1) % 4
		cb.retransmit = false
		switch cb.state {
		case StateOpen:
		case StateWait:
			cb.wait = false
			cb.state = StateOpen
		case StateLockout:
			cb.wait = false
			cb.lockout = false
			cb.state = StateOpen
		default:
			return cop1.FarmError
		}
		return cop1.FarmOK

	case E8:
		vr, _ := cop1.ParseSetVRCommand(cmd)
		cb.farmb = (cb.farmb + 1) % 4
		switch cb.state {
		case StateOpen:
			cb.retransmit = false
			cb.vr = seqs.Value(vr)
		case StateWait:
			cb.retransmit = false
			cb.wait = false
			cb.vr = seqs.Value(vr)
			cb.state = StateOpen
		case StateLockout:
			// V(R) is not modified while locked out.
		default:
			return cop1.FarmError
		}
		return cop1.FarmOK

	case E9:
		return cop1.FarmDiscard
	}
	return cop1.FarmError
}
