package fop

import (
	"log/slog"
	"time"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/seqs"
)

// RequestTransfer accepts a frame data unit for transfer. AD units are queued
// and sent when the sliding window allows, BD units are sent immediately in
// any state. A DELAY_RESP result means the unit was queued but could not be
// sent yet; the next unit must not be requested until the wait queue is empty.
func (cb *ControlBlock) RequestTransfer(fdu cop1.FDU) cop1.Notification {
	switch fdu.Service() {
	case cop1.ServiceAD:
		if !cb.wait.Empty() {
			cb.traceEvent("fop:request", E20)
			return cb.notify(cop1.RejectTx)
		}
		cb.traceEvent("fop:request", E19)
		switch cb.state {
		case StateActive, StateRtNoWait:
			err := cb.wait.Push(fdu)
			if err != nil {
				return cb.undef("fop:wait-push", err)
			}
			n := cb.lookForFDU()
			if n == cop1.Ignore {
				// Unit waits behind a retransmission.
				n = cop1.DelayResp
			}
			return cb.notify(n)
		case StateRtWait:
			err := cb.wait.Push(fdu)
			if err != nil {
				return cb.undef("fop:wait-push", err)
			}
			return cb.notify(cop1.DelayResp)
		}
		return cb.notify(cop1.RejectTx)

	case cop1.ServiceBD:
		cb.traceEvent("fop:request", E21)
		return cb.transmitBD(&fdu)
	}
	cb.traceEvent("fop:request", E22)
	return cb.notify(cop1.RejectTx)
}

// InitiateNoCLCW starts AD service without waiting for a CLCW.
func (cb *ControlBlock) InitiateNoCLCW() cop1.Notification {
	cb.traceEvent("fop:directive", E23)
	if cb.state != StateInit {
		return cb.notify(cop1.RejectDir)
	}
	cb.initialize()
	cb.state = StateActive
	return cb.notify(cop1.PositiveDir)
}

// InitiateWithCLCW starts AD service once a CLCW confirming V(S)=N(R) is received.
func (cb *ControlBlock) InitiateWithCLCW() cop1.Notification {
	cb.traceEvent("fop:directive", E24)
	if cb.state != StateInit {
		return cb.notify(cop1.RejectDir)
	}
	cb.initialize()
	err := cb.timer.Start(cb.t1)
	if err != nil {
		return cb.undef("fop:timer", err)
	}
	cb.state = StateInitNoBC
	return cb.notify(cop1.AcceptDir)
}

// InitiateWithUnlock starts AD service by sending an Unlock control command.
func (cb *ControlBlock) InitiateWithUnlock() cop1.Notification {
	cb.traceEvent("fop:directive", E25)
	if cb.state != StateInit {
		return cop1.RejectDir
	}
	cb.initialize()
	err := cb.transmitBC(cop1.UnlockCommand())
	if err != nil {
		return cb.undef("fop:transmit-bc", err)
	}
	cb.state = StateInitBC
	return cb.notify(cop1.AcceptDir)
}

// InitiateWithSetVR starts AD service by sending a Set V(R) control command so
// that both V(S) and the receiver's V(R) equal vr.
func (cb *ControlBlock) InitiateWithSetVR(vr seqs.Value) cop1.Notification {
	cb.traceEvent("fop:directive", E27)
	if cb.state != StateInit {
		return cop1.RejectDir
	}
	cb.initialize()
	cb.vs = vr
	cb.nnr = vr
	err := cb.transmitBC(cop1.SetVRCommand(uint8(vr)))
	if err != nil {
		return cb.undef("fop:transmit-bc", err)
	}
	cb.state = StateInitBC
	return cb.notify(cop1.AcceptDir)
}

// TerminateAD aborts AD service. It is confirmed in every state.
func (cb *ControlBlock) TerminateAD() cop1.Notification {
	cb.traceEvent("fop:directive", E29)
	if cb.state == StateInit {
		return cb.notify(cop1.PositiveDir)
	}
	if n := cb.alert(cop1.AlertTerm); n == cop1.UndefError {
		return n
	}
	return cb.notify(cop1.PositiveDir)
}

// ResumeAD resumes AD service suspended by a timer expiry.
func (cb *ControlBlock) ResumeAD() cop1.Notification {
	cb.traceEvent("fop:directive", E30)
	var next State
	switch cb.ss {
	case 0:
		return cop1.RejectDir
	case 1:
		next = StateActive
	case 2:
		next = StateRtNoWait
	case 3:
		next = StateRtWait
	case 4:
		next = StateInitNoBC
	default:
		return cb.notify(cop1.UndefError)
	}
	if cb.state != StateInit {
		return cop1.NA
	}
	err := cb.resume()
	if err != nil {
		return cb.undef("fop:timer", err)
	}
	cb.state = next
	return cb.notify(cop1.PositiveDir)
}

// SetVS sets V(S) and NN(R). Only allowed while AD service is not running
// and not suspended.
func (cb *ControlBlock) SetVS(vs seqs.Value) cop1.Notification {
	cb.traceEvent("fop:directive", E35)
	if cb.state != StateInit || cb.ss != 0 {
		return cop1.RejectDir
	}
	cb.vs = vs
	cb.nnr = vs
	return cb.notify(cop1.PositiveDir)
}

// SetSlidingWindow sets the FOP sliding window width K.
func (cb *ControlBlock) SetSlidingWindow(k seqs.Size) cop1.Notification {
	cb.traceEvent("fop:directive", E36)
	if k < 1 || k > 254 {
		return cop1.RejectDir
	}
	cb.slideWnd = k
	cb.debug("fop:set", slog.Uint64("window", uint64(k)))
	return cb.notify(cop1.PositiveDir)
}

// SetT1 sets the initial value of the retransmission timer. The new value
// is used the next time the timer is started.
func (cb *ControlBlock) SetT1(t1 time.Duration) cop1.Notification {
	cb.traceEvent("fop:directive", E37)
	if t1 < 0 {
		return cop1.RejectDir
	}
	cb.t1 = t1
	cb.debug("fop:set", slog.Duration("t1", t1))
	return cb.notify(cop1.PositiveDir)
}

// SetTxLimit sets the maximum number of transmissions of a frame.
func (cb *ControlBlock) SetTxLimit(limit uint8) cop1.Notification {
	cb.traceEvent("fop:directive", E38)
	if limit < 1 {
		return cop1.RejectDir
	}
	cb.txLim = limit
	cb.debug("fop:set", slog.Uint64("txlim", uint64(limit)))
	return cb.notify(cop1.PositiveDir)
}

// SetTimeoutType sets the reaction to timer expiry at the transmission limit.
func (cb *ControlBlock) SetTimeoutType(tt TimeoutType) cop1.Notification {
	cb.traceEvent("fop:directive", E39)
	if tt > TimeoutSuspend {
		return cop1.RejectDir
	}
	cb.tt = tt
	cb.debug("fop:set", slog.String("tt", tt.String()))
	return cb.notify(cop1.PositiveDir)
}

// ADAccept reports that the lower layer accepted an AD frame.
func (cb *ControlBlock) ADAccept() cop1.Notification {
	cb.traceEvent("fop:lower", E41)
	switch cb.state {
	case StateActive, StateRtNoWait:
		return cb.notifyOrSignal(cb.lookForFDU())
	}
	return cop1.Ignore
}

// ADReject reports that the lower layer rejected an AD frame.
func (cb *ControlBlock) ADReject() cop1.Notification {
	cb.traceEvent("fop:lower", E42)
	return cb.alert(cop1.AlertLLIF)
}

// BCAccept reports that the lower layer accepted a BC frame.
func (cb *ControlBlock) BCAccept() cop1.Notification {
	cb.traceEvent("fop:lower", E43)
	if cb.state == StateInitBC {
		return cb.notifyOrSignal(cb.lookForDirective())
	}
	return cop1.Ignore
}

// BCReject reports that the lower layer rejected a BC frame.
func (cb *ControlBlock) BCReject() cop1.Notification {
	cb.traceEvent("fop:lower", E44)
	return cb.alert(cop1.AlertLLIF)
}

// BDAccept reports that the lower layer accepted a BD frame.
func (cb *ControlBlock) BDAccept() cop1.Notification {
	cb.traceEvent("fop:lower", E45)
	return cb.notify(cop1.AcceptTx)
}

// BDReject reports that the lower layer rejected a BD frame.
func (cb *ControlBlock) BDReject() cop1.Notification {
	cb.traceEvent("fop:lower", E46)
	return cb.alert(cop1.AlertLLIF)
}
