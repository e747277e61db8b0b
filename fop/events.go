package fop

import (
	"github.com/soypat/cop1"
	"github.com/soypat/cop1/clcw"
)

// HandleCLCW processes a CLCW report received for the virtual channel.
func (cb *ControlBlock) HandleCLCW(r clcw.Report) cop1.Notification {
	ev := cb.Classify(r)
	cb.traceEvent("fop:clcw", ev)
	return cb.clcwTransition(ev, r)
}

// HandleTimerExpired processes expiry of the retransmission timer.
func (cb *ControlBlock) HandleTimerExpired() cop1.Notification {
	ev := classifyTimer(cb.txCnt, cb.txLim, cb.tt)
	cb.traceEvent("fop:timer", ev)
	return cb.timerTransition(ev)
}

func (cb *ControlBlock) clcwTransition(ev Event, r clcw.Report) cop1.Notification {
	st := cb.state
	if st == StateInit {
		// No CLCW event has an effect in the Initial state.
		return cop1.Ignore
	}
	switch ev {
	case E1:
		switch st {
		case StateActive:
			return cop1.Ignore
		case StateRtNoWait, StateRtWait:
			return cb.alert(cop1.AlertSynch)
		case StateInitBC:
			cb.releaseCopyOfBC()
			fallthrough
		case StateInitNoBC:
			err := cb.timer.Cancel()
			if err != nil {
				return cb.undef("fop:timer", err)
			}
			cb.state = StateActive
			return cb.notify(cop1.PositiveDir)
		}

	case E2:
		if st.isInitialising() {
			return cop1.NA
		}
		cb.removeAckedFrames(r.Value)
		err := cb.timer.Cancel()
		if err != nil {
			return cb.undef("fop:timer", err)
		}
		cb.state = StateActive
		return cb.notifyOrSignal(cb.lookForFDU())

	case E3:
		return cb.alert(cop1.AlertCLCW)

	case E4:
		if st == StateInitBC {
			return cop1.Ignore
		}
		return cb.alert(cop1.AlertSynch)

	case E5:
		switch st {
		case StateActive:
			return cop1.Ignore
		case StateRtNoWait, StateRtWait:
			return cb.alert(cop1.AlertSynch)
		}
		return cop1.NA

	case E6:
		if st.isInitialising() {
			return cop1.NA
		}
		cb.removeAckedFrames(r.Value)
		cb.state = StateActive
		return cb.notifyOrSignal(cb.lookForFDU())

	case E7:
		if st.isInitialising() {
			return cop1.NA
		}
		return cb.alert(cop1.AlertCLCW)

	case E101:
		if st.isInitialising() {
			return cop1.NA
		}
		cb.removeAckedFrames(r.Value)
		return cb.alert(cop1.AlertLimit)

	case E102:
		if st.isInitialising() {
			return cop1.NA
		}
		return cb.alert(cop1.AlertLimit)

	case E8:
		if st.isInitialising() {
			return cop1.NA
		}
		cb.removeAckedFrames(r.Value)
		err := cb.initiateADRetransmission()
		if err != nil {
			return cb.undef("fop:timer", err)
		}
		cb.state = StateRtNoWait
		return cb.notifyOrSignal(cb.lookForFDU())

	case E9:
		if st.isInitialising() {
			return cop1.NA
		}
		cb.removeAckedFrames(r.Value)
		cb.state = StateRtWait
		return cop1.Ignore

	case E10:
		switch st {
		case StateRtNoWait:
			return cop1.Ignore
		case StateActive, StateRtWait:
			err := cb.initiateADRetransmission()
			if err != nil {
				return cb.undef("fop:timer", err)
			}
			cb.state = StateRtNoWait
			return cb.notifyOrSignal(cb.lookForFDU())
		}
		return cop1.NA

	case E11:
		if st == StateActive || st == StateRtNoWait {
			cb.state = StateRtWait
		}
		return cop1.Ignore

	case E12:
		switch st {
		case StateActive, StateRtWait:
			cb.state = StateRtNoWait
			return cop1.Ignore
		case StateRtNoWait:
			return cop1.Ignore
		}
		return cop1.NA

	case E103:
		switch st {
		case StateActive, StateRtNoWait:
			cb.state = StateRtWait
			return cop1.Ignore
		case StateRtWait:
			return cop1.Ignore
		}
		return cop1.NA

	case E13:
		if st == StateInitBC {
			return cop1.Ignore
		}
		return cb.alert(cop1.AlertNNR)

	case E14:
		if st == StateInitBC {
			return cop1.Ignore
		}
		return cb.alert(cop1.AlertLockout)
	}
	return cb.notify(cop1.UndefError)
}

func (cb *ControlBlock) timerTransition(ev Event) cop1.Notification {
	st := cb.state
	if st == StateInit {
		return cop1.NA
	}
	switch ev {
	case E16, E104:
		switch st {
		case StateActive, StateRtNoWait:
			err := cb.initiateADRetransmission()
			if err != nil {
				return cb.undef("fop:timer", err)
			}
			return cb.notifyOrSignal(cb.lookForFDU())
		case StateRtWait:
			return cop1.Ignore
		case StateInitNoBC:
			if ev == E104 {
				return cb.suspend()
			}
			return cb.alert(cop1.AlertT1)
		case StateInitBC:
			err := cb.initiateBCRetransmission()
			if err != nil {
				return cb.undef("fop:timer", err)
			}
			return cb.notifyOrSignal(cb.lookForDirective())
		}

	case E17:
		return cb.alert(cop1.AlertT1)

	case E18:
		if st == StateInitBC {
			return cb.alert(cop1.AlertT1)
		}
		return cb.suspend()
	}
	return cb.notify(cop1.UndefError)
}
