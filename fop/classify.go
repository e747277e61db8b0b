package fop

import (
	"github.com/soypat/cop1/clcw"
	"github.com/soypat/cop1/seqs"
)

// ClassifyCLCW returns the event raised by CLCW report r given the sender's
// V(S), NN(R), transmission count and transmission limit.
// The report value N(R) is valid when it lies in [NN(R), V(S)], which is
// tested modulo 256.
func ClassifyCLCW(r clcw.Report, vs, nnr seqs.Value, txCnt, txLim uint8) Event {
	nr := r.Value
	progress := nr != nnr
	switch {
	case r.Lockout:
		return E14

	case nr == vs:
		switch {
		case r.Retransmit:
			return E4
		case r.Wait:
			return E3
		case progress:
			return E2
		}
		return E1

	case seqs.InRange(nr, nnr, vs):
		switch {
		case !r.Retransmit && r.Wait:
			return E7
		case !r.Retransmit && progress:
			return E6
		case !r.Retransmit:
			return E5
		case txLim == 1 && progress:
			return E101
		case txLim == 1:
			return E102
		case progress && !r.Wait:
			return E8
		case progress:
			return E9
		case txCnt < txLim && !r.Wait:
			return E10
		case txCnt < txLim:
			return E11
		case !r.Wait:
			return E12
		}
		return E103
	}
	return E13
}

// classifyTimer returns the event raised by expiry of the retransmission timer.
func classifyTimer(txCnt, txLim uint8, tt TimeoutType) Event {
	below := txCnt < txLim
	switch {
	case below && tt == TimeoutAlert:
		return E16
	case below:
		return E104
	case tt == TimeoutAlert:
		return E17
	}
	return E18
}

// Classify returns the event a CLCW report raises in the current FOP state
// without processing it.
func (cb *ControlBlock) Classify(r clcw.Report) Event {
	return ClassifyCLCW(r, cb.vs, cb.nnr, cb.txCnt, cb.txLim)
}
