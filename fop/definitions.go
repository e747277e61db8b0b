package fop

import (
	"errors"
	"time"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/seqs"
)

//go:generate stringer -type=State,Event,TimeoutType -linecomment -output stringers.go .

var (
	errMissingCollaborator = errors.New("fop: missing queue, timer or packer")
	errWindowRange         = errors.New("fop: sliding window must be in 1..254")
	errTxLimit             = errors.New("fop: transmission limit must be at least 1")
	errTimeoutType         = errors.New("fop: invalid timeout type")
	errNegativeT1          = errors.New("fop: negative timer initial value")
)

// State enumerates the states of FOP-1.
type State uint8

const (
	StateActive    State = iota // ACTIVE
	StateRtNoWait               // RT_NO_WAIT
	StateRtWait                 // RT_WAIT
	StateInitNoBC               // INIT_NO_BC
	StateInitBC                 // INIT_BC
	StateInit                   // INIT
)

// isInitialising returns true for the two states that wait for the
// outcome of an initiate directive.
func (s State) isInitialising() bool { return s == StateInitNoBC || s == StateInitBC }

// suspendCode returns the suspend state marker SS recorded when suspending from s.
// It returns 0 for states that cannot be suspended.
func (s State) suspendCode() uint8 {
	switch s {
	case StateActive:
		return 1
	case StateRtNoWait:
		return 2
	case StateRtWait:
		return 3
	case StateInitNoBC:
		return 4
	}
	return 0
}

// TimeoutType selects the FOP reaction to a timer expiry once the
// transmission limit is reached.
type TimeoutType uint8

const (
	TimeoutAlert   TimeoutType = iota // alert
	TimeoutSuspend                    // suspend
)

// Event enumerates the FOP-1 events. Events E1 through E14 and E101 through E103
// are raised by CLCW reports, E16, E104, E17 and E18 by timer expiry and the rest
// by user requests, management directives and lower layer responses.
type Event uint8

const (
	evUndefined Event = iota // undefined
	// CLCW: all frames acknowledged, no retransmit, no wait, N(R)=NN(R).
	E1 // E1
	// CLCW: all frames acknowledged, no retransmit, no wait, N(R)≠NN(R).
	E2 // E2
	// CLCW: all frames acknowledged, no retransmit, wait.
	E3 // E3
	// CLCW: all frames acknowledged, retransmit.
	E4 // E4
	// CLCW: some frames outstanding, no retransmit, no wait, N(R)=NN(R).
	E5 // E5
	// CLCW: some frames outstanding, no retransmit, no wait, N(R)≠NN(R).
	E6 // E6
	// CLCW: some frames outstanding, no retransmit, wait.
	E7 // E7
	// CLCW: retransmit, transmission limit 1, N(R)≠NN(R).
	E101 // E101
	// CLCW: retransmit, transmission limit 1, N(R)=NN(R).
	E102 // E102
	// CLCW: retransmit, N(R)≠NN(R), no wait.
	E8 // E8
	// CLCW: retransmit, N(R)≠NN(R), wait.
	E9 // E9
	// CLCW: retransmit, N(R)=NN(R), transmission count below limit, no wait.
	E10 // E10
	// CLCW: retransmit, N(R)=NN(R), transmission count below limit, wait.
	E11 // E11
	// CLCW: retransmit, N(R)=NN(R), transmission limit reached, no wait.
	E12 // E12
	// CLCW: retransmit, N(R)=NN(R), transmission limit reached, wait.
	E103 // E103
	// CLCW: N(R) outside of [NN(R), V(S)].
	E13 // E13
	// CLCW: lockout.
	E14 // E14
	// Timer expired, transmission count below limit, alert on timeout.
	E16 // E16
	// Timer expired, transmission count below limit, suspend on timeout.
	E104 // E104
	// Timer expired, transmission limit reached, alert on timeout.
	E17 // E17
	// Timer expired, transmission limit reached, suspend on timeout.
	E18 // E18
	// AD request with empty wait queue.
	E19 // E19
	// AD request with full wait queue.
	E20 // E20
	// BD request.
	E21 // E21
	// Request that is neither AD nor BD.
	E22 // E22
	E23 // E23
	E24 // E24
	E25 // E25
	E27 // E27
	E29 // E29
	E30 // E30
	E35 // E35
	E36 // E36
	E37 // E37
	E38 // E38
	E39 // E39
	E41 // E41
	E42 // E42
	E43 // E43
	E44 // E44
	E45 // E45
	E46 // E46
)

// QueueItem is a packed transfer frame held in the sent queue until acknowledged.
type QueueItem struct {
	Frame      []byte
	Type       cop1.BypassType
	Seq        seqs.Value
	Retransmit bool
}

// WaitQueue holds the single AD frame data unit waiting for room in the sliding window.
type WaitQueue interface {
	Push(fdu cop1.FDU) error
	Pop() (cop1.FDU, bool)
	Empty() bool
	Clear()
}

// SentQueue holds transmitted frames that have not been acknowledged yet, oldest first.
type SentQueue interface {
	Push(item QueueItem) error
	Pop() (QueueItem, bool)
	Peek() (QueueItem, bool)
	Len() int
	Clear()
	// FirstRetransmit returns the oldest item of type typ flagged for
	// retransmission or nil if there is none. Callers may reset the flag
	// through the returned pointer.
	FirstRetransmit(typ cop1.BypassType) *QueueItem
	// MarkRetransmit flags every Type-A item for retransmission when typ is
	// TypeA, or only the head item when typ is TypeB and the head is Type-B.
	MarkRetransmit(typ cop1.BypassType)
}

// TxQueue accepts frames for the physical channel. The outcome of frames taken
// off the queue is reported back through the ControlBlock's accept and reject methods.
type TxQueue interface {
	Push(svc cop1.Service, frame []byte) error
	// Cancel purges frames not yet taken by the physical channel.
	Cancel()
}

// Timer is the single shot retransmission timer of a virtual channel.
// Start while running reschedules the timer. Cancel is idempotent.
type Timer interface {
	Start(d time.Duration) error
	Cancel() error
}

// Packer builds a transfer frame for fdu with frame sequence number seq
// appending it to dst.
type Packer interface {
	Pack(dst []byte, fdu *cop1.FDU, seq seqs.Value) ([]byte, error)
}

// Collaborators is the capability set FOP drives while processing events.
type Collaborators struct {
	Wait   WaitQueue
	Sent   SentQueue
	Tx     TxQueue
	Timer  Timer
	Packer Packer
}

func (c *Collaborators) complete() bool {
	return c.Wait != nil && c.Sent != nil && c.Tx != nil && c.Timer != nil && c.Packer != nil
}
