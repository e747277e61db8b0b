package farm

import "errors"

//go:generate stringer -type=State,Event -linecomment -output stringers.go .

var (
	errNilRxQueue  = errors.New("farm: nil receive queue")
	errWindowRange = errors.New("farm: window width must be in 2..254")
	errVCIDRange   = errors.New("farm: VCID must be in 0..63")
)

// State enumerates the states of FARM-1.
type State uint8

const (
	StateOpen    State = iota // OPEN
	StateWait                 // WAIT
	StateLockout              // LOCKOUT
)

// Event enumerates the FARM-1 events raised by a received transfer frame.
type Event uint8

const (
	// Type-A frame with N(S) == V(R) and room in the receive queue.
	E1 Event = iota + 1 // E1
	// Type-A frame with N(S) == V(R) and no room in the receive queue.
	E2 // E2
	// Type-A frame inside the positive window.
	E3 // E3
	// Type-A frame inside the negative window.
	E4 // E4
	// Type-A frame outside the acceptance window.
	E5 // E5
	// Type-B data frame.
	E6 // E6
	// Type-B Unlock control command.
	E7 // E7
	// Type-B Set V(R) control command.
	E8 // E8
	// Frame that is neither of the above.
	E9 // E9
)
