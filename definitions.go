package cop1

//go:generate stringer -type=Notification,FarmResult,BypassType,ControlType,SeqFlag -linecomment -output stringers.go .

// Notification is the outcome of processing a single COP-1 event. It is
// returned by every FOP operation and reported to the user of a sending
// virtual channel. The set is closed; values are stable and match the
// ordering used on the ground segment interface.
type Notification uint8

const (
	AcceptDir    Notification = iota // ACCEPT_DIR
	RejectDir                        // REJECT_DIR
	PositiveDir                      // POSITIVE_DIR
	NegativeDir                      // NEGATIVE_DIR
	Suspend                          // SUSPEND
	AlertLimit                       // ALERT_LIMIT
	AlertT1                          // ALERT_T1
	AlertLockout                     // ALERT_LOCKOUT
	AlertSynch                       // ALERT_SYNCH
	AlertNNR                         // ALERT_NNR
	AlertCLCW                        // ALERT_CLCW
	AlertLLIF                        // ALERT_LLIF
	AlertTerm                        // ALERT_TERM
	AcceptTx                         // ACCEPT_TX
	RejectTx                         // REJECT_TX
	PositiveTx                       // POSITIVE_TX
	NegativeTx                       // NEGATIVE_TX
	DelayResp                        // DELAY_RESP
	UndefError                       // UNDEF_ERROR
	Ignore                           // IGNORE
	NA                               // NA
)

// IsAlert returns true if the notification is one of the ALERT_* outcomes,
// all of which leave FOP in the initial state with both queues purged.
func (n Notification) IsAlert() bool { return n >= AlertLimit && n <= AlertTerm }

// FarmResult is the verdict of FARM on a single received transfer frame.
type FarmResult uint8

const (
	FarmOK          FarmResult = iota // OK
	FarmEnqueue                       // ENQ
	FarmPriorityEnq                   // PRIORITY_ENQ
	FarmDiscard                       // DISCARD
	FarmError                         // ERROR
)

// Accepted returns true if the frame data must be delivered to the receive queue.
func (r FarmResult) Accepted() bool { return r == FarmEnqueue || r == FarmPriorityEnq }

// BypassType is the value of the bypass flag in a TC transfer frame header.
type BypassType uint8

const (
	TypeA BypassType = iota // A
	TypeB                   // B
)

// ControlType is the value of the control command flag in a TC transfer frame header.
type ControlType uint8

const (
	ControlData    ControlType = iota // data
	ControlCommand                    // command
)

// SeqFlag is the 2-bit sequence flag of a TC segment header.
type SeqFlag uint8

const (
	SeqCont  SeqFlag = iota // continue
	SeqFirst                // first
	SeqLast                 // last
	SeqUnseg                // unsegmented
)

// FDU is a frame data unit handed to FOP for transfer over a virtual channel.
// Service is selected by Bypass and Ctrl: AD is (TypeA, ControlData),
// BD is (TypeB, ControlData) and BC is (TypeB, ControlCommand).
type FDU struct {
	Bypass BypassType
	Ctrl   ControlType
	// Flag and MAPID fill the segment header when the channel uses one.
	Flag  SeqFlag
	MAPID uint8
	Data  []byte
}

// Service returns the COP-1 service the FDU is transferred with.
func (fdu *FDU) Service() Service {
	switch {
	case fdu.Bypass == TypeA && fdu.Ctrl == ControlData:
		return ServiceAD
	case fdu.Bypass == TypeB && fdu.Ctrl == ControlData:
		return ServiceBD
	case fdu.Bypass == TypeB && fdu.Ctrl == ControlCommand:
		return ServiceBC
	}
	return ServiceUndefined
}

// Service identifies the three COP-1 transfer services.
type Service uint8

const (
	ServiceUndefined Service = iota
	ServiceAD                // sequence-controlled data
	ServiceBD                // expedited data
	ServiceBC                // control commands
)

func (s Service) String() string {
	switch s {
	case ServiceAD:
		return "AD"
	case ServiceBD:
		return "BD"
	case ServiceBC:
		return "BC"
	}
	return "undefined"
}

// Control command payloads carried by BC frames.
const (
	cmdUnlock   = 0x00
	cmdSetVR    = 0x82
	cmdSetVRArg = 0x00
)

// UnlockCommand returns the payload of an Unlock control command.
func UnlockCommand() []byte { return []byte{cmdUnlock} }

// SetVRCommand returns the payload of a Set V(R) control command.
func SetVRCommand(vr uint8) []byte { return []byte{cmdSetVR, cmdSetVRArg, vr} }

// IsUnlockCommand returns true if cmd is an Unlock control command payload.
func IsUnlockCommand(cmd []byte) bool { return len(cmd) >= 1 && cmd[0] == cmdUnlock }

// ParseSetVRCommand returns the V(R) value carried by a Set V(R) control command.
// ok is false if cmd is not a Set V(R) command.
func ParseSetVRCommand(cmd []byte) (vr uint8, ok bool) {
	if len(cmd) < 3 || cmd[0] != cmdSetVR || cmd[1] != cmdSetVRArg {
		return 0, false
	}
	return cmd[2], true
}
