// Package link ties FOP-1 and FARM-1 to concrete queues, timers and transfer
// frame codecs, producing the sending and receiving ends of COP-1 virtual
// channels that are safe for concurrent use.
package link

import (
	"errors"

	"github.com/soypat/cop1"
)

var (
	errNoReceiver    = errors.New("link: no receiver registered for frame")
	errNoSender      = errors.New("link: no sender registered for CLCW")
	errDuplicateVC   = errors.New("link: virtual channel already registered")
	errNotConfigured = errors.New("link: virtual channel not configured")
	errVCIDMismatch  = errors.New("link: CLCW reports another virtual channel")
	errEmptySDU      = errors.New("link: empty SDU")
	errLossRange     = errors.New("link: loss probability must be in [0,1)")
)

// NotificationError is returned when a COP-1 procedure did not accept a request.
// Use [errors.As] to retrieve the notification.
type NotificationError struct {
	Op           string
	Notification cop1.Notification
}

func (e *NotificationError) Error() string {
	return "link: " + e.Op + ": " + e.Notification.String()
}

// Temporary returns true if the request may be retried later, as is the case
// when the sliding window is full.
func (e *NotificationError) Temporary() bool {
	return e.Notification == cop1.DelayResp
}

// Key identifies a virtual channel.
type Key struct {
	SCID uint16
	VCID uint8
}

func (k Key) less(other Key) bool {
	if k.SCID != other.SCID {
		return k.SCID < other.SCID
	}
	return k.VCID < other.VCID
}
