package link

import (
	"slices"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/fop"
	"github.com/soypat/cop1/internal"
)

// sentQueueSize fits the largest sliding window plus one control command frame.
const sentQueueSize = 255

// WaitQueue holds the single Type-A frame data unit waiting for room in the
// FOP sliding window.
type WaitQueue struct {
	q internal.Queue[cop1.FDU]
}

func (w *WaitQueue) reset() { w.q.Reset(1) }

// Push queues fdu. The frame data is copied.
func (w *WaitQueue) Push(fdu cop1.FDU) error {
	fdu.Data = slices.Clone(fdu.Data)
	if !w.q.Push(fdu) {
		return cop1.ErrQueueFull
	}
	return nil
}

func (w *WaitQueue) Pop() (cop1.FDU, bool) { return w.q.Pop() }
func (w *WaitQueue) Empty() bool           { return w.q.Empty() }
func (w *WaitQueue) Clear()                { w.q.Clear() }

// SentQueue holds copies of transmitted frames until they are acknowledged.
type SentQueue struct {
	q internal.Queue[fop.QueueItem]
}

func (s *SentQueue) reset(capacity int) { s.q.Reset(capacity) }

func (s *SentQueue) Push(item fop.QueueItem) error {
	if !s.q.Push(item) {
		return cop1.ErrQueueFull
	}
	return nil
}

func (s *SentQueue) Pop() (fop.QueueItem, bool)  { return s.q.Pop() }
func (s *SentQueue) Peek() (fop.QueueItem, bool) { return s.q.Peek() }
func (s *SentQueue) Len() int                    { return s.q.Len() }
func (s *SentQueue) Clear()                      { s.q.Clear() }

// FirstRetransmit returns the oldest item of type typ flagged for retransmission.
func (s *SentQueue) FirstRetransmit(typ cop1.BypassType) *fop.QueueItem {
	for i := 0; i < s.q.Len(); i++ {
		item := s.q.At(i)
		if item.Type == typ && item.Retransmit {
			return item
		}
	}
	return nil
}

// MarkRetransmit flags every Type-A frame for retransmission, or for TypeB
// only the head frame if it is a control command.
func (s *SentQueue) MarkRetransmit(typ cop1.BypassType) {
	if typ == cop1.TypeB {
		if s.q.Len() > 0 && s.q.At(0).Type == cop1.TypeB {
			s.q.At(0).Retransmit = true
		}
		return
	}
	for i := 0; i < s.q.Len(); i++ {
		item := s.q.At(i)
		if item.Type == cop1.TypeA {
			item.Retransmit = true
		}
	}
}

// TxFrame is a transfer frame ready to be handed to the physical channel.
type TxFrame struct {
	Service cop1.Service
	// Frame is shared with the sent queue and must not be modified.
	Frame []byte
}

// TxQueue holds frames FOP released for transmission.
type TxQueue struct {
	q internal.Queue[TxFrame]
}

func (t *TxQueue) reset(capacity int) { t.q.Reset(capacity) }

func (t *TxQueue) Push(svc cop1.Service, frame []byte) error {
	if !t.q.Push(TxFrame{Service: svc, Frame: frame}) {
		return cop1.ErrQueueFull
	}
	return nil
}

// Cancel purges frames not yet taken by the physical channel.
func (t *TxQueue) Cancel()              { t.q.Clear() }
func (t *TxQueue) Pop() (TxFrame, bool) { return t.q.Pop() }
func (t *TxQueue) Len() int             { return t.q.Len() }
func (t *TxQueue) Full() bool           { return t.q.Full() }

// RxQueue holds reassembled SDUs until read by the user.
type RxQueue struct {
	q internal.Queue[[]byte]
}

func (r *RxQueue) reset(capacity int) { r.q.Reset(capacity) }

// Full returns true if no more SDUs can be delivered. FARM enters the Wait
// state on receiving a frame while the queue is full.
func (r *RxQueue) Full() bool { return r.q.Full() }
func (r *RxQueue) Len() int   { return r.q.Len() }

func (r *RxQueue) push(sdu []byte, priority bool) error {
	var ok bool
	if priority {
		ok = r.q.PushFront(sdu)
	} else {
		ok = r.q.Push(sdu)
	}
	if !ok {
		return cop1.ErrQueueFull
	}
	return nil
}

func (r *RxQueue) pop() ([]byte, bool) { return r.q.Pop() }
