package tc

import (
	"slices"

	"github.com/soypat/cop1"
)

// Segmenter splits service data units into frame data units that fit the frame
// data field of a channel. A segmentation process that FOP pauses with
// DELAY_RESP is resumed by passing the same SDU again.
type Segmenter struct {
	maxData int
	mapid   uint8
	segHdr  bool
	// offset is the number of octets of the current SDU already handed to FOP.
	offset     int
	inProgress bool
}

// Reset configures the segmenter for the channel and discards any segmentation in progress.
func (s *Segmenter) Reset(cfg *Config) {
	*s = Segmenter{
		maxData: cfg.MaxDataLen,
		mapid:   cfg.MAPID,
		segHdr:  cfg.SegmentHeader,
	}
}

// InProgress returns true if part of an SDU was handed over and the rest awaits resubmission.
func (s *Segmenter) InProgress() bool { return s.inProgress }

// Offset returns the number of octets of the current SDU already handed over.
func (s *Segmenter) Offset() int { return s.offset }

// Abort discards the segmentation in progress.
func (s *Segmenter) Abort() {
	s.offset = 0
	s.inProgress = false
}

// Transfer hands the unsent part of sdu to request one frame data unit at a time.
// It returns [cop1.AcceptTx] once the whole SDU was accepted. [cop1.DelayResp] means
// the last unit handed over is waiting for window space; if [Segmenter.InProgress]
// is then true the same sdu must be passed again later to continue.
// Any other notification ends the segmentation process and is returned as is.
func (s *Segmenter) Transfer(sdu []byte, bypass cop1.BypassType, request func(cop1.FDU) cop1.Notification) cop1.Notification {
	if len(sdu) == 0 || s.maxData <= 0 || (!s.segHdr && len(sdu) > s.maxData) || s.offset > len(sdu) {
		s.Abort()
		return cop1.RejectTx
	}
	for s.offset < len(sdu) {
		remaining := len(sdu) - s.offset
		n := min(remaining, s.maxData)
		var flag cop1.SeqFlag
		switch {
		case !s.inProgress && remaining <= s.maxData:
			flag = cop1.SeqUnseg
		case !s.inProgress:
			flag = cop1.SeqFirst
		case remaining > s.maxData:
			flag = cop1.SeqCont
		default:
			flag = cop1.SeqLast
		}
		fdu := cop1.FDU{
			Bypass: bypass,
			Ctrl:   cop1.ControlData,
			Flag:   flag,
			MAPID:  s.mapid,
			Data:   sdu[s.offset : s.offset+n],
		}
		notif := request(fdu)
		switch notif {
		case cop1.AcceptTx, cop1.Ignore:
			s.advance(n, len(sdu))
		case cop1.DelayResp:
			s.advance(n, len(sdu))
			return notif
		default:
			s.Abort()
			return notif
		}
	}
	return cop1.AcceptTx
}

func (s *Segmenter) advance(n, total int) {
	s.offset += n
	if s.offset >= total {
		s.Abort()
	} else {
		s.inProgress = true
	}
}

// Reassembler rebuilds service data units from the frame data of accepted frames
// using the sequence flags of the segment header.
type Reassembler struct {
	buf    []byte
	open   bool
	maxSDU int
}

// Reset configures the reassembler and closes the reassembly loop.
func (r *Reassembler) Reset(cfg *Config) {
	r.maxSDU = cfg.MaxSDULen
	r.Abort()
}

// Open returns true while a segmented SDU is being reassembled.
func (r *Reassembler) Open() bool { return r.open }

// Buffered returns the number of octets of the SDU being reassembled.
func (r *Reassembler) Buffered() int { return len(r.buf) }

// Abort closes the reassembly loop discarding buffered data.
func (r *Reassembler) Abort() {
	r.buf = nil
	r.open = false
}

// Put adds the frame data of one accepted frame. Channels with no segment header
// pass [cop1.SeqUnseg]. When an SDU completes it is returned; the caller owns
// the returned slice. A nil SDU with nil error means more segments are expected.
func (r *Reassembler) Put(flag cop1.SeqFlag, data []byte) (sdu []byte, err error) {
	switch flag {
	case cop1.SeqUnseg:
		r.Abort()
		if len(data) > r.maxSDU {
			return nil, errSDUTooLong
		}
		return slices.Clone(data), nil

	case cop1.SeqFirst:
		if r.open {
			r.Abort()
			return nil, errLoopOpen
		}
		if len(data) > r.maxSDU {
			return nil, errSDUTooLong
		}
		r.buf = append(make([]byte, 0, r.maxSDU), data...)
		r.open = true
		return nil, nil
	}
	// Continuation and last segments.
	if !r.open {
		return nil, errLoopClosed
	}
	if len(r.buf)+len(data) > r.maxSDU {
		r.Abort()
		return nil, errSDUTooLong
	}
	r.buf = append(r.buf, data...)
	if flag == cop1.SeqLast {
		sdu = r.buf
		r.buf = nil
		r.open = false
	}
	return sdu, nil
}
