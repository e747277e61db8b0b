package tc

import (
	"encoding/binary"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/seqs"
)

// NewFrame returns a new TC transfer frame with data set to buf.
// An error is returned if the buffer is shorter than the primary header.
// Users should still call [Frame.ValidateSize] before working
// with the data field of frames to avoid panics.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{buf: nil}, cop1.ErrShortBuffer
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of a TC transfer frame
// and provides methods for manipulating, validating and
// retrieving fields and data.
//
//	byte 0-1: version(2) bypass(1) control command(1) spare(2) SCID(10)
//	byte 2-3: VCID(6) frame length(10)
//	byte 4:   frame sequence number
//	byte 5:   sequence flags(2) MAP ID(6), when the channel uses a segment header
//	last 2:   frame error control field, when the channel uses one
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (frm Frame) RawData() []byte { return frm.buf }

// Version returns the transfer frame version number. Always 0 for TC.
func (frm Frame) Version() uint8 { return frm.buf[0] >> 6 }

// SetVersion sets the version number field. See [Frame.Version].
func (frm Frame) SetVersion(v uint8) {
	frm.buf[0] = (frm.buf[0] &^ 0xc0) | (v&0b11)<<6
}

// Bypass returns [cop1.TypeB] for frames that bypass the FARM acceptance checks.
func (frm Frame) Bypass() cop1.BypassType { return cop1.BypassType(frm.buf[0]>>5) & 1 }

// SetBypass sets the bypass flag. See [Frame.Bypass].
func (frm Frame) SetBypass(b cop1.BypassType) {
	frm.buf[0] = (frm.buf[0] &^ (1 << 5)) | byte(b&1)<<5
}

// ControlCommand returns [cop1.ControlCommand] when the frame data field holds a control command.
func (frm Frame) ControlCommand() cop1.ControlType { return cop1.ControlType(frm.buf[0]>>4) & 1 }

// SetControlCommand sets the control command flag. See [Frame.ControlCommand].
func (frm Frame) SetControlCommand(c cop1.ControlType) {
	frm.buf[0] = (frm.buf[0] &^ (1 << 4)) | byte(c&1)<<4
}

// SCID returns the 10 bit spacecraft identifier.
func (frm Frame) SCID() uint16 {
	return binary.BigEndian.Uint16(frm.buf[0:2]) & maxSCID
}

// SetSCID sets the spacecraft identifier and clears the spare bits.
func (frm Frame) SetSCID(scid uint16) {
	frm.buf[0] = (frm.buf[0] & 0xf0) | byte(scid>>8)&0b11
	frm.buf[1] = byte(scid)
}

// VCID returns the 6 bit virtual channel identifier.
func (frm Frame) VCID() uint8 { return frm.buf[2] >> 2 }

// SetVCID sets the virtual channel identifier. See [Frame.VCID].
func (frm Frame) SetVCID(vcid uint8) {
	frm.buf[2] = (frm.buf[2] & 0b11) | vcid<<2
}

// FrameLength returns the raw frame length field, one less than the total number
// of octets in the frame.
func (frm Frame) FrameLength() uint16 {
	return binary.BigEndian.Uint16(frm.buf[2:4]) & 0x3ff
}

// SetFrameLength sets the raw frame length field. See [Frame.FrameLength].
func (frm Frame) SetFrameLength(fl uint16) {
	frm.buf[2] = (frm.buf[2] &^ 0b11) | byte(fl>>8)&0b11
	frm.buf[3] = byte(fl)
}

// TotalLen returns the number of octets in the frame as indicated by the length field.
func (frm Frame) TotalLen() int { return int(frm.FrameLength()) + 1 }

// Seq returns N(S), the frame sequence number. It is meaningful for Type-A frames only.
func (frm Frame) Seq() seqs.Value { return seqs.Value(frm.buf[4]) }

// SetSeq sets the frame sequence number. See [Frame.Seq].
func (frm Frame) SetSeq(seq seqs.Value) { frm.buf[4] = byte(seq) }

// SegmentHeader returns the sequence flags and MAP ID of the segment header.
// Call only on frames of a channel configured with a segment header.
func (frm Frame) SegmentHeader() (flag cop1.SeqFlag, mapid uint8) {
	sh := frm.buf[sizeHeader]
	return cop1.SeqFlag(sh >> 6), sh & maxMAPID
}

// SetSegmentHeader sets the segment header. See [Frame.SegmentHeader].
func (frm Frame) SetSegmentHeader(flag cop1.SeqFlag, mapid uint8) {
	frm.buf[sizeHeader] = byte(flag&0b11)<<6 | mapid&maxMAPID
}

// Data returns the frame data field, the octets between the headers and the FECF.
// Be sure to call [Frame.ValidateSize] beforehand to avoid panic.
func (frm Frame) Data(cfg *Config) []byte {
	end := frm.TotalLen()
	if cfg.CRC {
		end -= sizeFECF
	}
	return frm.buf[cfg.dataOffset():end]
}

// FECF returns the frame error control field found in the last two octets of the frame.
func (frm Frame) FECF() uint16 {
	end := frm.TotalLen()
	return binary.BigEndian.Uint16(frm.buf[end-sizeFECF : end])
}

// SetFECF sets the frame error control field. See [Frame.FECF].
func (frm Frame) SetFECF(crc uint16) {
	end := frm.TotalLen()
	binary.BigEndian.PutUint16(frm.buf[end-sizeFECF:end], crc)
}

// CalculateFECF computes the CRC-16 over every octet of the frame preceding the FECF.
func (frm Frame) CalculateFECF() uint16 {
	return cop1.ChecksumFECF(frm.buf[:frm.TotalLen()-sizeFECF])
}

// ClearHeader zeros out the primary header contents.
func (frm Frame) ClearHeader() {
	for i := range frm.buf[:sizeHeader] {
		frm.buf[i] = 0
	}
}

//
// Validation API.
//

// ValidateSize checks the frame length field against the buffer size and the
// fixed overhead of the channel.
func (frm Frame) ValidateSize(v *cop1.Validator, cfg *Config) {
	tl := frm.TotalLen()
	if tl > len(frm.buf) {
		v.AddError(cop1.ErrShortBuffer)
	}
	if tl < cfg.Overhead() {
		v.AddBitPosErr(22, 10, cop1.ErrInvalidLengthField)
	}
}

// Validate performs the frame validation checks of a receiving virtual channel:
// size, version, spacecraft ID, virtual channel ID and, if configured, the FECF.
// The CRC check is omitted when v carries [cop1.ValidateSkipCRC].
func (frm Frame) Validate(v *cop1.Validator, cfg *Config) {
	frm.ValidateSize(v, cfg)
	if v.HasError() {
		return // Field access beyond this point could panic.
	}
	if frm.Version() != Version {
		v.AddBitPosErr(0, 2, cop1.ErrBadVersion)
	}
	if frm.SCID() != cfg.SCID {
		v.AddBitPosErr(6, 10, cop1.ErrMismatchedSCID)
	}
	if frm.VCID() != cfg.VCID {
		v.AddBitPosErr(16, 6, cop1.ErrMismatchedVCID)
	}
	if cfg.CRC && v.Flags()&cop1.ValidateSkipCRC == 0 && frm.CalculateFECF() != frm.FECF() {
		v.AddBitPosErr((frm.TotalLen()-sizeFECF)*8, 16, cop1.ErrBadCRC)
	}
}

// Delimit returns the frame found at the start of buf, trimmed to the size given
// by its length field.
func Delimit(buf []byte) (Frame, error) {
	frm, err := NewFrame(buf)
	if err != nil {
		return frm, err
	}
	tl := frm.TotalLen()
	if tl > len(buf) {
		return Frame{buf: nil}, cop1.ErrInvalidLengthField
	}
	frm.buf = buf[:tl]
	return frm, nil
}
