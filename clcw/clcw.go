// Package clcw implements the Communications Link Control Word, the 4 octet
// report that a receiving virtual channel returns to the sender over the
// telemetry link.
package clcw

import (
	"errors"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/seqs"
)

// Size is the length in octets of a CLCW.
const Size = 4

var (
	errNotCLCW      = errors.New("clcw: control word type must be 0")
	errBadVersion   = errors.New("clcw: version must be 0")
	errCOPNotActive = errors.New("clcw: COP not in effect")
)

// Report is the decoded content of a CLCW.
type Report struct {
	Version     uint8 // 2 bits.
	Status      uint8 // 3 bits, mission specific.
	COPInEffect uint8 // 2 bits, 1 for COP-1.
	VCID        uint8 // 6 bits.
	NoRF        bool  // No RF available.
	NoBitLock   bool  // No bit lock.
	Lockout     bool
	Wait        bool
	Retransmit  bool
	FarmB       uint8      // FARM-B counter, 2 bits.
	Value       seqs.Value // Report value N(R), the receiver's V(R).
}

// NewFrame returns a new CLCW frame with data set to buf.
// An error is returned if the buffer is shorter than [Size].
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < Size {
		return Frame{buf: nil}, cop1.ErrShortBuffer
	}
	return Frame{buf: buf[:Size]}, nil
}

// Frame encapsulates the raw data of a CLCW and provides accessors for its fields.
//
//	byte 0: type(1) version(2) status(3) cop in effect(2)
//	byte 1: vcid(6) spare(2)
//	byte 2: no rf(1) no bitlock(1) lockout(1) wait(1) retransmit(1) farm-b(2) spare(1)
//	byte 3: report value
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (f Frame) RawData() []byte { return f.buf }

// ControlWordType is 0 for a CLCW.
func (f Frame) ControlWordType() uint8 { return f.buf[0] >> 7 }

func (f Frame) Version() uint8     { return (f.buf[0] >> 5) & 0b11 }
func (f Frame) Status() uint8      { return (f.buf[0] >> 2) & 0b111 }
func (f Frame) COPInEffect() uint8 { return f.buf[0] & 0b11 }

// VCID returns the virtual channel the report refers to.
func (f Frame) VCID() uint8 { return f.buf[1] >> 2 }

func (f Frame) NoRF() bool       { return f.buf[2]&(1<<7) != 0 }
func (f Frame) NoBitLock() bool  { return f.buf[2]&(1<<6) != 0 }
func (f Frame) Lockout() bool    { return f.buf[2]&(1<<5) != 0 }
func (f Frame) Wait() bool       { return f.buf[2]&(1<<4) != 0 }
func (f Frame) Retransmit() bool { return f.buf[2]&(1<<3) != 0 }

// FarmB returns the 2 bit count of Type-B frames accepted by the receiver.
func (f Frame) FarmB() uint8 { return (f.buf[2] >> 1) & 0b11 }

// ReportValue returns N(R), the next frame sequence number expected by the receiver.
func (f Frame) ReportValue() seqs.Value { return seqs.Value(f.buf[3]) }

// Report decodes the frame.
func (f Frame) Report() Report {
	return Report{
		Version:     f.Version(),
		Status:      f.Status(),
		COPInEffect: f.COPInEffect(),
		VCID:        f.VCID(),
		NoRF:        f.NoRF(),
		NoBitLock:   f.NoBitLock(),
		Lockout:     f.Lockout(),
		Wait:        f.Wait(),
		Retransmit:  f.Retransmit(),
		FarmB:       f.FarmB(),
		Value:       f.ReportValue(),
	}
}

// SetReport encodes r into the frame. Fields wider than their bit allotment are truncated.
func (f Frame) SetReport(r Report) {
	f.buf[0] = (r.Version&0b11)<<5 | (r.Status&0b111)<<2 | r.COPInEffect&0b11
	f.buf[1] = (r.VCID & 0b11_1111) << 2
	f.buf[2] = b2u8(r.NoRF)<<7 | b2u8(r.NoBitLock)<<6 | b2u8(r.Lockout)<<5 |
		b2u8(r.Wait)<<4 | b2u8(r.Retransmit)<<3 | (r.FarmB&0b11)<<1
	f.buf[3] = uint8(r.Value)
}

// Validate checks the fixed fields of the CLCW.
func (f Frame) Validate(v *cop1.Validator) {
	if f.ControlWordType() != 0 {
		v.AddBitPosErr(0, 1, errNotCLCW)
	}
	if f.Version() != 0 {
		v.AddBitPosErr(1, 2, errBadVersion)
	}
	if f.COPInEffect() != 1 {
		v.AddBitPosErr(6, 2, errCOPNotActive)
	}
}

// Append encodes r and appends the 4 octet CLCW to dst.
func Append(dst []byte, r Report) []byte {
	var buf [Size]byte
	f := Frame{buf: buf[:]}
	f.SetReport(r)
	return append(dst, buf[:]...)
}

// Parse decodes and validates a CLCW.
func Parse(buf []byte) (Report, error) {
	f, err := NewFrame(buf)
	if err != nil {
		return Report{}, err
	}
	var v cop1.Validator
	f.Validate(&v)
	if v.HasError() {
		return Report{}, v.Err()
	}
	return f.Report(), nil
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
