package tc

import (
	"slices"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/seqs"
)

// Packer builds the TC transfer frames of a single virtual channel.
type Packer struct {
	cfg Config
}

// NewPacker returns a Packer for the channel described by cfg.
func NewPacker(cfg Config) (*Packer, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	return &Packer{cfg: cfg}, nil
}

// Config returns the channel configuration of the packer.
func (p *Packer) Config() Config { return p.cfg }

// Pack appends a transfer frame carrying fdu with frame sequence number seq
// to dst. The sequence number is only written to Type-A frames.
func (p *Packer) Pack(dst []byte, fdu *cop1.FDU, seq seqs.Value) ([]byte, error) {
	if len(fdu.Data) > p.cfg.MaxDataLen {
		return dst, errDataTooLong
	}
	if fdu.Bypass == cop1.TypeB {
		seq = 0
	}
	start := len(dst)
	total := p.cfg.Overhead() + len(fdu.Data)
	dst = slices.Grow(dst, total)[:start+total]
	frm := Frame{buf: dst[start:]}
	frm.ClearHeader()
	frm.SetVersion(Version)
	frm.SetBypass(fdu.Bypass)
	frm.SetControlCommand(fdu.Ctrl)
	frm.SetSCID(p.cfg.SCID)
	frm.SetVCID(p.cfg.VCID)
	frm.SetFrameLength(uint16(total - 1))
	frm.SetSeq(seq)
	if p.cfg.SegmentHeader {
		frm.SetSegmentHeader(fdu.Flag, fdu.MAPID)
	}
	copy(frm.buf[p.cfg.dataOffset():], fdu.Data)
	if p.cfg.CRC {
		frm.SetFECF(frm.CalculateFECF())
	}
	return dst, nil
}
