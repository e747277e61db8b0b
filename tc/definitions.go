// Package tc implements the CCSDS TC transfer frame: the primary header,
// the optional segment header and frame error control field, plus
// segmentation of service data units into frames and their reassembly
// on the receiving end.
package tc

import (
	"errors"
)

const (
	sizeHeader    = 5
	sizeSegHeader = 1
	sizeFECF      = 2
	// MaxFrameLen is the largest frame the 10 bit frame length field can describe.
	MaxFrameLen = 1024
	// Version is the only transfer frame version number defined for TC.
	Version = 0

	maxSCID  = 0x3ff
	maxVCID  = 0x3f
	maxMAPID = 0x3f
)

var (
	errSCIDRange   = errors.New("tc: spacecraft ID exceeds 10 bits")
	errVCIDRange   = errors.New("tc: virtual channel ID exceeds 6 bits")
	errMAPIDRange  = errors.New("tc: MAP ID exceeds 6 bits")
	errDataLen     = errors.New("tc: max data length must fit in a frame")
	errSDULen      = errors.New("tc: max SDU length smaller than max data length")
	errDataTooLong = errors.New("tc: frame data exceeds max data length")
	errLoopOpen    = errors.New("tc: first segment received with reassembly in progress")
	errLoopClosed  = errors.New("tc: segment received with no reassembly in progress")
	errSDUTooLong  = errors.New("tc: reassembled SDU exceeds max SDU length")
)

// Config holds the managed parameters of a single TC virtual channel.
type Config struct {
	SCID  uint16
	VCID  uint8
	MAPID uint8
	// CRC enables the 2 octet frame error control field.
	CRC bool
	// SegmentHeader enables the 1 octet segment header in every frame.
	SegmentHeader bool
	// MaxDataLen is the maximum number of SDU octets carried by one frame.
	MaxDataLen int
	// MaxSDULen is the maximum length of a reassembled SDU.
	MaxSDULen int
}

// Validate checks the configuration fields are within range.
func (cfg *Config) Validate() error {
	switch {
	case cfg.SCID > maxSCID:
		return errSCIDRange
	case cfg.VCID > maxVCID:
		return errVCIDRange
	case cfg.MAPID > maxMAPID:
		return errMAPIDRange
	case cfg.MaxDataLen <= 0 || cfg.Overhead()+cfg.MaxDataLen > MaxFrameLen:
		return errDataLen
	case cfg.MaxSDULen < cfg.MaxDataLen:
		return errSDULen
	}
	return nil
}

// Overhead returns the number of octets in a frame that are not frame data.
func (cfg *Config) Overhead() int {
	n := sizeHeader
	if cfg.SegmentHeader {
		n += sizeSegHeader
	}
	if cfg.CRC {
		n += sizeFECF
	}
	return n
}

// MaxFrameSize returns the length of a frame carrying MaxDataLen octets of data.
func (cfg *Config) MaxFrameSize() int { return cfg.Overhead() + cfg.MaxDataLen }

func (cfg *Config) dataOffset() int {
	if cfg.SegmentHeader {
		return sizeHeader + sizeSegHeader
	}
	return sizeHeader
}
