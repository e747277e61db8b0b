package cop1

import (
	"github.com/sigurn/crc16"
)

// crcTable is the CRC-16/CCITT-FALSE table used by the TC frame error control field:
// polynomial 0x1021, initial value 0xFFFF, no reflection, no final XOR.
var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// CRC16 is a running frame error control field calculation.
// The zero value of CRC16 is ready to use.
type CRC16 struct {
	sum     uint16
	started bool
}

// Write adds the bytes in buf to the running checksum. It never returns an error.
func (c *CRC16) Write(buf []byte) (int, error) {
	if !c.started {
		c.sum = crc16.Init(crcTable)
		c.started = true
	}
	c.sum = crc16.Update(c.sum, buf, crcTable)
	return len(buf), nil
}

// Sum16 returns the checksum of the data written to c thus far.
func (c *CRC16) Sum16() uint16 {
	if !c.started {
		return crc16.Complete(crc16.Init(crcTable), crcTable)
	}
	return crc16.Complete(c.sum, crcTable)
}

// Reset discards all data written to c.
func (c *CRC16) Reset() { *c = CRC16{} }

// ChecksumFECF returns the frame error control field of buf.
func ChecksumFECF(buf []byte) uint16 {
	return crc16.Checksum(buf, crcTable)
}
