package cop1

//go:generate stringer -type=errGeneric -linecomment -output errors_string.go .

type errGeneric uint8

// Generic errors common to COP-1 framing and queueing.
const (
	_                     errGeneric = iota // non-initialized err
	ErrShortBuffer                          // short buffer
	ErrBadCRC                               // incorrect frame error control field
	ErrBadVersion                           // unsupported transfer frame version
	ErrInvalidLengthField                   // invalid frame length field
	ErrMismatchedSCID                       // mismatched spacecraft ID
	ErrMismatchedVCID                       // mismatched virtual channel ID
	ErrQueueFull                            // queue full
	ErrQueueEmpty                           // queue empty
)

func (err errGeneric) Error() string {
	return err.String()
}
