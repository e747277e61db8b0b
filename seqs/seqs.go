/*
package seqs implements the modulo-256 sequence number arithmetic of COP-1.

# Values and Sizes

Transfer frame sequence numbers are 8 bits wide, so all arithmetic on them
is performed modulo 2**8. Window tests never use signed subtraction: a
sequence number is inside a window when its unsigned distance from the
window's first value is smaller than the window size, which is correct
across wraparound.
*/
package seqs

// Value represents the value of a frame sequence number: V(S), V(R), N(R) or NN(R).
type Value uint8

// Size represents the size (width) of a sequence number window.
type Size uint8

// LessThan checks if v is before w (modulo 256) i.e., v < w.
func LessThan(v, w Value) bool {
	return int8(v-w) < 0
}

// InRange checks if v is in the range [a,b) (modulo 256), i.e., a <= v < b.
func InRange(v, a, b Value) bool {
	return v-a < b-a
}

// InWindow checks if v is in the window that starts at 'first' and spans 'size'
// sequence numbers (modulo 256).
func InWindow(v, first Value, size Size) bool {
	return InRange(v, first, Add(first, size))
}

// InPositiveWindow checks if seq is strictly ahead of base by less than width
// sequence numbers, i.e. seq is in (base, base+width-1] (modulo 256).
// base itself is never in the positive window.
func InPositiveWindow(seq, base Value, width Size) bool {
	d := Sizeof(base, seq)
	return d != 0 && d < width
}

// InNegativeWindow checks if seq is strictly behind base by at most width
// sequence numbers, i.e. seq is in [base-width, base) (modulo 256).
// base itself is never in the negative window.
func InNegativeWindow(seq, base Value, width Size) bool {
	d := Sizeof(seq, base)
	return d != 0 && d <= width
}

// Add calculates the sequence number following the [v, v+s) window.
func Add(v Value, s Size) Value {
	return v + Value(s)
}

// Sizeof calculates the size of the window defined by [v, w).
func Sizeof(v, w Value) Size {
	return Size(w - v)
}

// UpdateForward updates v such that it becomes v + s.
func (v *Value) UpdateForward(s Size) {
	*v += Value(s)
}

// Position is the location of a sequence number relative to an expected
// value and its positive and negative windows.
type Position uint8

const (
	PosEqual     Position = iota // equal
	PosPositive                  // positive
	PosNegative                  // negative
	PosUndefined                 // undefined
)

func (p Position) String() string {
	switch p {
	case PosEqual:
		return "equal"
	case PosPositive:
		return "positive"
	case PosNegative:
		return "negative"
	}
	return "undefined"
}

// Classify locates seq relative to base given the positive window width pw
// and the negative window width nw. When pw+nw does not exceed 256 the four
// positions partition the sequence space. If the windows overlap the positive
// window takes precedence.
func Classify(seq, base Value, pw, nw Size) Position {
	switch {
	case seq == base:
		return PosEqual
	case InPositiveWindow(seq, base, pw):
		return PosPositive
	case InNegativeWindow(seq, base, nw):
		return PosNegative
	}
	return PosUndefined
}
