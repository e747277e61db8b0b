package internal

// Prand32 returns the next value of a 32 bit xorshift sequence. A zero seed
// yields zero forever.
func Prand32[T ~uint32](seed T) T {
	// Marsaglia, "Xorshift RNGs", p. 4.
	seed ^= seed << 13
	seed ^= seed >> 17
	seed ^= seed << 5
	return seed
}
