package seqs

import "testing"

func TestWindowPartition(t *testing.T) {
	for w := Size(1); w <= 254; w++ {
		pw, nw := w/2, w/2
		wantPos := int(pw) - 1
		if pw == 0 {
			wantPos = 0
		}
		for b := 0; b < 256; b++ {
			base := Value(b)
			var eq, pos, neg, undef int
			for s := 0; s < 256; s++ {
				seq := Value(s)
				inPos := InPositiveWindow(seq, base, pw)
				inNeg := InNegativeWindow(seq, base, nw)
				if inPos && inNeg {
					t.Fatalf("w=%d base=%d seq=%d in both windows", w, base, seq)
				} else if seq == base && (inPos || inNeg) {
					t.Fatalf("w=%d base=%d seq=%d equal value inside a window", w, base, seq)
				}
				switch Classify(seq, base, pw, nw) {
				case PosEqual:
					eq++
				case PosPositive:
					pos++
				case PosNegative:
					neg++
				case PosUndefined:
					undef++
				}
			}
			if eq != 1 || pos != wantPos || neg != int(nw) || eq+pos+neg+undef != 256 {
				t.Fatalf("w=%d base=%d: eq=%d pos=%d neg=%d undef=%d", w, base, eq, pos, neg, undef)
			}
		}
	}
}

func TestWindowAsymmetric(t *testing.T) {
	// Window tests depend only on the distance to base, so base 0 suffices.
	const base = 0
	for pw := 0; pw < 256; pw++ {
		for nw := 0; pw+nw <= 256 && nw < 256; nw++ {
			for s := 0; s < 256; s++ {
				seq := Value(s)
				inPos := InPositiveWindow(seq, base, Size(pw))
				inNeg := InNegativeWindow(seq, base, Size(nw))
				if inPos && inNeg {
					t.Fatalf("pw=%d nw=%d seq=%d in both windows", pw, nw, seq)
				}
			}
		}
	}
}

func TestWraparound(t *testing.T) {
	var tests = []struct {
		seq, base Value
		width     Size
		wantPos   bool
		wantNeg   bool
	}{
		{seq: 1, base: 255, width: 4, wantPos: true},
		{seq: 2, base: 255, width: 4, wantPos: true},
		{seq: 3, base: 255, width: 4, wantPos: false, wantNeg: false},
		{seq: 254, base: 1, width: 3, wantNeg: true},
		{seq: 253, base: 1, width: 3, wantNeg: false},
		{seq: 0, base: 0, width: 10},
		{seq: 128, base: 0, width: 127, wantNeg: false},
	}
	for _, tc := range tests {
		gotPos := InPositiveWindow(tc.seq, tc.base, tc.width)
		gotNeg := InNegativeWindow(tc.seq, tc.base, tc.width)
		if gotPos != tc.wantPos || gotNeg != tc.wantNeg {
			t.Errorf("seq=%d base=%d width=%d: got pos=%v neg=%v, want pos=%v neg=%v",
				tc.seq, tc.base, tc.width, gotPos, gotNeg, tc.wantPos, tc.wantNeg)
		}
	}
}

func TestInWindowOccupancy(t *testing.T) {
	for first := 0; first < 256; first++ {
		for size := 1; size < 255; size++ {
			count := 0
			for v := 0; v < 256; v++ {
				in := InWindow(Value(v), Value(first), Size(size))
				if in != (Sizeof(Value(first), Value(v)) < Size(size)) {
					t.Fatalf("InWindow(%d, %d, %d) inconsistent with Sizeof", v, first, size)
				}
				if in {
					count++
				}
			}
			if count != size {
				t.Fatalf("window first=%d size=%d holds %d values", first, size, count)
			}
		}
	}
}

func TestLessThan(t *testing.T) {
	if !LessThan(255, 0) {
		t.Error("255 must precede 0 across wraparound")
	}
	if LessThan(0, 255) {
		t.Error("0 must not precede 255 across wraparound")
	}
	if LessThan(7, 7) {
		t.Error("a value never precedes itself")
	}
}
