package tc

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/seqs"
)

var testConfig = Config{
	SCID:          0x2ab,
	VCID:          5,
	MAPID:         3,
	CRC:           true,
	SegmentHeader: true,
	MaxDataLen:    8,
	MaxSDULen:     64,
}

func TestFrame(t *testing.T) {
	var buf [MaxFrameLen]byte
	frm, err := NewFrame(buf[:])
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		wantBypass := cop1.BypassType(rng.Intn(2))
		wantCtrl := cop1.ControlType(rng.Intn(2))
		wantSCID := uint16(rng.Intn(maxSCID + 1))
		wantVCID := uint8(rng.Intn(maxVCID + 1))
		wantLen := uint16(rng.Intn(MaxFrameLen))
		wantSeq := seqs.Value(rng.Intn(256))
		wantFlag := cop1.SeqFlag(rng.Intn(4))
		wantMAP := uint8(rng.Intn(maxMAPID + 1))
		rng.Read(buf[:]) // Garbage in every field to catch stray bits.
		frm.SetVersion(Version)
		frm.SetBypass(wantBypass)
		frm.SetControlCommand(wantCtrl)
		frm.SetSCID(wantSCID)
		frm.SetVCID(wantVCID)
		frm.SetFrameLength(wantLen)
		frm.SetSeq(wantSeq)
		frm.SetSegmentHeader(wantFlag, wantMAP)

		if frm.Version() != Version {
			t.Errorf("want version %d, got %d", Version, frm.Version())
		}
		if frm.Bypass() != wantBypass {
			t.Errorf("want bypass %s, got %s", wantBypass, frm.Bypass())
		}
		if frm.ControlCommand() != wantCtrl {
			t.Errorf("want ctrl %s, got %s", wantCtrl, frm.ControlCommand())
		}
		if frm.SCID() != wantSCID {
			t.Errorf("want SCID %#x, got %#x", wantSCID, frm.SCID())
		}
		if frm.VCID() != wantVCID {
			t.Errorf("want VCID %d, got %d", wantVCID, frm.VCID())
		}
		if frm.FrameLength() != wantLen || frm.TotalLen() != int(wantLen)+1 {
			t.Errorf("want frame length %d, got %d", wantLen, frm.FrameLength())
		}
		if frm.Seq() != wantSeq {
			t.Errorf("want seq %d, got %d", wantSeq, frm.Seq())
		}
		if flag, mapid := frm.SegmentHeader(); flag != wantFlag || mapid != wantMAP {
			t.Errorf("want segment header %s/%d, got %s/%d", wantFlag, wantMAP, flag, mapid)
		}
		if buf[0]&0b1100 != 0 {
			t.Error("spare bits set")
		}
	}
}

func TestPackLayout(t *testing.T) {
	p, err := NewPacker(testConfig)
	if err != nil {
		t.Fatal(err)
	}
	fdu := cop1.FDU{Bypass: cop1.TypeA, Flag: cop1.SeqUnseg, MAPID: 3, Data: []byte("hello")}
	got, err := p.Pack(nil, &fdu, 7)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x02, 0xab, 5 << 2, 12, 7, 0xc3, 'h', 'e', 'l', 'l', 'o'}
	crc := cop1.ChecksumFECF(want)
	want = append(want, byte(crc>>8), byte(crc))
	if !bytes.Equal(got, want) {
		t.Fatalf("frame mismatch\nwant %x\ngot  %x", want, got)
	}
	frm, _ := NewFrame(got)
	if string(frm.Data(&testConfig)) != "hello" {
		t.Errorf("want data %q, got %q", "hello", frm.Data(&testConfig))
	}

	// Appends after existing content.
	prefix := []byte{0xde, 0xad}
	got2, err := p.Pack(prefix, &fdu, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got2[:2], prefix) || !bytes.Equal(got2[2:], want) {
		t.Errorf("append mismatch: %x", got2)
	}

	// Type-B frames carry sequence number 0.
	fdu.Bypass = cop1.TypeB
	got, _ = p.Pack(nil, &fdu, 7)
	if got[4] != 0 || got[0]&(1<<5) == 0 {
		t.Errorf("bad Type-B header %x", got[:5])
	}

	fdu.Data = make([]byte, testConfig.MaxDataLen+1)
	_, err = p.Pack(nil, &fdu, 0)
	if err == nil {
		t.Error("expected error packing oversize data")
	}
}

func TestPackNoOptionalFields(t *testing.T) {
	cfg := Config{SCID: 1, VCID: 1, MaxDataLen: 16, MaxSDULen: 16}
	p, err := NewPacker(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := p.Pack(nil, &cop1.FDU{Bypass: cop1.TypeB, Ctrl: cop1.ControlCommand, Data: cop1.UnlockCommand()}, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0b0011_0000, 1, 1 << 2, 5, 0, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("want %x, got %x", want, got)
	}
	frm, _ := NewFrame(got)
	v := cop1.NewValidator(0)
	frm.Validate(v, &cfg)
	if v.HasError() {
		t.Fatal(v.Err())
	}
	if !cop1.IsUnlockCommand(frm.Data(&cfg)) {
		t.Errorf("unlock command not found in data %x", frm.Data(&cfg))
	}
}

func TestValidate(t *testing.T) {
	p, _ := NewPacker(testConfig)
	fdu := cop1.FDU{Flag: cop1.SeqUnseg, Data: []byte{1, 2, 3}}
	frame, _ := p.Pack(nil, &fdu, 0)

	tests := []struct {
		name    string
		flags   cop1.ValidateFlags
		mangle  func(f Frame, cfg *Config)
		wantErr error
	}{
		{name: "ok", mangle: func(Frame, *Config) {}},
		{name: "crc", wantErr: cop1.ErrBadCRC, mangle: func(f Frame, _ *Config) { f.buf[7] ^= 0xff }},
		{name: "skipcrc", flags: cop1.ValidateSkipCRC, mangle: func(f Frame, _ *Config) { f.buf[7] ^= 0xff }},
		{name: "scid", wantErr: cop1.ErrMismatchedSCID, mangle: func(_ Frame, cfg *Config) { cfg.SCID++ }},
		{name: "vcid", wantErr: cop1.ErrMismatchedVCID, mangle: func(_ Frame, cfg *Config) { cfg.VCID++ }},
		{name: "version", flags: cop1.ValidateSkipCRC, wantErr: cop1.ErrBadVersion, mangle: func(f Frame, _ *Config) { f.SetVersion(1) }},
		{name: "length-long", wantErr: cop1.ErrShortBuffer, mangle: func(f Frame, _ *Config) { f.SetFrameLength(f.FrameLength() + 1) }},
		{name: "length-short", wantErr: cop1.ErrInvalidLengthField, mangle: func(f Frame, _ *Config) { f.SetFrameLength(4) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := append([]byte(nil), frame...)
			cfg := testConfig
			frm, _ := NewFrame(buf)
			tc.mangle(frm, &cfg)
			v := cop1.NewValidator(tc.flags)
			frm.Validate(v, &cfg)
			err := v.Err()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("want error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDelimit(t *testing.T) {
	p, _ := NewPacker(testConfig)
	frame, _ := p.Pack(nil, &cop1.FDU{Flag: cop1.SeqUnseg, Data: []byte{9}}, 1)
	buf := append(append([]byte(nil), frame...), 0xaa, 0xbb)
	frm, err := Delimit(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(frm.RawData(), frame) {
		t.Errorf("want delimited %x, got %x", frame, frm.RawData())
	}
	_, err = Delimit(frame[:len(frame)-1])
	if err == nil {
		t.Error("expected error delimiting truncated frame")
	}
	_, err = Delimit(frame[:3])
	if err == nil {
		t.Error("expected error delimiting header fragment")
	}
}

func TestConfigValidate(t *testing.T) {
	ok := testConfig
	if err := ok.Validate(); err != nil {
		t.Fatal(err)
	}
	bad := []Config{
		{SCID: maxSCID + 1, MaxDataLen: 1, MaxSDULen: 1},
		{VCID: maxVCID + 1, MaxDataLen: 1, MaxSDULen: 1},
		{MAPID: maxMAPID + 1, MaxDataLen: 1, MaxSDULen: 1},
		{MaxDataLen: 0, MaxSDULen: 1},
		{MaxDataLen: MaxFrameLen - sizeHeader + 1, MaxSDULen: MaxFrameLen},
		{CRC: true, MaxDataLen: MaxFrameLen - sizeHeader - 1, MaxSDULen: MaxFrameLen},
		{MaxDataLen: 10, MaxSDULen: 9},
	}
	for i, cfg := range bad {
		if cfg.Validate() == nil {
			t.Errorf("config %d: expected error", i)
		}
	}
	if got := testConfig.MaxFrameSize(); got != 16 {
		t.Errorf("want max frame size 16, got %d", got)
	}
}
