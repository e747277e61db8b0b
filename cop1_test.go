package cop1_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/soypat/cop1"
)

func TestFECFChecksum(t *testing.T) {
	// CRC-16/CCITT-FALSE check value.
	const check = 0x29b1
	if got := cop1.ChecksumFECF([]byte("123456789")); got != check {
		t.Fatalf("want check value %#x, got %#x", check, got)
	}
	var crc cop1.CRC16
	if got := crc.Sum16(); got != cop1.ChecksumFECF(nil) {
		t.Errorf("empty sum mismatch: %#x", got)
	}
	rng := rand.New(rand.NewSource(1))
	buf := make([]byte, 256)
	for i := 0; i < 64; i++ {
		data := buf[:rng.Intn(len(buf))]
		rng.Read(data)
		crc.Reset()
		split := 0
		if len(data) > 0 {
			split = rng.Intn(len(data))
		}
		crc.Write(data[:split])
		crc.Write(data[split:])
		want := cop1.ChecksumFECF(data)
		if got := crc.Sum16(); got != want {
			t.Errorf("streaming CRC mismatch len=%d split=%d: want %#x, got %#x", len(data), split, want, got)
		}
	}
}

func TestControlCommands(t *testing.T) {
	if !cop1.IsUnlockCommand(cop1.UnlockCommand()) {
		t.Error("unlock command not recognized")
	}
	for vr := 0; vr < 256; vr++ {
		cmd := cop1.SetVRCommand(uint8(vr))
		if cop1.IsUnlockCommand(cmd) {
			t.Fatal("set V(R) mistaken for unlock")
		}
		got, ok := cop1.ParseSetVRCommand(cmd)
		if !ok || got != uint8(vr) {
			t.Fatalf("set V(R) %d parsed as %d (ok=%v)", vr, got, ok)
		}
	}
	for _, bad := range [][]byte{nil, {0x82}, {0x82, 0x01, 3}, {0x00, 0x00, 3}} {
		if _, ok := cop1.ParseSetVRCommand(bad); ok {
			t.Errorf("%x parsed as set V(R)", bad)
		}
	}
}

func TestFDUService(t *testing.T) {
	tests := []struct {
		fdu  cop1.FDU
		want cop1.Service
	}{
		{fdu: cop1.FDU{Bypass: cop1.TypeA, Ctrl: cop1.ControlData}, want: cop1.ServiceAD},
		{fdu: cop1.FDU{Bypass: cop1.TypeB, Ctrl: cop1.ControlData}, want: cop1.ServiceBD},
		{fdu: cop1.FDU{Bypass: cop1.TypeB, Ctrl: cop1.ControlCommand}, want: cop1.ServiceBC},
		{fdu: cop1.FDU{Bypass: cop1.TypeA, Ctrl: cop1.ControlCommand}, want: cop1.ServiceUndefined},
	}
	for _, tc := range tests {
		if got := tc.fdu.Service(); got != tc.want {
			t.Errorf("%s/%s: want service %s, got %s", tc.fdu.Bypass, tc.fdu.Ctrl, tc.want, got)
		}
	}
}

func TestNotification(t *testing.T) {
	alerts := 0
	for n := cop1.AcceptDir; n <= cop1.NA; n++ {
		if n.IsAlert() {
			alerts++
		}
	}
	if alerts != 8 {
		t.Errorf("want 8 alert notifications, got %d", alerts)
	}
	if cop1.AlertLLIF.String() != "ALERT_LLIF" || cop1.DelayResp.String() != "DELAY_RESP" {
		t.Error("unexpected notification names")
	}
	if !cop1.FarmPriorityEnq.Accepted() || cop1.FarmDiscard.Accepted() {
		t.Error("bad FARM acceptance")
	}
}

func TestValidator(t *testing.T) {
	v := cop1.NewValidator(0)
	v.AddBitPosErr(0, 2, cop1.ErrBadVersion)
	v.AddError(cop1.ErrBadCRC)
	if !errors.Is(v.Err(), cop1.ErrBadVersion) || errors.Is(v.Err(), cop1.ErrBadCRC) {
		t.Errorf("want only first error recorded, got %v", v.Err())
	}
	var bpe *cop1.BitPosErr
	if !errors.As(v.Err(), &bpe) || bpe.BitStart != 0 || bpe.BitLen != 2 {
		t.Errorf("want bit position error, got %v", v.Err())
	}
	v.ResetErr()
	if v.HasError() {
		t.Fatal("error after reset")
	}

	v = cop1.NewValidator(cop1.ValidateAllowMultiErrors)
	v.AddBitPosErr(0, 2, cop1.ErrBadVersion)
	v.AddError(cop1.ErrBadCRC)
	if !errors.Is(v.Err(), cop1.ErrBadVersion) || !errors.Is(v.Err(), cop1.ErrBadCRC) {
		t.Errorf("want both errors recorded, got %v", v.Err())
	}
}
