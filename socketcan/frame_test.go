package socketcan

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gogpu/cluster/telemetry"
)

// rawFrame builds a can_frame the way the kernel lays it out.
func rawFrame(id uint32, n uint8, data ...byte) []byte {
	b := make([]byte, FrameSize)
	binary.NativeEndian.PutUint32(b, id)
	b[4] = n
	b[7] = 0xEE // len8_dlc is ignored
	copy(b[8:], data)
	return b
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		want    telemetry.Frame
		wantErr error
	}{
		{
			name: "speed frame",
			in:   rawFrame(0x1A0, 8, 0x64, 0x00, 1, 2, 3, 4, 5, 6),
			want: telemetry.NewFrame(telemetry.SpeedID, 0x64, 0x00, 1, 2, 3, 4, 5, 6),
		},
		{
			name: "bytes past len are dropped",
			in:   rawFrame(0x0AA, 2, 0x10, 0x27, 0xFF, 0xFF),
			want: telemetry.NewFrame(telemetry.RPMID, 0x10, 0x27),
		},
		{
			name: "len above eight is capped",
			in:   rawFrame(0x0AA, 64, 0, 0, 0, 0, 0x10, 0x27, 0, 0),
			want: telemetry.NewFrame(telemetry.RPMID, 0, 0, 0, 0, 0x10, 0x27, 0, 0),
		},
		{
			name: "extended id keeps flag",
			in:   rawFrame(EFFFlag|0x1A0, 2, 0x64, 0x00),
			want: telemetry.NewFrame(EFFFlag|0x1A0, 0x64, 0x00),
		},
		{
			name:    "short buffer",
			in:      make([]byte, 8),
			wantErr: ErrFrameSize,
		},
		{
			name:    "can fd sized buffer",
			in:      make([]byte, 72),
			wantErr: ErrFrameSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Unmarshal() err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Unmarshal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarshal(t *testing.T) {
	f := telemetry.NewFrame(telemetry.RPMID, 0, 0, 0, 0, 0x10, 0x27, 0, 0)
	b := Marshal(f)

	if got := binary.NativeEndian.Uint32(b[:4]); got != telemetry.RPMID {
		t.Errorf("can_id = %#x, want %#x", got, telemetry.RPMID)
	}
	if b[4] != 8 {
		t.Errorf("len = %d, want 8", b[4])
	}
	if b[5] != 0 || b[6] != 0 || b[7] != 0 {
		t.Errorf("pad/res0/len8_dlc = % x, want zeros", b[5:8])
	}
	if b[12] != 0x10 || b[13] != 0x27 {
		t.Errorf("data = % x, want 10 27 at [4:6)", b[8:])
	}

	back, err := Unmarshal(b[:])
	if err != nil {
		t.Fatalf("Unmarshal() = %v", err)
	}
	if back != f {
		t.Errorf("round trip = %v, want %v", back, f)
	}
	if _, v, _ := telemetry.Decode(back); v != 2500 {
		t.Errorf("decoded rpm = %d, want 2500", v)
	}
}

func TestFlagMasks(t *testing.T) {
	if EFFFlag&EFFMask != 0 || RTRFlag&EFFMask != 0 || ERRFlag&EFFMask != 0 {
		t.Error("flag bits overlap the extended id mask")
	}
	if SFFMask&^EFFMask != 0 {
		t.Error("standard id mask not inside extended mask")
	}
	// Flagged frames must not be mistaken for the recognized channels.
	for _, flag := range []uint32{EFFFlag, RTRFlag, ERRFlag} {
		if ch := telemetry.ChannelOf(flag | telemetry.SpeedID); ch != telemetry.ChannelNone {
			t.Errorf("ChannelOf(%#x) = %v, want none", flag|telemetry.SpeedID, ch)
		}
	}
}
