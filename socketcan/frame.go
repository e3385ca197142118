package socketcan

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/cluster/telemetry"
)

// FrameSize is the size of struct can_frame on the wire.
const FrameSize = 16

// Flag bits carried in the upper bits of can_id. They are kept in
// telemetry.Frame.ID as read, so flagged frames never match a standard id.
const (
	EFFFlag uint32 = 0x80000000 // extended 29-bit id
	RTRFlag uint32 = 0x40000000 // remote transmission request
	ERRFlag uint32 = 0x20000000 // error message frame

	SFFMask uint32 = 0x000007FF
	EFFMask uint32 = 0x1FFFFFFF
)

// Layout of struct can_frame:
//
//	0  can_id   u32, host byte order
//	4  len      u8
//	5  __pad    u8
//	6  __res0   u8
//	7  len8_dlc u8
//	8  data     [8]u8
const (
	offID   = 0
	offLen  = 4
	offData = 8
)

// Marshal encodes f into a can_frame.
func Marshal(f telemetry.Frame) [FrameSize]byte {
	var b [FrameSize]byte
	binary.NativeEndian.PutUint32(b[offID:], f.ID)
	b[offLen] = min(f.Len, telemetry.MaxPayload)
	copy(b[offData:], f.Payload())
	return b
}

// Unmarshal decodes a can_frame. Lengths above the classic payload
// capacity are capped.
func Unmarshal(b []byte) (telemetry.Frame, error) {
	if len(b) != FrameSize {
		return telemetry.Frame{}, fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(b), FrameSize)
	}
	f := telemetry.Frame{
		ID:  binary.NativeEndian.Uint32(b[offID:]),
		Len: min(b[offLen], telemetry.MaxPayload),
	}
	copy(f.Data[:f.Len], b[offData:])
	return f, nil
}
