package telemetry

import (
	"fmt"
)

// Recognized frame ids.
const (
	SpeedID uint32 = 0x1A0
	RPMID   uint32 = 0x0AA
)

// MaxPayload is the payload capacity of a classic CAN frame.
const MaxPayload = 8

// Channel scaling, from the vehicle's signal database.
const (
	speedFactor = 0.103 // km/h per raw unit, 12-bit raw value
	rpmFactor   = 0.25  // rpm per raw unit, 16-bit raw value

	speedRawMax = 0xFFF
	rpmRawMax   = 0xFFFF
)

// Frame is one bus message. Len is the number of valid bytes in Data.
type Frame struct {
	ID   uint32
	Len  uint8
	Data [MaxPayload]byte
}

// NewFrame builds a frame from id and up to MaxPayload payload bytes.
// Extra bytes are dropped.
func NewFrame(id uint32, payload ...byte) Frame {
	f := Frame{ID: id}
	f.Len = uint8(copy(f.Data[:], payload))
	return f
}

// Payload returns the valid bytes of the frame.
func (f Frame) Payload() []byte {
	n := min(int(f.Len), MaxPayload)
	return f.Data[:n]
}

// String returns the frame in candump notation, e.g. "1A0#6400".
func (f Frame) String() string {
	return fmt.Sprintf("%03X#%X", f.ID, f.Payload())
}

// Channel identifies a decoded value.
type Channel uint8

const (
	ChannelNone  Channel = iota // frame id not recognized
	ChannelSpeed                // vehicle speed, km/h
	ChannelRPM                  // engine speed, rpm
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelSpeed:
		return "speed"
	case ChannelRPM:
		return "rpm"
	default:
		return "none"
	}
}

// ChannelOf returns the channel carried by frames with the given id.
func ChannelOf(id uint32) Channel {
	switch id {
	case SpeedID:
		return ChannelSpeed
	case RPMID:
		return ChannelRPM
	default:
		return ChannelNone
	}
}

// DecodeSpeed decodes vehicle speed from bytes [0:2) of payload, truncating
// toward zero.
func DecodeSpeed(payload []byte) (int, error) {
	if len(payload) < 2 {
		return 0, fmt.Errorf("%w: speed needs 2 bytes, got %d", ErrShortFrame, len(payload))
	}
	raw := uint16(payload[1])<<8 | uint16(payload[0])
	return int(float64(raw) * speedFactor), nil
}

// DecodeRPM decodes engine speed from bytes [4:6) of payload, truncating
// toward zero.
func DecodeRPM(payload []byte) (int, error) {
	if len(payload) < 6 {
		return 0, fmt.Errorf("%w: rpm needs 6 bytes, got %d", ErrShortFrame, len(payload))
	}
	raw := uint16(payload[5])<<8 | uint16(payload[4])
	return int(float64(raw) * rpmFactor), nil
}

// Decode returns the channel and value carried by f.
// Unrecognized ids yield ChannelNone and no error.
func Decode(f Frame) (Channel, int, error) {
	ch := ChannelOf(f.ID)
	var (
		v   int
		err error
	)
	switch ch {
	case ChannelSpeed:
		v, err = DecodeSpeed(f.Payload())
	case ChannelRPM:
		v, err = DecodeRPM(f.Payload())
	}
	return ch, v, err
}

// EncodeSpeed builds a speed frame for kmh. The raw value must fit in
// 12 bits.
func EncodeSpeed(kmh float64) (Frame, error) {
	raw := int(kmh / speedFactor)
	if raw < 0 || raw > speedRawMax {
		return Frame{}, fmt.Errorf("%w: speed %.1f km/h", ErrOutOfRange, kmh)
	}
	f := Frame{ID: SpeedID, Len: MaxPayload}
	f.Data[0] = byte(raw)
	f.Data[1] = byte(raw >> 8)
	return f, nil
}

// EncodeRPM builds an engine speed frame for rpm. The raw value must fit in
// 16 bits.
func EncodeRPM(rpm float64) (Frame, error) {
	raw := int(rpm / rpmFactor)
	if raw < 0 || raw > rpmRawMax {
		return Frame{}, fmt.Errorf("%w: engine speed %.0f rpm", ErrOutOfRange, rpm)
	}
	f := Frame{ID: RPMID, Len: MaxPayload}
	f.Data[4] = byte(raw)
	f.Data[5] = byte(raw >> 8)
	return f, nil
}
