package socketcan

import "errors"

var (
	// ErrUnsupported is returned by Dial on platforms without SocketCAN.
	ErrUnsupported = errors.New("socketcan: not supported on this platform")

	// ErrFrameSize is returned when a buffer is not exactly FrameSize bytes.
	ErrFrameSize = errors.New("socketcan: bad frame size")
)
