package telemetry

import "errors"

var (
	// ErrShortFrame is returned when a frame's payload does not cover the
	// bytes of the channel its id names.
	ErrShortFrame = errors.New("telemetry: frame too short for channel")

	// ErrSourceClosed is returned by a Source once it has been closed.
	// A Link stops when it sees it.
	ErrSourceClosed = errors.New("telemetry: source closed")

	// ErrTimeout is returned by a Source whose read deadline passed with
	// no frame. A Link treats it as an idle bus, not a failed read.
	ErrTimeout = errors.New("telemetry: read timed out")

	// ErrOutOfRange is returned when a value cannot be encoded in its
	// channel's raw field.
	ErrOutOfRange = errors.New("telemetry: value out of range")
)
