//go:build !linux

package socketcan

import "github.com/gogpu/cluster/telemetry"

// Conn is a raw CAN socket. It cannot be opened on this platform.
type Conn struct{}

// Verify at compile time that Conn implements telemetry.Source.
var _ telemetry.Source = (*Conn)(nil)

// Dial returns ErrUnsupported.
func Dial(iface string, opts ...Option) (*Conn, error) {
	return nil, ErrUnsupported
}

// Interface returns "".
func (c *Conn) Interface() string { return "" }

// ReadFrame returns ErrUnsupported.
func (c *Conn) ReadFrame() (telemetry.Frame, error) {
	return telemetry.Frame{}, ErrUnsupported
}

// WriteFrame returns ErrUnsupported.
func (c *Conn) WriteFrame(telemetry.Frame) error { return ErrUnsupported }

// Close does nothing.
func (c *Conn) Close() error { return nil }
