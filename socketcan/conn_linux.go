//go:build linux

package socketcan

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/gogpu/cluster/telemetry"
)

// Conn is a raw CAN socket bound to one interface.
//
// ReadFrame must not be called concurrently with itself. Close may be
// called from any goroutine and unblocks a pending ReadFrame.
type Conn struct {
	f       *os.File
	iface   string
	timeout time.Duration
	rbuf    [FrameSize]byte
}

// Verify at compile time that Conn implements telemetry.Source.
var _ telemetry.Source = (*Conn)(nil)

// Dial opens a raw CAN socket on the named interface.
func Dial(iface string, opts ...Option) (*Conn, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ifi, err := net.InterfaceByName(iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan: interface %q: %w", iface, err)
	}

	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, unix.CAN_RAW)
	if err != nil {
		return nil, fmt.Errorf("socketcan: socket: %w", err)
	}
	if err := unix.Bind(fd, &unix.SockaddrCAN{Ifindex: ifi.Index}); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("socketcan: bind %s: %w", iface, err)
	}

	// The fd is non-blocking, so os.File registers it with the runtime
	// poller and read deadlines and Close work across goroutines.
	return &Conn{
		f:       os.NewFile(uintptr(fd), "can:"+iface),
		iface:   iface,
		timeout: o.readTimeout,
	}, nil
}

// Interface returns the interface name the Conn is bound to.
func (c *Conn) Interface() string { return c.iface }

// ReadFrame reads one frame.
func (c *Conn) ReadFrame() (telemetry.Frame, error) {
	if c.timeout > 0 {
		if err := c.f.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return telemetry.Frame{}, c.readErr(err)
		}
	}
	n, err := c.f.Read(c.rbuf[:])
	if err != nil {
		return telemetry.Frame{}, c.readErr(err)
	}
	return Unmarshal(c.rbuf[:n])
}

// WriteFrame sends one frame.
func (c *Conn) WriteFrame(f telemetry.Frame) error {
	b := Marshal(f)
	if _, err := c.f.Write(b[:]); err != nil {
		if errors.Is(err, os.ErrClosed) {
			return telemetry.ErrSourceClosed
		}
		return fmt.Errorf("socketcan: write %s: %w", c.iface, err)
	}
	return nil
}

// Close closes the socket.
func (c *Conn) Close() error {
	if err := c.f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("socketcan: close %s: %w", c.iface, err)
	}
	return nil
}

func (c *Conn) readErr(err error) error {
	switch {
	case errors.Is(err, os.ErrClosed), errors.Is(err, io.EOF):
		return telemetry.ErrSourceClosed
	case errors.Is(err, os.ErrDeadlineExceeded):
		return telemetry.ErrTimeout
	default:
		return fmt.Errorf("socketcan: read %s: %w", c.iface, err)
	}
}
