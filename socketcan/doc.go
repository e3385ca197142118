// Package socketcan reads and writes classic CAN frames on a Linux
// SocketCAN interface.
//
// A Conn is a raw CAN socket bound to one interface, such as a physical
// can0 or a virtual vcan0:
//
//	conn, err := socketcan.Dial("vcan0", socketcan.WithReadTimeout(250*time.Millisecond))
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	f, err := conn.ReadFrame()
//
// Conn implements telemetry.Source. Reads time out with telemetry.ErrTimeout
// so a reader can check for cancellation on an idle bus, and a closed Conn
// reports telemetry.ErrSourceClosed.
//
// The frame codec (Marshal, Unmarshal) is portable. Dial is only
// implemented on Linux and returns ErrUnsupported elsewhere.
package socketcan
