// Package telemetry decodes vehicle bus frames into live gauge values.
//
// The pipeline is:
//
//	Source (CAN socket, simulator) -> Link (decode loop) -> State (atomics)
//
// A Link runs on its own goroutine and blocks on Source.ReadFrame. Decoded
// values are stored in a State, which the render loop reads every frame
// without ever waiting on the link.
//
// Two channels are decoded, both little-endian unsigned 16-bit raw values:
//
//	0x1A0  bytes [0:2)  x 0.103  vehicle speed, km/h
//	0x0AA  bytes [4:6)  x 0.25   engine speed, rpm
//
// All other frame ids are ignored. Frames too short to hold the channel's
// bytes are discarded.
package telemetry
