// Package cluster renders a live automotive instrument cluster: radial gauges
// for vehicle speed and engine RPM, fed by values decoded off a CAN bus.
//
// # Overview
//
// The package contains the procedural gauge renderer and the frame loop that
// drives it. Drawing goes through the [Canvas] interface, so the same gauge
// logic runs on any backend:
//
//   - backend/antialias: antialiased primitives on top of gogpu/gg
//   - backend/software: manual pixel plotting into an image.RGBA
//   - recording: captures canvas calls for inspection
//
// Telemetry ingestion lives in the telemetry package; the SocketCAN frame
// source lives in the socketcan package.
//
// # Quick Start
//
//	state := &telemetry.State{}
//	canvas, err := backend.New(backend.Software, backend.Config{Font: fonts.Default()})
//	if err != nil {
//	    return err
//	}
//	defer canvas.Close()
//
//	loop := cluster.NewFrameLoop(canvas, cluster.DefaultGauges(state),
//	    cluster.WithEvents(events),
//	    cluster.WithQuit(cancel))
//	err := loop.Run(ctx)
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in degrees, 0 is right, increases clockwise on screen
//
// # Gauge Geometry
//
// A gauge sweeps 270 degrees, from -225 (minimum) to +45 (maximum), which
// leaves a 90 degree gap at the bottom of the dial for the numeric readout.
package cluster

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0"
)
