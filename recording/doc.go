// Package recording provides a cluster.Canvas that captures drawing calls
// as typed commands instead of rasterizing them.
//
// A Recorder is useful wherever the result of the gauge renderer needs to be
// inspected rather than looked at, as in tests asserting on needle and tick
// geometry. A recording can be played back onto any other canvas.
//
// # Example
//
//	rec := recording.NewRecorder()
//	_ = renderer.DrawGauge(rec, spec)
//
//	for _, cmd := range rec.Filter(recording.CmdLine) {
//	    fmt.Println(cmd.P1, cmd.P2, cmd.Thickness)
//	}
//
//	// Rasterize the same frame
//	err := rec.Playback(softwareCanvas)
package recording
