package cluster_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/cluster"
	"github.com/gogpu/cluster/recording"
	"github.com/gogpu/cluster/telemetry"
)

// frameSource replays frames, then reports closure.
type frameSource struct {
	frames []telemetry.Frame
}

func (s *frameSource) ReadFrame() (telemetry.Frame, error) {
	if len(s.frames) == 0 {
		return telemetry.Frame{}, telemetry.ErrSourceClosed
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

// Bus frames flow through the link into the state and out as needle angles.
func TestPipeline_BusToNeedles(t *testing.T) {
	src := &frameSource{frames: []telemetry.Frame{
		telemetry.NewFrame(telemetry.SpeedID, 0x64, 0x00, 0, 0, 0, 0, 0, 0),
		telemetry.NewFrame(0x123, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF),
		telemetry.NewFrame(telemetry.RPMID, 0, 0, 0, 0, 0x10, 0x27, 0, 0),
		telemetry.NewFrame(telemetry.RPMID, 0x10),
	}}
	var state telemetry.State
	link := telemetry.NewLink(src, &state)
	if err := link.Run(context.Background()); !errors.Is(err, telemetry.ErrSourceClosed) {
		t.Fatalf("link.Run() = %v, want ErrSourceClosed", err)
	}

	rec := recording.NewRecorder()
	loop := cluster.NewFrameLoop(rec, cluster.DefaultGauges(&state))
	if err := loop.Frame(); err != nil {
		t.Fatalf("Frame() = %v", err)
	}

	ns := needles(rec)
	if len(ns) != 2 {
		t.Fatalf("needles = %d, want 2", len(ns))
	}
	// 10 km/h of 280: -225 + 270*10/280.
	if a := needleAngle(ns[0]); !sameAngle(a, -215.357142857, 1e-6) {
		t.Errorf("speed needle = %v, want -215.357", a)
	}
	// 2500 rpm of 8000: -225 + 270*2500/8000.
	if a := needleAngle(ns[1]); !sameAngle(a, -140.625, 1e-6) {
		t.Errorf("rpm needle = %v, want -140.625", a)
	}

	var readouts []string
	for _, c := range rec.Filter(recording.CmdText) {
		if c.Tier == cluster.TierLarge {
			readouts = append(readouts, c.Text)
		}
	}
	if len(readouts) != 2 || readouts[0] != "10" || readouts[1] != "2500" {
		t.Errorf("readouts = %v, want [10 2500]", readouts)
	}
}

// A live link and a running frame loop share the state without waiting
// on each other.
func TestPipeline_Concurrent(t *testing.T) {
	sim := telemetry.NewSimulator(11, 0)
	var state telemetry.State
	link := telemetry.NewLink(sim, &state)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	linkErr := make(chan error, 1)
	go func() { linkErr <- link.Run(ctx) }()

	rec := recording.NewRecorder(recording.WithPresentHook(func(rec *recording.Recorder) error {
		if rec.Frames() == 200 {
			cancel()
		}
		return nil
	}))
	loop := cluster.NewFrameLoop(rec, cluster.DefaultGauges(&state))
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("loop.Run() = %v", err)
	}

	_ = sim.Close()
	if err := <-linkErr; err != nil {
		t.Errorf("link.Run() = %v, want nil after cancel", err)
	}
	if link.Stats().Decoded == 0 {
		t.Error("link decoded nothing while the loop ran")
	}
}
