package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/gogpu/cluster/telemetry"
)

type collect struct {
	frames []telemetry.Frame
	failAt int
}

func (c *collect) WriteFrame(f telemetry.Frame) error {
	if c.failAt > 0 && len(c.frames) == c.failAt {
		return errors.New("bus off")
	}
	c.frames = append(c.frames, f)
	return nil
}

func TestPump_Limit(t *testing.T) {
	sim := telemetry.NewSimulator(5, 0)
	defer sim.Close()

	var c collect
	n, err := pump(sim, &c, 10)
	if err != nil || n != 10 {
		t.Fatalf("pump() = %d, %v; want 10, nil", n, err)
	}
	for i, f := range c.frames {
		want := telemetry.SpeedID
		if i%2 == 1 {
			want = telemetry.RPMID
		}
		if f.ID != want {
			t.Errorf("frame %d id = %03X, want %03X", i, f.ID, want)
		}
	}
}

func TestPump_StopsOnClose(t *testing.T) {
	sim := telemetry.NewSimulator(5, 0)
	_ = sim.Close()

	var c collect
	n, err := pump(sim, &c, 0)
	if err != nil || n != 0 {
		t.Errorf("pump() on closed source = %d, %v; want 0, nil", n, err)
	}
}

func TestPump_WriteError(t *testing.T) {
	sim := telemetry.NewSimulator(5, 0)
	defer sim.Close()

	c := collect{failAt: 3}
	n, err := pump(sim, &c, 0)
	if err == nil || n != 3 {
		t.Errorf("pump() = %d, %v; want 3 and the write error", n, err)
	}
}

func TestDumpWriter(t *testing.T) {
	var buf bytes.Buffer
	d := dumpWriter{w: &buf, iface: "vcan0"}
	if err := d.WriteFrame(telemetry.NewFrame(telemetry.SpeedID, 0x64, 0x00)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "vcan0  1A0#6400\n" {
		t.Errorf("dump = %q", got)
	}
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"--interface=can1", "--period=5ms", "--seed=3", "--count=7", "--dump"})
	if err != nil {
		t.Fatalf("parseFlags() = %v", err)
	}
	if o.iface != "can1" || o.period != 5*time.Millisecond || o.seed != 3 || o.count != 7 || !o.dump {
		t.Errorf("parseFlags() = %+v", o)
	}

	if _, err := parseFlags([]string{"--period=0s"}); err == nil || !strings.Contains(err.Error(), "period") {
		t.Errorf("zero period accepted: %v", err)
	}
	if _, err := parseFlags([]string{"-h"}); !errors.Is(err, pflag.ErrHelp) {
		t.Errorf("-h = %v, want ErrHelp", err)
	}
}
