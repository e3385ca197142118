// Command cansim broadcasts a simulated drive on a SocketCAN interface.
//
// Every period it sends one vehicle speed frame (id 0x1A0) and one engine
// speed frame (id 0x0AA), the pair the cluster displays. Speed ramps up to
// 180 km/h and back down with random steps; engine speed follows at
// 800 rpm plus 25 rpm per km/h with some noise.
//
// Usage:
//
//	cansim [--interface vcan0] [--period 10ms] [--seed 1] [--count 0] [--dump]
//
// With --dump frames are printed in candump notation instead of being sent.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/gogpu/cluster/internal/logging"
	"github.com/gogpu/cluster/socketcan"
	"github.com/gogpu/cluster/telemetry"
)

type options struct {
	iface     string
	period    time.Duration
	seed      uint64
	count     uint64
	dump      bool
	logLevel  string
	logFormat string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := pflag.NewFlagSet("cansim", pflag.ContinueOnError)
	fs.StringVar(&o.iface, "interface", "vcan0", "SocketCAN interface")
	fs.DurationVar(&o.period, "period", 10*time.Millisecond, "time between frame pairs")
	fs.Uint64Var(&o.seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	fs.Uint64Var(&o.count, "count", 0, "stop after this many frame pairs, 0 runs until interrupted")
	fs.BoolVar(&o.dump, "dump", false, "print frames to stdout instead of sending them")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level")
	fs.StringVar(&o.logFormat, "log-format", "text", "log format: text or json")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.period <= 0 {
		return o, fmt.Errorf("cansim: period must be positive, got %v", o.period)
	}
	return o, nil
}

// frameWriter sends frames somewhere.
type frameWriter interface {
	WriteFrame(telemetry.Frame) error
}

// dumpWriter prints frames in candump notation.
type dumpWriter struct {
	w     io.Writer
	iface string
}

func (d dumpWriter) WriteFrame(f telemetry.Frame) error {
	_, err := fmt.Fprintf(d.w, "%s  %s\n", d.iface, f)
	return err
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(logging.Options{Level: o.logLevel, Format: o.logFormat})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o, log.Logger); err != nil {
		log.Error("cansim: fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, log *slog.Logger) error {
	var w frameWriter
	if o.dump {
		w = dumpWriter{w: os.Stdout, iface: o.iface}
	} else {
		conn, err := socketcan.Dial(o.iface)
		if err != nil {
			return err
		}
		defer conn.Close()
		w = conn
	}

	sim := telemetry.NewSimulator(o.seed, o.period)
	defer sim.Close()
	go func() {
		<-ctx.Done()
		_ = sim.Close()
	}()

	log.Info("cansim: sending", "interface", o.iface, "period", o.period, "seed", o.seed)
	sent, err := pump(sim, w, o.count*2)
	log.Info("cansim: stopped", "frames", sent)
	return err
}

// pump copies frames from src to w until src closes or limit frames were
// sent (0 means no limit). It returns the number of frames sent.
func pump(src telemetry.Source, w frameWriter, limit uint64) (uint64, error) {
	var sent uint64
	for limit == 0 || sent < limit {
		f, err := src.ReadFrame()
		if errors.Is(err, telemetry.ErrSourceClosed) {
			return sent, nil
		}
		if err != nil {
			return sent, err
		}
		if err := w.WriteFrame(f); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}
