package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
)

// Source yields bus frames.
type Source interface {
	// ReadFrame blocks until a frame arrives. ErrTimeout means no frame
	// arrived in time. Errors other than ErrTimeout, ErrSourceClosed and
	// io.EOF are treated as transient.
	ReadFrame() (Frame, error)
}

// Stats counts what a Link has done with the frames it read.
type Stats struct {
	Read     uint64 // frames returned by the source
	Decoded  uint64 // frames stored into the state
	Ignored  uint64 // frames with an unrecognized id
	Rejected uint64 // frames too short for their channel
	Errors   uint64 // failed reads
}

// Link decodes frames from a Source into a State.
type Link struct {
	src   Source
	state *State

	read     atomic.Uint64
	decoded  atomic.Uint64
	ignored  atomic.Uint64
	rejected atomic.Uint64
	errs     atomic.Uint64
}

// NewLink creates a link from src into state.
func NewLink(src Source, state *State) *Link {
	return &Link{src: src, state: state}
}

// Run reads and decodes frames until ctx is cancelled or the source is
// closed. Cancellation is observed between reads, so Run can outlive ctx
// by one blocking read.
//
// Run returns nil on cancellation. If the source closes while ctx is still
// live, Run returns an error wrapping ErrSourceClosed.
func (l *Link) Run(ctx context.Context) error {
	log := Logger()
	log.Info("telemetry: link started")

	streak := 0
	for ctx.Err() == nil {
		f, err := l.src.ReadFrame()
		if err != nil {
			if errors.Is(err, ErrSourceClosed) || errors.Is(err, io.EOF) {
				if ctx.Err() != nil {
					break
				}
				return fmt.Errorf("telemetry: link stopped: %w", ErrSourceClosed)
			}
			if errors.Is(err, ErrTimeout) {
				continue
			}
			l.errs.Add(1)
			if streak == 0 {
				log.Warn("telemetry: read failed, retrying", "err", err)
			}
			streak++
			continue
		}
		if streak > 0 {
			log.Info("telemetry: reads recovered", "failed", streak)
			streak = 0
		}
		l.Handle(f)
	}

	log.Info("telemetry: link stopped", "decoded", l.decoded.Load())
	return nil
}

// Handle decodes one frame into the state.
func (l *Link) Handle(f Frame) {
	l.read.Add(1)
	ch, v, err := Decode(f)
	switch {
	case err != nil:
		l.rejected.Add(1)
		Logger().Debug("telemetry: frame rejected", "frame", f.String(), "err", err)
	case ch == ChannelNone:
		l.ignored.Add(1)
	default:
		l.state.Set(ch, v)
		l.decoded.Add(1)
	}
}

// Stats returns the link counters. Safe to call while Run is active.
func (l *Link) Stats() Stats {
	return Stats{
		Read:     l.read.Load(),
		Decoded:  l.decoded.Load(),
		Ignored:  l.ignored.Load(),
		Rejected: l.rejected.Load(),
		Errors:   l.errs.Load(),
	}
}
