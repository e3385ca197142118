package telemetry

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Simulated drive cycle.
const (
	SimMaxSpeed = 180 // km/h
	SimIdleRPM  = 800
	simRPMPerKM = 25 // engine rpm gained per km/h
)

// Simulator is a Source producing a synthetic drive: the car accelerates
// to SimMaxSpeed, then slows down, occasionally accelerating again once
// below half speed. Each step yields a speed frame followed by an rpm frame.
//
// ReadFrame may be called from one goroutine while Close is called from
// another.
type Simulator struct {
	rng        *rand.Rand
	speed      float64
	increasing bool
	pending    []Frame

	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// Verify at compile time that Simulator implements Source.
var _ Source = (*Simulator)(nil)

// NewSimulator creates a simulator seeded with seed. With a positive period
// each step waits for the next tick, like a bus broadcasting at that rate;
// with period 0 frames are produced as fast as they are read.
func NewSimulator(seed uint64, period time.Duration) *Simulator {
	s := &Simulator{
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		increasing: true,
		done:       make(chan struct{}),
	}
	if period > 0 {
		s.ticker = time.NewTicker(period)
	}
	return s
}

// Step advances the drive by one tick and returns the new speed and rpm.
func (s *Simulator) Step() (speed float64, rpm int) {
	if s.increasing {
		s.speed += s.uniform(0.5, 2.0)
		if s.speed >= SimMaxSpeed {
			s.increasing = false
		}
	} else {
		s.speed -= s.uniform(0.5, 5.0)
		switch {
		case s.speed <= 0:
			s.increasing = true
		case s.speed < SimMaxSpeed/2 && s.rng.Float64() < 0.1:
			s.increasing = true
		}
	}
	s.speed = min(max(s.speed, 0), SimMaxSpeed)

	r := SimIdleRPM + s.speed*simRPMPerKM + s.uniform(-100, 100)
	return s.speed, max(SimIdleRPM, int(r))
}

// ReadFrame returns the next simulated frame.
func (s *Simulator) ReadFrame() (Frame, error) {
	select {
	case <-s.done:
		return Frame{}, ErrSourceClosed
	default:
	}

	if len(s.pending) == 0 {
		if s.ticker != nil {
			select {
			case <-s.done:
				return Frame{}, ErrSourceClosed
			case <-s.ticker.C:
			}
		}
		speed, rpm := s.Step()
		sf, err := EncodeSpeed(speed)
		if err != nil {
			return Frame{}, err
		}
		rf, err := EncodeRPM(float64(rpm))
		if err != nil {
			return Frame{}, err
		}
		s.pending = append(s.pending, sf, rf)
	}

	f := s.pending[0]
	s.pending = s.pending[1:]
	return f, nil
}

// Close stops the simulator. Pending and future reads return
// ErrSourceClosed.
func (s *Simulator) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.ticker != nil {
			s.ticker.Stop()
		}
	})
	return nil
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
