package telemetry

import "sync/atomic"

// State holds the latest decoded value of each channel.
//
// Each field is written and read atomically on its own: a reader always
// sees some completed write, never a torn value. There is no ordering
// between the two fields, so a reader may pair a fresh speed with an
// older rpm. The zero value is ready to use and reads as zero.
type State struct {
	speed atomic.Int64
	rpm   atomic.Int64
}

// Snapshot is a point-in-time copy of both channels.
// The fields may come from different moments.
type Snapshot struct {
	Speed int
	RPM   int
}

// SetSpeed stores the vehicle speed in km/h.
func (s *State) SetSpeed(v int) { s.speed.Store(int64(v)) }

// Speed returns the last stored vehicle speed.
func (s *State) Speed() int { return int(s.speed.Load()) }

// SetRPM stores the engine speed.
func (s *State) SetRPM(v int) { s.rpm.Store(int64(v)) }

// RPM returns the last stored engine speed.
func (s *State) RPM() int { return int(s.rpm.Load()) }

// Set stores v on channel ch. ChannelNone is ignored.
func (s *State) Set(ch Channel, v int) {
	switch ch {
	case ChannelSpeed:
		s.SetSpeed(v)
	case ChannelRPM:
		s.SetRPM(v)
	}
}

// Snapshot reads both channels.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Speed: s.Speed(), RPM: s.RPM()}
}
