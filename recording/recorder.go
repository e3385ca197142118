package recording

import (
	"unicode/utf8"

	"github.com/gogpu/cluster"
)

// Recorder is a cluster.Canvas that stores every call it receives.
//
// Text is measured with fixed metrics: each rune advances 0.6 of the font
// size and lines are 1.2 font sizes tall.
//
// Recorder is NOT safe for concurrent use.
type Recorder struct {
	commands []Command
	sizes    cluster.FontSizes
	frames   int
	onFrame  func(*Recorder) error
}

// Verify at compile time that Recorder implements cluster.Canvas.
var _ cluster.Canvas = (*Recorder)(nil)

// Option configures a Recorder.
type Option func(*Recorder)

// WithFontSizes sets the sizes used by MeasureText.
func WithFontSizes(s cluster.FontSizes) Option {
	return func(r *Recorder) {
		r.sizes = s
	}
}

// WithPresentHook sets a function called by Present with the finished
// frame. Its error is returned from Present.
func WithPresentHook(fn func(*Recorder) error) Option {
	return func(r *Recorder) {
		r.onFrame = fn
	}
}

// NewRecorder creates an empty recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{sizes: cluster.DefaultFontSizes()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clear records a clear and drops everything recorded before it.
func (r *Recorder) Clear(c cluster.RGBA) {
	r.commands = append(r.commands[:0], Command{Type: CmdClear, Color: c})
}

// DrawPoint records a point.
func (r *Recorder) DrawPoint(p cluster.Point, c cluster.RGBA) {
	r.commands = append(r.commands, Command{Type: CmdPoint, P1: p, Color: c})
}

// DrawLine records a line.
func (r *Recorder) DrawLine(p1, p2 cluster.Point, thickness float64, c cluster.RGBA) {
	r.commands = append(r.commands, Command{Type: CmdLine, P1: p1, P2: p2, Thickness: thickness, Color: c})
}

// DrawCircle records a circle outline.
func (r *Recorder) DrawCircle(center cluster.Point, radius float64, c cluster.RGBA, alpha uint8) {
	r.commands = append(r.commands, Command{Type: CmdCircle, P1: center, Radius: radius, Color: c, Alpha: alpha})
}

// MeasureText returns fixed-pitch metrics for s.
func (r *Recorder) MeasureText(s string, tier cluster.FontTier) (w, h float64) {
	size := r.size(tier)
	return float64(utf8.RuneCountInString(s)) * size * 0.6, size * 1.2
}

// DrawText records a text draw.
func (r *Recorder) DrawText(s string, p cluster.Point, tier cluster.FontTier, c cluster.RGBA) {
	r.commands = append(r.commands, Command{Type: CmdText, P1: p, Text: s, Tier: tier, Color: c})
}

// Present records the end of a frame and runs the present hook.
func (r *Recorder) Present() error {
	r.commands = append(r.commands, Command{Type: CmdPresent})
	r.frames++
	if r.onFrame != nil {
		return r.onFrame(r)
	}
	return nil
}

// Commands returns the commands recorded since the last Clear.
// The slice is reused by the recorder; copy it to keep it across frames.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Filter returns the recorded commands of type t, in order.
func (r *Recorder) Filter(t CommandType) []Command {
	var out []Command
	for _, c := range r.commands {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of recorded commands of type t.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type == t {
			n++
		}
	}
	return n
}

// Frames returns how many times Present was called.
func (r *Recorder) Frames() int {
	return r.frames
}

// Reset drops all commands and the frame count.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.frames = 0
}

// Playback replays the recorded commands onto dst in order.
// Present commands are forwarded, so a full frame is presented on dst.
func (r *Recorder) Playback(dst cluster.Canvas) error {
	for _, c := range r.commands {
		switch c.Type {
		case CmdClear:
			dst.Clear(c.Color)
		case CmdPoint:
			dst.DrawPoint(c.P1, c.Color)
		case CmdLine:
			dst.DrawLine(c.P1, c.P2, c.Thickness, c.Color)
		case CmdCircle:
			dst.DrawCircle(c.P1, c.Radius, c.Color, c.Alpha)
		case CmdText:
			dst.DrawText(c.Text, c.P1, c.Tier, c.Color)
		case CmdPresent:
			if err := dst.Present(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Recorder) size(tier cluster.FontTier) float64 {
	if int(tier) < len(r.sizes) {
		return r.sizes[tier]
	}
	return r.sizes[cluster.TierNormal]
}
