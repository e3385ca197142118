package recording

import (
	"fmt"

	"github.com/gogpu/cluster"
)

// CommandType identifies the canvas operation a command captured.
type CommandType uint8

const (
	CmdClear   CommandType = iota // Clear the surface
	CmdPoint                      // Plot a single point
	CmdLine                       // Draw a thick line
	CmdCircle                     // Draw an antialiased circle outline
	CmdText                       // Draw text
	CmdPresent                    // Present the frame
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdClear:   "Clear",
	CmdPoint:   "Point",
	CmdLine:    "Line",
	CmdCircle:  "Circle",
	CmdText:    "Text",
	CmdPresent: "Present",
}

// String returns the command name.
func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return fmt.Sprintf("CommandType(%d)", t)
}

// Command is one captured canvas call. Only the fields relevant to Type are
// set.
type Command struct {
	Type CommandType

	// P1 is the point, line start, circle center or text origin.
	P1 cluster.Point
	// P2 is the line end.
	P2 cluster.Point

	Thickness float64
	Radius    float64
	Color     cluster.RGBA
	Alpha     uint8

	Text string
	Tier cluster.FontTier
}

// String returns a compact description for test failure messages.
func (c Command) String() string {
	switch c.Type {
	case CmdLine:
		return fmt.Sprintf("Line(%.2f,%.2f -> %.2f,%.2f w=%g)", c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.Thickness)
	case CmdCircle:
		return fmt.Sprintf("Circle(%.2f,%.2f r=%g a=%d)", c.P1.X, c.P1.Y, c.Radius, c.Alpha)
	case CmdText:
		return fmt.Sprintf("Text(%q at %.2f,%.2f %s)", c.Text, c.P1.X, c.P1.Y, c.Tier)
	case CmdPoint:
		return fmt.Sprintf("Point(%.2f,%.2f)", c.P1.X, c.P1.Y)
	default:
		return c.Type.String()
	}
}
