package recording

import (
	"strings"
	"testing"

	"github.com/gogpu/cluster"
)

func TestCommandType_String(t *testing.T) {
	tests := []struct {
		t    CommandType
		want string
	}{
		{CmdClear, "Clear"},
		{CmdLine, "Line"},
		{CmdPresent, "Present"},
		{CommandType(99), "CommandType(99)"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestCommand_String(t *testing.T) {
	c := Command{Type: CmdText, P1: cluster.Pt(1, 2), Text: "88", Tier: cluster.TierLarge}
	if got := c.String(); !strings.Contains(got, `"88"`) || !strings.Contains(got, "large") {
		t.Errorf("String() = %q", got)
	}
	c = Command{Type: CmdLine, P2: cluster.Pt(3, 4), Thickness: 8}
	if got := c.String(); got != "Line(0.00,0.00 -> 3.00,4.00 w=8)" {
		t.Errorf("String() = %q", got)
	}
}
