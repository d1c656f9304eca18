package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(30); got != 24 {
		t.Errorf("ContentHeight(30) = %d, want 24", got)
	}
	if got := ContentHeight(4); got != 0 {
		t.Errorf("ContentHeight(4) = %d, want 0", got)
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Plan", HeaderStats{Completed: 3, Due: 2}, 100)
	for _, want := range []string{Brand, "Plan", "3 done", "2 due"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{"enter", "Select"}, {"esc", "Back"}}, 80)
	if !strings.Contains(out, "enter") || !strings.Contains(out, "Back") {
		t.Errorf("footer missing hints:\n%s", out)
	}
}
