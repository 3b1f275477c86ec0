package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderTitle(t *testing.T) {
	result := RenderTitle("Test Title")

	if !strings.Contains(ansi.Strip(result), "Test Title") {
		t.Error("Expected rendered title to contain original text")
	}
}

func TestRenderSubtitle(t *testing.T) {
	result := RenderSubtitle("Test Subtitle")

	if !strings.Contains(ansi.Strip(result), "Test Subtitle") {
		t.Error("Expected rendered subtitle to contain original text")
	}
}

func TestRenderMessages(t *testing.T) {
	tests := []struct {
		name   string
		render func(string) string
		icon   string
	}{
		{"error", RenderError, IconCross},
		{"info", RenderInfo, IconInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := ansi.Strip(tt.render("message"))
			if !strings.Contains(plain, "message") {
				t.Errorf("Expected rendered %s to contain message text, got %q", tt.name, plain)
			}
			if !strings.Contains(plain, tt.icon) {
				t.Errorf("Expected rendered %s to contain icon %q, got %q", tt.name, tt.icon, plain)
			}
		})
	}
}

func TestRenderKeyBinding(t *testing.T) {
	plain := ansi.Strip(RenderKeyBinding("enter", "next"))

	if plain != "enter next" {
		t.Errorf("Expected 'enter next', got %q", plain)
	}
}

func TestRenderLabel(t *testing.T) {
	focused := ansi.Strip(RenderLabel("Book ID", true))
	blurred := ansi.Strip(RenderLabel("Book ID", false))

	if !strings.HasPrefix(focused, IconArrow) {
		t.Errorf("Expected focused label to start with arrow, got %q", focused)
	}
	if strings.Contains(blurred, IconArrow) {
		t.Errorf("Expected blurred label without arrow, got %q", blurred)
	}
	if ansi.StringWidth(focused) != ansi.StringWidth(blurred) {
		t.Error("Expected focused and blurred labels to have equal width")
	}
}

func TestRenderButton(t *testing.T) {
	if !strings.Contains(ansi.Strip(RenderButton("Start", true)), "[ Start ]") {
		t.Error("Expected focused button text")
	}
	if !strings.Contains(ansi.Strip(RenderButton("Start", false)), "[ Start ]") {
		t.Error("Expected button text")
	}
}

func TestAdaptToTerminal_Narrow(t *testing.T) {
	AdaptToTerminal(50, 24)
	defer AdaptToTerminal(120, 40)

	if FormWidth >= 50 {
		t.Errorf("Expected form width to shrink below 50, got %d", FormWidth)
	}
	if DocStyle.GetPaddingLeft() > 1 {
		t.Error("Expected doc padding to be reduced for narrow terminal")
	}
}

func TestAdaptToTerminal_TinyWidthKeepsMinimum(t *testing.T) {
	defer AdaptToTerminal(120, 40)

	for _, width := range []int{1, 6, 8, 20} {
		AdaptToTerminal(width, 10)
		if FormWidth != minFormWidth {
			t.Errorf("width %d: expected form width %d, got %d", width, minFormWidth, FormWidth)
		}
	}
}

func TestAdaptToTerminal_Wide(t *testing.T) {
	AdaptToTerminal(50, 24)
	AdaptToTerminal(120, 40)

	if FormWidth != defaultFormWidth {
		t.Errorf("Expected form width to return to %d, got %d", defaultFormWidth, FormWidth)
	}
	if DocStyle.GetPaddingLeft() != 2 {
		t.Error("Expected default doc padding for wide terminal")
	}
}

func TestIcons(t *testing.T) {
	icons := map[string]string{
		"IconCross": IconCross,
		"IconInfo":  IconInfo,
		"IconArrow": IconArrow,
		"IconBook":  IconBook,
	}

	for name, icon := range icons {
		if icon == "" {
			t.Errorf("Expected %s to be non-empty", name)
		}
	}
}
