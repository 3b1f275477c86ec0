package styles

import "github.com/charmbracelet/lipgloss"

// Semantic Colors
var (
	ColorError   = lipgloss.AdaptiveColor{Light: "#E06C75", Dark: "#E06C75"} // Red
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#98C379", Dark: "#98C379"} // Green
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#61AFEF", Dark: "#61AFEF"} // Blue
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#56B6C2", Dark: "#56B6C2"} // Cyan
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#5C6370", Dark: "#5C6370"} // Gray
)

// Base Styles
var (
	// BaseStyle is the foundation for all text styles
	BaseStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ErrorStyle = BaseStyle.
			Foreground(ColorError).
			Bold(true)

	InfoStyle = BaseStyle.
			Foreground(ColorInfo)
)

// Component Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			MarginBottom(1).
			Padding(0, 1)

	// BorderStyle wraps the prompt form
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	// LabelStyle for form field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// FocusedLabelStyle for the label of the focused field
	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	// ButtonStyle for the submit button
	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 2)

	// FocusedButtonStyle for the submit button when focused
	FocusedButtonStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true).
				Padding(0, 2)

	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	DescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// DocStyle for the main document container
var DocStyle = lipgloss.NewStyle().
	Padding(1, 2)

const (
	defaultFormWidth = 64
	minFormWidth     = 20
)

// FormWidth is the width of the prompt form box.
var FormWidth = defaultFormWidth

// Icon strings (using Unicode symbols)
const (
	IconCross = "✗"
	IconInfo  = "ℹ"
	IconArrow = "→"
	IconBook  = "📚"
)

// RenderTitle renders a styled title
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a styled subtitle
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderError renders an error message with icon
func RenderError(text string) string {
	return ErrorStyle.Render(IconCross + " " + text)
}

// RenderInfo renders an info message with icon
func RenderInfo(text string) string {
	return InfoStyle.Render(IconInfo + " " + text)
}

// RenderKeyBinding renders a keyboard shortcut
func RenderKeyBinding(key, desc string) string {
	return KeyStyle.Render(key) + " " + DescStyle.Render(desc)
}

// RenderLabel renders a form label, highlighted when focused
func RenderLabel(text string, focused bool) string {
	if focused {
		return FocusedLabelStyle.Render(IconArrow + " " + text)
	}
	return LabelStyle.Render("  " + text)
}

// RenderButton renders a form button, highlighted when focused
func RenderButton(text string, focused bool) string {
	if focused {
		return FocusedButtonStyle.Render("[ " + text + " ]")
	}
	return ButtonStyle.Render("[ " + text + " ]")
}

// AdaptToTerminal adjusts styles based on terminal width and height
func AdaptToTerminal(width, height int) {
	FormWidth = defaultFormWidth
	if width > 0 && width < defaultFormWidth+8 {
		FormWidth = max(width-8, minFormWidth)
	}

	// Adjust document padding for narrow terminals
	if width < 60 {
		DocStyle = DocStyle.Padding(0, 1)
	} else {
		DocStyle = DocStyle.Padding(1, 2)
	}
}
