package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aquamarine5/qqbook-cli/internal/operations"
	"github.com/aquamarine5/qqbook-cli/internal/tui/styles"
)

// Form rows, in focus order.
const (
	fieldBookID = iota
	fieldIgnore
	fieldOutput
	fieldVerbose
	fieldSubmit
	fieldCount
)

// ExportAnswers holds what the user entered in the export form.
type ExportAnswers struct {
	BookID    string
	Ignore    string // Comma separated chapter ids, may be empty
	OutputDir string // Empty means the default location
	Verbose   bool
}

// fieldHints are shown under the focused row.
var fieldHints = map[int]string{
	fieldBookID:  "The number in the book's page address",
	fieldIgnore:  "Chapter ids separated by commas",
	fieldOutput:  "Leave empty for out/<book id>",
	fieldVerbose: "Log the exporter command before it runs",
}

// ExportFormModel asks for the parameters of one export.
type ExportFormModel struct {
	inputs    []textinput.Model
	verbose   bool
	focused   int
	err       string
	submitted bool
	aborted   bool
	width     int
	height    int
}

// NewExportFormModel creates the export form with the book id focused.
func NewExportFormModel() ExportFormModel {
	bookID := textinput.New()
	bookID.Placeholder = "123456"
	bookID.CharLimit = 32
	bookID.Prompt = ""

	ignore := textinput.New()
	ignore.Placeholder = "1,2,3 (leave empty to export all)"
	ignore.Prompt = ""

	output := textinput.New()
	output.Placeholder = "out/<book id>"
	output.Prompt = ""

	m := ExportFormModel{
		inputs: []textinput.Model{bookID, ignore, output},
		width:  80,
		height: 24,
	}
	m.inputs[fieldBookID].Focus()
	return m
}

// Init initializes the model
func (m ExportFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state
func (m ExportFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		styles.AdaptToTerminal(m.width, m.height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit

		case "tab", "down":
			return m, m.setFocus(m.focused + 1)

		case "shift+tab", "up":
			return m, m.setFocus(m.focused - 1)

		case "enter":
			if m.focused == fieldSubmit {
				return m.submit()
			}
			return m, m.setFocus(m.focused + 1)
		}

		if m.focused == fieldVerbose {
			switch msg.String() {
			case " ":
				m.verbose = !m.verbose
			case "y", "Y":
				m.verbose = true
			case "n", "N":
				m.verbose = false
			}
			return m, nil
		}
	}

	if m.focused < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		if m.focused == fieldBookID {
			m.err = ""
		}
		return m, cmd
	}

	return m, nil
}

// setFocus moves focus to row i, wrapping around.
func (m *ExportFormModel) setFocus(i int) tea.Cmd {
	m.focused = (i + fieldCount) % fieldCount

	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focused {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m ExportFormModel) submit() (tea.Model, tea.Cmd) {
	if err := operations.ValidateBookID(m.Answers().BookID); err != nil {
		m.err = "Book ID must be a number, e.g. 123456"
		cmd := m.setFocus(fieldBookID)
		return m, cmd
	}

	m.submitted = true
	return m, tea.Quit
}

// Answers returns the current form values with surrounding blanks removed.
func (m ExportFormModel) Answers() ExportAnswers {
	return ExportAnswers{
		BookID:    strings.TrimSpace(m.inputs[fieldBookID].Value()),
		Ignore:    strings.TrimSpace(m.inputs[fieldIgnore].Value()),
		OutputDir: strings.TrimSpace(m.inputs[fieldOutput].Value()),
		Verbose:   m.verbose,
	}
}

// Submitted reports whether the form was completed.
func (m ExportFormModel) Submitted() bool {
	return m.submitted
}

// Aborted reports whether the user left the form.
func (m ExportFormModel) Aborted() bool {
	return m.aborted
}

// View renders the form
func (m ExportFormModel) View() string {
	if m.submitted || m.aborted {
		return ""
	}

	title := styles.RenderTitle(styles.IconBook + " QQ Book Export")
	subtitle := styles.RenderSubtitle("Enter the book to export")

	labels := []string{"Book ID", "Skip chapters", "Output directory"}
	var rows []string
	for i, label := range labels {
		rows = append(rows, styles.RenderLabel(label, m.focused == i))
		rows = append(rows, "    "+m.inputs[i].View())
		if i == fieldBookID && m.err != "" {
			rows = append(rows, "  "+styles.RenderError(m.err))
		} else if m.focused == i {
			rows = append(rows, "  "+styles.RenderInfo(fieldHints[i]))
		}
		rows = append(rows, "")
	}

	check := "[ ]"
	if m.verbose {
		check = "[x]"
	}
	rows = append(rows, styles.RenderLabel(check+" Verbose output", m.focused == fieldVerbose))
	if m.focused == fieldVerbose {
		rows = append(rows, "  "+styles.RenderInfo(fieldHints[fieldVerbose]))
	}
	rows = append(rows, "")
	rows = append(rows, styles.RenderButton("Start export", m.focused == fieldSubmit))

	form := styles.BorderStyle.
		Width(styles.FormWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	help := styles.RenderKeyBinding("tab/↓", "next") + "  " +
		styles.RenderKeyBinding("shift+tab/↑", "previous") + "  " +
		styles.RenderKeyBinding("space", "toggle") + "  " +
		styles.RenderKeyBinding("enter", "confirm") + "  " +
		styles.RenderKeyBinding("esc", "cancel")

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, subtitle, form, "", help))
}
