package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aquamarine5/qqbook-cli/internal/tui/models"
)

func update(m tea.Model, msg tea.Msg) tea.Model {
	next, _ := m.Update(msg)
	return next
}

func TestAnswersFrom_Submitted(t *testing.T) {
	var m tea.Model = models.NewExportFormModel()
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("42")})
	m = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	answers, err := answersFrom(m)
	if err != nil {
		t.Fatalf("answersFrom() error = %v", err)
	}
	if answers.BookID != "42" {
		t.Errorf("expected book id 42, got %q", answers.BookID)
	}
	if answers.Ignore != "" || answers.OutputDir != "" || answers.Verbose {
		t.Errorf("expected defaults for other answers, got %+v", answers)
	}
}

func TestAnswersFrom_Aborted(t *testing.T) {
	var m tea.Model = models.NewExportFormModel()
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})

	_, err := answersFrom(m)
	if !errors.Is(err, ErrAborted) {
		t.Errorf("expected ErrAborted, got %v", err)
	}
}

func TestAnswersFrom_ClosedWithoutSubmit(t *testing.T) {
	var m tea.Model = models.NewExportFormModel()
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("42")})

	_, err := answersFrom(m)
	if !errors.Is(err, errPromptClosed) {
		t.Errorf("expected errPromptClosed, got %v", err)
	}
	if errors.Is(err, ErrAborted) {
		t.Error("a form that was not aborted must not report ErrAborted")
	}
}

type otherModel struct{}

func (otherModel) Init() tea.Cmd                       { return nil }
func (otherModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return otherModel{}, nil }
func (otherModel) View() string                        { return "" }

func TestAnswersFrom_UnexpectedModel(t *testing.T) {
	if _, err := answersFrom(otherModel{}); err == nil {
		t.Error("expected error for unexpected model")
	}
}
