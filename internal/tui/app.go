// Package tui holds the interactive prompt used when qqbook is started
// without a book id on a terminal.
package tui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aquamarine5/qqbook-cli/internal/tui/models"
)

// ErrAborted is returned when the user leaves the prompt without submitting.
var ErrAborted = errors.New("prompt aborted by user")

var errPromptClosed = errors.New("prompt closed before the form was submitted")

// PromptExport asks for the export parameters on in/out. It returns
// ErrAborted when the user cancels the form.
func PromptExport(in io.Reader, out io.Writer) (models.ExportAnswers, error) {
	p := tea.NewProgram(models.NewExportFormModel(), tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return models.ExportAnswers{}, fmt.Errorf("error running prompt: %w", err)
	}

	return answersFrom(final)
}

func answersFrom(final tea.Model) (models.ExportAnswers, error) {
	form, ok := final.(models.ExportFormModel)
	if !ok {
		return models.ExportAnswers{}, fmt.Errorf("unexpected prompt model %T", final)
	}
	switch {
	case form.Aborted():
		return models.ExportAnswers{}, ErrAborted
	case !form.Submitted():
		return models.ExportAnswers{}, errPromptClosed
	}
	return form.Answers(), nil
}
