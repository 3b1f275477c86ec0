package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/aquamarine5/qqbook-cli/internal/operations"
)

const spinnerInterval = 100 * time.Millisecond

// exportProgress shows that the exporter is running. It is driven by the
// export state hook: it starts on Invoking and stops on any terminal state.
type exportProgress struct {
	mode  ProgressMode
	w     io.Writer
	color bool

	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
}

func newExportProgress(mode ProgressMode, w io.Writer, colorEnabled bool) *exportProgress {
	if mode == ProgressAuto && !isTerminal(w) {
		mode = ProgressSimple
	}
	return &exportProgress{mode: mode, w: w, color: colorEnabled}
}

// OnState is an operations.ExportOperation state hook.
func (p *exportProgress) OnState(s operations.ExportState) {
	switch s {
	case operations.StateInvoking:
		p.start()
	case operations.StateSucceeded, operations.StateFailed, operations.StateCancelled:
		p.stop()
	}
}

func (p *exportProgress) start() {
	switch p.mode {
	case ProgressSimple:
		fmt.Fprintln(p.w, "Exporting, please wait...")
	case ProgressAuto:
		p.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Exporting"),
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionThrottle(spinnerInterval),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionEnableColorCodes(p.color),
		)
		p.done = make(chan struct{})
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			ticker := time.NewTicker(spinnerInterval)
			defer ticker.Stop()
			for {
				select {
				case <-p.done:
					return
				case <-ticker.C:
					_ = p.bar.Add(1)
				}
			}
		}()
	}
}

func (p *exportProgress) stop() {
	if p.bar == nil {
		return
	}
	close(p.done)
	p.wg.Wait()
	_ = p.bar.Finish()
	p.bar = nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
