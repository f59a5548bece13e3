package commands

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// withSpinner runs fn behind an indeterminate spinner on stderr. The
// spinner is skipped when output is piped or color is disabled, so scripted
// runs stay clean.
func withSpinner(description string, enabled bool, fn func() error) error {
	if !enabled || !term.IsTerminal(int(os.Stderr.Fd())) {
		return fn()
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	err := fn()
	close(done)
	_ = bar.Finish()
	return err
}
