package report

import (
	"time"

	"github.com/kyswtn/linkprobe/internal/model"
)

// RunInfo carries run-level metadata for the summary.
type RunInfo struct {
	// Document is the path of the checked document.
	Document string `json:"document"`

	// Started is when probing began.
	Started time.Time `json:"started"`

	// Duration is the wall-clock time of the whole run.
	Duration time.Duration `json:"duration"`

	// Addresses is the number of unique addresses checked.
	Addresses int `json:"addresses"`
}

// Writer renders probe outcomes and the final summary.
//
// WriteOutcome is called once per outcome, in completion order, from the
// engine's serialized sink; implementations need no locking. Streaming
// writers render immediately, document writers may buffer until the
// summary.
type Writer interface {
	// WriteOutcome renders a single outcome.
	WriteOutcome(outcome model.Outcome) error

	// WriteSummary renders the final tally after all outcomes arrived.
	WriteSummary(run RunInfo, tally model.Tally) error
}

// MultiWriter fans outcomes and the summary out to several Writers.
// Useful for rendering to the terminal and a report file in one run.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteOutcome renders the outcome through every writer, stopping on the
// first error.
func (m *MultiWriter) WriteOutcome(outcome model.Outcome) error {
	for _, w := range m.writers {
		if err := w.WriteOutcome(outcome); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary renders the summary through every writer, stopping on the
// first error.
func (m *MultiWriter) WriteSummary(run RunInfo, tally model.Tally) error {
	for _, w := range m.writers {
		if err := w.WriteSummary(run, tally); err != nil {
			return err
		}
	}
	return nil
}
