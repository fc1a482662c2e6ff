package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/kyswtn/linkprobe/internal/model"
)

// maxReasonLen caps connection-error descriptions in terminal output.
// The full text stays on the Outcome for other writers and the database.
const maxReasonLen = 50

// TerminalWriter streams one colored line per outcome to a terminal,
// followed by a summary block. Good outcomes render green, error
// responses and timeouts yellow, server errors and connection failures
// red, mirroring the marker colors operators expect from link checkers.
type TerminalWriter struct {
	out io.Writer

	// verbose adds per-probe latency to each line.
	verbose bool

	good    *color.Color
	warn    *color.Color
	bad     *color.Color
	heading *color.Color
}

// TerminalOption configures a TerminalWriter.
type TerminalOption func(*TerminalWriter)

// WithVerboseOutput adds probe latency to each outcome line.
func WithVerboseOutput(verbose bool) TerminalOption {
	return func(w *TerminalWriter) {
		w.verbose = verbose
	}
}

// WithoutColor disables ANSI colors, for piping output to files or tools.
func WithoutColor() TerminalOption {
	return func(w *TerminalWriter) {
		for _, c := range []*color.Color{w.good, w.warn, w.bad, w.heading} {
			c.DisableColor()
		}
	}
}

// NewTerminalWriter creates a TerminalWriter that writes to out.
func NewTerminalWriter(out io.Writer, opts ...TerminalOption) *TerminalWriter {
	w := &TerminalWriter{
		out:     out,
		good:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed),
		heading: color.New(color.FgBlue),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteOutcome renders one line: a colored status marker followed by the
// address.
func (w *TerminalWriter) WriteOutcome(outcome model.Outcome) error {
	marker := fmt.Sprintf("[%d %s]", outcome.Code, truncate(outcome.Reason, maxReasonLen))

	var err error
	if w.verbose {
		_, err = fmt.Fprintf(w.out, "%s %s (%s)\n",
			w.markerColor(outcome).Sprint(marker), outcome.Address, outcome.Duration.Round(time.Millisecond))
	} else {
		_, err = fmt.Fprintf(w.out, "%s %s\n",
			w.markerColor(outcome).Sprint(marker), outcome.Address)
	}
	return err
}

// WriteSummary renders the final summary block.
func (w *TerminalWriter) WriteSummary(run RunInfo, tally model.Tally) error {
	if _, err := fmt.Fprintf(w.out, "\n%s\n", w.heading.Sprint("--- Summary ---")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.out, "Total links checked: %d\n", tally.Total()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.out, "%s\n", w.good.Sprintf("Good:   %d", tally.Good)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.out, "%s\n", w.warn.Sprintf("Bad:    %d", tally.Bad)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.out, "%s\n", w.bad.Sprintf("Errors: %d", tally.Error)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w.out, "Checked %s in %s\n", run.Document, run.Duration.Round(time.Millisecond))
	return err
}

// markerColor picks the line color for an outcome. Timeouts and 4xx
// responses render yellow like the bad bucket; 5xx and connection
// failures render red.
func (w *TerminalWriter) markerColor(outcome model.Outcome) *color.Color {
	switch {
	case outcome.Status == model.StatusSuccess:
		return w.good
	case outcome.Status == model.StatusTimeout:
		return w.warn
	case outcome.Code >= 400 && outcome.Code < 500:
		return w.warn
	default:
		return w.bad
	}
}

// truncate caps s at n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
