package report

import (
	"encoding/json"
	"io"

	"github.com/kyswtn/linkprobe/internal/model"
)

// JSONWriter buffers outcomes and emits a single JSON document at
// summary time. Designed for tool integration and programmatic
// processing; standard encoding/json is sufficient here and keeps the
// output stable across versions.
type JSONWriter struct {
	out      io.Writer
	indent   bool
	outcomes []model.Outcome
}

// JSONOption configures a JSONWriter.
type JSONOption func(*JSONWriter)

// WithPrettyPrint enables indented JSON output.
func WithPrettyPrint() JSONOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that writes to out.
func NewJSONWriter(out io.Writer, opts ...JSONOption) *JSONWriter {
	w := &JSONWriter{out: out}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonReport is the serialized document shape.
type jsonReport struct {
	RunInfo
	Tally    model.Tally     `json:"tally"`
	Outcomes []model.Outcome `json:"outcomes"`
}

// WriteOutcome buffers the outcome for the final document.
func (w *JSONWriter) WriteOutcome(outcome model.Outcome) error {
	w.outcomes = append(w.outcomes, outcome)
	return nil
}

// WriteSummary emits the complete report as one JSON document.
func (w *JSONWriter) WriteSummary(run RunInfo, tally model.Tally) error {
	doc := jsonReport{
		RunInfo:  run,
		Tally:    tally,
		Outcomes: w.outcomes,
	}
	if doc.Outcomes == nil {
		doc.Outcomes = []model.Outcome{}
	}

	enc := json.NewEncoder(w.out)
	if w.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}
