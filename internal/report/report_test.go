package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kyswtn/linkprobe/internal/model"
)

func testRunInfo() RunInfo {
	return RunInfo{
		Document:  "README.md",
		Started:   time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Addresses: 3,
	}
}

// TestTerminalWriterOutcomeLines tests the per-outcome line format.
func TestTerminalWriterOutcomeLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome model.Outcome
		want    string
	}{
		{
			name:    "success line",
			outcome: model.Outcome{Address: "https://example.com", Status: model.StatusSuccess, Code: 200, Reason: "OK"},
			want:    "[200 OK] https://example.com\n",
		},
		{
			name:    "error response line",
			outcome: model.Outcome{Address: "http://missing.example", Status: model.StatusClientServerError, Code: 404, Reason: "Client/Server Error"},
			want:    "[404 Client/Server Error] http://missing.example\n",
		},
		{
			name:    "timeout line",
			outcome: model.Outcome{Address: "https://slow.example", Status: model.StatusTimeout, Code: 408, Reason: "Timeout"},
			want:    "[408 Timeout] https://slow.example\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w := NewTerminalWriter(&buf, WithoutColor())
			if err := w.WriteOutcome(tt.outcome); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestTerminalWriterTruncatesReason tests that long connection-error
// reasons are capped at render time.
func TestTerminalWriterTruncatesReason(t *testing.T) {
	t.Parallel()

	reason := strings.Repeat("x", 80)
	outcome := model.Outcome{
		Address: "https://refused.example",
		Status:  model.StatusConnectionError,
		Code:    0,
		Reason:  reason,
	}

	var buf bytes.Buffer
	w := NewTerminalWriter(&buf, WithoutColor())
	if err := w.WriteOutcome(outcome); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "[0 " + strings.Repeat("x", 50) + "...] https://refused.example\n"
	if got := buf.String(); got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
	// The outcome itself keeps the full text.
	if outcome.Reason != reason {
		t.Error("outcome reason was mutated by rendering")
	}
}

// TestTerminalWriterSummary tests the summary block.
func TestTerminalWriterSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewTerminalWriter(&buf, WithoutColor())
	tally := model.Tally{Good: 1, Bad: 2, Error: 0}
	if err := w.WriteSummary(testRunInfo(), tally); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Total links checked: 3",
		"Good:   1",
		"Bad:    2",
		"Errors: 0",
		"README.md",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q in:\n%s", want, out)
		}
	}
}

// TestTerminalWriterVerboseLatency tests that verbose mode appends latency.
func TestTerminalWriterVerboseLatency(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewTerminalWriter(&buf, WithoutColor(), WithVerboseOutput(true))
	outcome := model.Outcome{
		Address:  "https://example.com",
		Status:   model.StatusSuccess,
		Code:     200,
		Reason:   "OK",
		Duration: 42 * time.Millisecond,
	}
	if err := w.WriteOutcome(outcome); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "(42ms)") {
		t.Errorf("expected latency in output, got %q", buf.String())
	}
}

// TestJSONWriter tests the JSON document shape.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	outcomes := []model.Outcome{
		{Address: "https://a.example", Status: model.StatusSuccess, Code: 200, Reason: "OK"},
		{Address: "https://b.example", Status: model.StatusConnectionError, Code: 0, Reason: "dial refused"},
	}
	for _, o := range outcomes {
		if err := w.WriteOutcome(o); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	tally := model.Tally{Good: 1, Error: 1}
	if err := w.WriteSummary(testRunInfo(), tally); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		Document string          `json:"document"`
		Tally    model.Tally     `json:"tally"`
		Outcomes []model.Outcome `json:"outcomes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	if doc.Document != "README.md" {
		t.Errorf("document = %q, want %q", doc.Document, "README.md")
	}
	if doc.Tally != tally {
		t.Errorf("tally = %+v, want %+v", doc.Tally, tally)
	}
	if len(doc.Outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(doc.Outcomes))
	}
	if doc.Outcomes[1].Reason != "dial refused" {
		t.Errorf("reason = %q, want full untruncated text", doc.Outcomes[1].Reason)
	}
}

// TestJSONWriterEmptyRun tests that a run with no outcomes still emits a
// valid document with an empty outcome list.
func TestJSONWriterEmptyRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewJSONWriter(&buf)
	if err := w.WriteSummary(RunInfo{Document: "empty.md"}, model.Tally{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"outcomes":[]`) {
		t.Errorf("expected empty outcomes array, got %q", buf.String())
	}
}

// TestMarkdownWriter tests the Markdown report content.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	if err := w.WriteOutcome(model.Outcome{
		Address: "https://example.com",
		Status:  model.StatusSuccess,
		Code:    200,
		Reason:  "OK",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := w.WriteSummary(testRunInfo(), model.Tally{Good: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Link Check Report",
		"## Summary",
		"## Results",
		"https://example.com",
		"mermaid",
		"README.md",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

// TestMultiWriter tests fan-out and error propagation.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("fans out to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		mw := NewMultiWriter(
			NewTerminalWriter(&a, WithoutColor()),
			NewTerminalWriter(&b, WithoutColor()),
		)

		outcome := model.Outcome{Address: "https://example.com", Status: model.StatusSuccess, Code: 200, Reason: "OK"}
		if err := mw.WriteOutcome(outcome); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.String() != b.String() || a.Len() == 0 {
			t.Errorf("writers diverged: %q vs %q", a.String(), b.String())
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		mw := NewMultiWriter(failingWriter{}, NewTerminalWriter(&bytes.Buffer{}))
		if err := mw.WriteOutcome(model.Outcome{}); err == nil {
			t.Error("expected error from failing writer")
		}
		if err := mw.WriteSummary(RunInfo{}, model.Tally{}); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}

type failingWriter struct{}

func (failingWriter) WriteOutcome(model.Outcome) error {
	return errors.New("write failed")
}

func (failingWriter) WriteSummary(RunInfo, model.Tally) error {
	return errors.New("write failed")
}
