package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/kyswtn/linkprobe/internal/model"
)

// MarkdownWriter buffers outcomes and renders a GitHub Flavored Markdown
// report at summary time, with a result table and a pie chart of the
// tally. Intended for committing check results to documentation or
// attaching them to pull requests.
type MarkdownWriter struct {
	out      io.Writer
	outcomes []model.Outcome
}

// NewMarkdownWriter creates a MarkdownWriter that writes to out.
func NewMarkdownWriter(out io.Writer) *MarkdownWriter {
	return &MarkdownWriter{out: out}
}

// WriteOutcome buffers the outcome for the final report.
func (w *MarkdownWriter) WriteOutcome(outcome model.Outcome) error {
	w.outcomes = append(w.outcomes, outcome)
	return nil
}

// WriteSummary renders the complete Markdown report.
func (w *MarkdownWriter) WriteSummary(run RunInfo, tally model.Tally) error {
	md := markdown.NewMarkdown(w.out)

	md.H1("Link Check Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Document", "`" + run.Document + "`"},
			{"Checked", run.Started.Format("2006-01-02 15:04:05 MST")},
			{"Addresses", strconv.Itoa(run.Addresses)},
			{"Duration", run.Duration.String()},
		},
	})
	md.PlainText("")

	w.writeSummaryTable(md, tally)
	w.writePieChart(md, tally)
	w.writeOutcomes(md)

	return md.Build()
}

// writeSummaryTable writes the tally as a table.
func (w *MarkdownWriter) writeSummaryTable(md *markdown.Markdown, tally model.Tally) {
	md.H2("Summary")
	md.Table(markdown.TableSet{
		Header: []string{"Bucket", "Count"},
		Rows: [][]string{
			{"Good", strconv.Itoa(tally.Good)},
			{"Bad", strconv.Itoa(tally.Bad)},
			{"Error", strconv.Itoa(tally.Error)},
			{"Total", strconv.Itoa(tally.Total())},
		},
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the tally distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, tally model.Tally) {
	if tally.Total() == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Link Status Distribution"),
		piechart.WithShowData(true),
	)
	if tally.Good > 0 {
		chart.LabelAndIntValue("Good", uint64(tally.Good))
	}
	if tally.Bad > 0 {
		chart.LabelAndIntValue("Bad", uint64(tally.Bad))
	}
	if tally.Error > 0 {
		chart.LabelAndIntValue("Error", uint64(tally.Error))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeOutcomes writes the per-address result table.
func (w *MarkdownWriter) writeOutcomes(md *markdown.Markdown) {
	if len(w.outcomes) == 0 {
		return
	}

	rows := make([][]string, 0, len(w.outcomes))
	for _, o := range w.outcomes {
		rows = append(rows, []string{
			o.Address,
			o.Status.String(),
			strconv.Itoa(o.Code),
			o.Reason,
			o.Duration.String(),
		})
	}

	md.H2("Results")
	md.Table(markdown.TableSet{
		Header: []string{"Address", "Status", "Code", "Reason", "Duration"},
		Rows:   rows,
	})
}
