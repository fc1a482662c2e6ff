package database

import (
	"context"
	"testing"
	"time"

	"github.com/kyswtn/linkprobe/internal/model"
)

func openTestDB(t *testing.T) *CheckDB {
	t.Helper()

	cdb, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := cdb.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return cdb
}

// TestOpenCreatesDirectoryAndSchema tests that Open works on a fresh
// directory and is idempotent.
func TestOpenCreatesDirectoryAndSchema(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first, err := Open(dir)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	second, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if err := second.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

// TestSaveRunRoundTrip tests storing and reading back a run with its
// outcomes.
func TestSaveRunRoundTrip(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)
	ctx := context.Background()

	outcomes := []model.Outcome{
		{Address: "https://good.example", Status: model.StatusSuccess, Code: 200, Reason: "OK", Duration: 120 * time.Millisecond},
		{Address: "http://missing.example", Status: model.StatusClientServerError, Code: 404, Reason: "Client/Server Error", Duration: 80 * time.Millisecond},
		{Address: "https://refused.example", Status: model.StatusConnectionError, Code: 0, Reason: "dial tcp: connection refused", Duration: 10 * time.Millisecond},
	}
	run := Run{
		Document: "docs/links.md",
		Started:  time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC),
		Duration: 2 * time.Second,
		Tally:    model.Tally{Good: 1, Bad: 1, Error: 1},
	}

	id, err := cdb.SaveRun(ctx, run, outcomes)
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated run ID")
	}

	runs, err := cdb.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}

	got := runs[0]
	if got.ID != id {
		t.Errorf("ID = %q, want %q", got.ID, id)
	}
	if got.Document != run.Document {
		t.Errorf("Document = %q, want %q", got.Document, run.Document)
	}
	if !got.Started.Equal(run.Started) {
		t.Errorf("Started = %v, want %v", got.Started, run.Started)
	}
	if got.Tally != run.Tally {
		t.Errorf("Tally = %+v, want %+v", got.Tally, run.Tally)
	}

	stored, err := cdb.RunOutcomes(ctx, id)
	if err != nil {
		t.Fatalf("RunOutcomes failed: %v", err)
	}
	if len(stored) != len(outcomes) {
		t.Fatalf("got %d outcomes, want %d", len(stored), len(outcomes))
	}
	for i, o := range stored {
		if o != outcomes[i] {
			t.Errorf("outcome[%d] = %+v, want %+v", i, o, outcomes[i])
		}
	}
}

// TestRecentRunsOrderAndLimit tests newest-first ordering and limiting.
func TestRecentRunsOrderAndLimit(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := cdb.SaveRun(ctx, Run{
			Document: "doc.md",
			Started:  base.Add(time.Duration(i) * time.Hour),
			Tally:    model.Tally{Good: i},
		}, nil)
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	runs, err := cdb.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].Started.After(runs[i-1].Started) {
			t.Errorf("runs not ordered newest first: %v before %v", runs[i-1].Started, runs[i].Started)
		}
	}
	if runs[0].Tally.Good != 4 {
		t.Errorf("newest run Good = %d, want 4", runs[0].Tally.Good)
	}
}

// TestRunOutcomesUnknownRun tests that an unknown run yields no rows.
func TestRunOutcomesUnknownRun(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)

	outcomes, err := cdb.RunOutcomes(context.Background(), "no-such-run")
	if err != nil {
		t.Fatalf("RunOutcomes failed: %v", err)
	}
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes, want 0", len(outcomes))
	}
}
