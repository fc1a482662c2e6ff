package model

// Tally aggregates outcomes by bucket for a single run.
// It is owned by the dispatch engine: all mutations happen behind the
// engine's completion lock, so Tally itself carries no synchronization.
type Tally struct {
	// Good counts 2xx outcomes.
	Good int `json:"good"`

	// Bad counts error responses and timeouts.
	Bad int `json:"bad"`

	// Error counts transport-level failures.
	Error int `json:"error"`
}

// Add increments the bucket corresponding to the given status.
func (t *Tally) Add(s Status) {
	switch s.Bucket() {
	case BucketGood:
		t.Good++
	case BucketBad:
		t.Bad++
	default:
		t.Error++
	}
}

// Total returns the number of outcomes counted so far.
// At the end of a run it equals the number of unique input addresses.
func (t Tally) Total() int {
	return t.Good + t.Bad + t.Error
}
