// Package engine schedules probes over an address set with bounded
// concurrency and aggregates their outcomes.
//
// The engine runs one probe task per address through an errgroup with a
// concurrency limit. Outcomes are delivered to a sink in completion
// order, which is whatever the network produces, not input order. The
// sink call and the tally update share a single lock, so the sink never
// sees interleaved deliveries and the tally never sees a partial
// increment. A panicking probe task is contained: the panic is recovered
// and recorded as an error-bucket outcome, and the rest of the run
// continues. Every address produces exactly one outcome.
package engine
