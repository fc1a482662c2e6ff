// Package probe performs single existence checks against web addresses.
//
// A probe issues one HEAD request per address, follows redirects up to a
// fixed limit, and classifies the result into a model.Outcome. The prober
// is total over its input domain: any string claiming to be a URL yields
// an Outcome, never an error or a panic. All transport failures are
// converted into classified outcomes at the probe boundary.
package probe
