// Package database persists completed check runs to SQLite.
//
// Each run gets one row in the runs table plus one row per outcome, so
// past checks can be listed and inspected later. Stored results are
// bookkeeping only: they are never consulted to skip or shortcut a
// probe.
package database
