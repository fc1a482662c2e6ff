// Package report renders probe outcomes and run summaries.
//
// Three writers exist: a colored terminal writer that streams one line
// per outcome as it completes, a JSON writer for tool integration, and a
// Markdown writer for documentation and sharing. All implement the
// Writer interface, so the engine's sink and the final summary render
// the same way regardless of format.
package report
