// Package main provides the entry point for the linkprobe CLI.
//
// linkprobe scans a document for absolute web addresses and reports,
// for each, whether it is reachable. Probes run concurrently with a
// bounded worker limit.
//
// Usage:
//
//	linkprobe check <file>
//	linkprobe history
//
// See --help for all available options.
package main

// main is the entry point for linkprobe.
func main() {
	Execute()
}
