package config

import "errors"

// Configuration validation errors. Package-level sentinels let callers
// use errors.Is for programmatic handling while keeping the messages
// human-readable.
var (
	// ErrNoDocument is returned when no document path is provided.
	ErrNoDocument = errors.New("no document specified: provide a file path to check")

	// ErrInvalidConcurrency is returned when the concurrency level is not
	// a positive integer.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be a positive integer")

	// ErrInvalidTimeout is returned when the probe timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one report format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
