package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultConcurrency is the number of simultaneously in-flight probes.
	// Ten keeps even large documents fast without hammering any one host.
	DefaultConcurrency = 10

	// DefaultTimeout is the per-probe deadline covering the whole redirect
	// chain of one address.
	DefaultTimeout = 10 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "linkprobe"
)

// Config holds all options for a check run. It is populated from CLI
// flags and an optional config file, then passed through the application
// by dependency injection rather than global state.
type Config struct {
	// Document is the path of the file to scan for addresses.
	Document string

	// Concurrency bounds the number of simultaneously in-flight probes.
	// Must be positive; there is no enforced upper bound.
	Concurrency int

	// Timeout is the per-probe deadline.
	Timeout time.Duration

	// UserAgent overrides the User-Agent header sent with probes.
	// Empty means the prober default.
	UserAgent string

	// Verbose enables debug logging and per-probe latency output.
	Verbose bool

	// JSONReport emits a JSON report instead of the colored terminal
	// output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport emits a Markdown report instead of the colored
	// terminal output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	ReportFile string

	// NoColor disables ANSI colors in terminal output.
	NoColor bool

	// NoDB disables persisting the run to the history database.
	NoDB bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory for linkprobe.
	DBDir string

	// ConfigFilePath is an explicit config file path. Empty means search
	// the current directory and then the home directory for .linkprobe.
	ConfigFilePath string

	// File holds settings loaded from the config file, never nil after
	// NewConfig.
	File *File
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		DBDir:       XDGDataDir(),
		File:        &File{Hosts: map[string]HostConfig{}},
	}
}

// Validate checks the configuration for invalid combinations.
func (c *Config) Validate() error {
	if c.Document == "" {
		return ErrNoDocument
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// XDGDataDir returns the default directory for the history database,
// e.g. ~/.local/share/linkprobe on Linux.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
