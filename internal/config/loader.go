package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".linkprobe"

// HostConfig holds per-hostname probe overrides. Some hosts answer
// anonymous HEAD probes with 401 or 429; extra headers or a longer
// timeout keep such addresses checkable.
type HostConfig struct {
	// Headers are extra HTTP headers sent with probes to this host.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Timeout overrides the global probe timeout for this host,
	// in time.ParseDuration syntax (e.g. "30s"). Empty means the
	// global timeout.
	Timeout string `yaml:"timeout,omitempty"`
}

// Settings are file-level defaults applied before CLI flags.
type Settings struct {
	// Concurrency is the default probe concurrency. Zero means unset.
	Concurrency int `yaml:"concurrency,omitempty"`

	// Timeout is the default per-probe deadline in time.ParseDuration
	// syntax. Empty means unset.
	Timeout string `yaml:"timeout,omitempty"`

	// UserAgent is the default User-Agent header. Empty means unset.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// File represents the structure of the .linkprobe configuration file.
type File struct {
	// Defaults are applied to every run unless a CLI flag overrides them.
	Defaults Settings `yaml:"defaults,omitempty"`

	// Hosts maps hostnames to their probe overrides.
	Hosts map[string]HostConfig `yaml:"hosts,omitempty"`
}

// HostHeaders returns the per-hostname header map in the shape the
// prober consumes. Nil when no host carries headers.
func (f *File) HostHeaders() map[string]map[string]string {
	var headers map[string]map[string]string
	for host, hc := range f.Hosts {
		if len(hc.Headers) == 0 {
			continue
		}
		if headers == nil {
			headers = make(map[string]map[string]string)
		}
		headers[host] = hc.Headers
	}
	return headers
}

// HostTimeouts returns the per-hostname timeout overrides in the shape
// the prober consumes. Nil when no host carries one.
func (f *File) HostTimeouts() map[string]time.Duration {
	var timeouts map[string]time.Duration
	for host, hc := range f.Hosts {
		if hc.Timeout == "" {
			continue
		}
		d, err := time.ParseDuration(hc.Timeout)
		if err != nil || d <= 0 {
			continue
		}
		if timeouts == nil {
			timeouts = make(map[string]time.Duration)
		}
		timeouts[host] = d
	}
	return timeouts
}

// LoadConfigFile loads settings from a YAML file. If the file does not
// exist it returns ErrConfigNotFound; callers decide whether that is
// fatal based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path comes from the user
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	// Surface bad duration syntax at load time, not mid-run.
	for host, hc := range f.Hosts {
		if hc.Timeout == "" {
			continue
		}
		if _, err := time.ParseDuration(hc.Timeout); err != nil {
			return nil, fmt.Errorf("invalid timeout for host %s: %w", host, err)
		}
	}
	if f.Defaults.Timeout != "" {
		if _, err := time.ParseDuration(f.Defaults.Timeout); err != nil {
			return nil, fmt.Errorf("invalid default timeout: %w", err)
		}
	}

	if f.Hosts == nil {
		f.Hosts = make(map[string]HostConfig)
	}

	return &f, nil
}

// FindConfigFile searches for the configuration file:
//  1. the explicit path, when given
//  2. .linkprobe in the current directory
//  3. .linkprobe in the user's home directory
//
// Returns the path if found, or empty string when nothing exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// ApplyFile merges file-level defaults into the config for every value
// still at its built-in default. CLI flags have already been applied by
// the caller and take precedence.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.File = f

	if f.Defaults.Concurrency > 0 && c.Concurrency == DefaultConcurrency {
		c.Concurrency = f.Defaults.Concurrency
	}
	if f.Defaults.Timeout != "" && c.Timeout == DefaultTimeout {
		if d, err := time.ParseDuration(f.Defaults.Timeout); err == nil && d > 0 {
			c.Timeout = d
		}
	}
	if f.Defaults.UserAgent != "" && c.UserAgent == "" {
		c.UserAgent = f.Defaults.UserAgent
	}
}
