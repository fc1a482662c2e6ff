package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadConfigFile tests YAML parsing of the config file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
defaults:
  concurrency: 20
  timeout: 15s
  userAgent: corp-checker/1.0
hosts:
  api.example.com:
    headers:
      Authorization: Bearer sesame
    timeout: 45s
  slow.example.org:
    timeout: 2m
`)

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.Defaults.Concurrency != 20 {
			t.Errorf("Defaults.Concurrency = %d, want 20", f.Defaults.Concurrency)
		}
		if f.Defaults.UserAgent != "corp-checker/1.0" {
			t.Errorf("Defaults.UserAgent = %q", f.Defaults.UserAgent)
		}

		headers := f.HostHeaders()
		if headers["api.example.com"]["Authorization"] != "Bearer sesame" {
			t.Errorf("host headers = %v", headers)
		}

		timeouts := f.HostTimeouts()
		if timeouts["api.example.com"] != 45*time.Second {
			t.Errorf("api timeout = %v, want 45s", timeouts["api.example.com"])
		}
		if timeouts["slow.example.org"] != 2*time.Minute {
			t.Errorf("slow timeout = %v, want 2m", timeouts["slow.example.org"])
		}
	})

	t.Run("empty file yields empty hosts", func(t *testing.T) {
		t.Parallel()

		f, err := LoadConfigFile(writeConfig(t, ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Hosts == nil {
			t.Error("expected initialized Hosts map")
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("err = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfigFile(writeConfig(t, "hosts: [broken")); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("invalid host timeout rejected at load", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(writeConfig(t, `
hosts:
  api.example.com:
    timeout: soon
`))
		if err == nil {
			t.Error("expected duration parse error")
		}
	})
}

// TestFindConfigFile tests the search order.
func TestFindConfigFile(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		path := writeConfig(t, "")
		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("missing explicit path returns empty", func(t *testing.T) {
		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("FindConfigFile() = %q, want empty", got)
		}
	})

	t.Run("current directory is searched", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), nil, 0600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		got := FindConfigFile("")
		if filepath.Base(got) != DefaultConfigFile {
			t.Errorf("FindConfigFile() = %q, want %s in cwd", got, DefaultConfigFile)
		}
	})
}
