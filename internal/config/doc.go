// Package config holds runtime configuration for linkprobe.
//
// Configuration comes from CLI flags, optionally merged with a YAML
// file (.linkprobe) found in the current directory or the user's home
// directory. The file carries defaults plus per-host overrides such as
// extra request headers for hosts that reject anonymous probes.
package config
