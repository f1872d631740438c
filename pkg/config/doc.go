// Package config handles configuration management for delegate.
// It layers embedded defaults, an optional TOML or YAML file, DELEGATE_*
// environment variables and command-line overrides using koanf.
package config
