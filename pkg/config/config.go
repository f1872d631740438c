package config

import (
	"slices"
	"time"

	"github.com/arthur-debert/delegate/pkg/delegate"
	"github.com/arthur-debert/delegate/pkg/demo"
	"github.com/arthur-debert/delegate/pkg/errors"
	"github.com/arthur-debert/delegate/pkg/ui"
)

// Config is the merged configuration
type Config struct {
	Log      Log      `koanf:"log" toml:"log" yaml:"log" json:"log"`
	Output   Output   `koanf:"output" toml:"output" yaml:"output" json:"output"`
	Delegate Delegate `koanf:"delegate" toml:"delegate" yaml:"delegate" json:"delegate"`
	Demo     Demo     `koanf:"demo" toml:"demo" yaml:"demo" json:"demo"`
	Bench    Bench    `koanf:"bench" toml:"bench" yaml:"bench" json:"bench"`

	// raw is the merged key space before unmarshalling
	raw map[string]interface{}
}

// Log holds logging settings
type Log struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity" yaml:"verbosity" json:"verbosity"`
}

// Output holds report rendering settings
type Output struct {
	Format string `koanf:"format" toml:"format" yaml:"format" json:"format"`
}

// Delegate holds settings applied to every delegate the drivers build
type Delegate struct {
	IDScope string `koanf:"id_scope" toml:"id_scope" yaml:"idScope" json:"idScope"`
}

// Demo holds the demonstration driver settings
type Demo struct {
	Sections []string `koanf:"sections" toml:"sections" yaml:"sections" json:"sections"`
}

// Bench holds the benchmark driver settings
type Bench struct {
	Iterations int           `koanf:"iterations" toml:"iterations" yaml:"iterations" json:"iterations"`
	Warmup     int           `koanf:"warmup" toml:"warmup" yaml:"warmup" json:"warmup"`
	Timeout    time.Duration `koanf:"timeout" toml:"timeout" yaml:"timeout" json:"timeout"`
}

// Validate checks values that the loaders cannot type-check
func (c *Config) Validate() error {
	if _, err := ui.ParseFormat(c.Output.Format); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid output.format").
			WithDetail("value", c.Output.Format)
	}

	if _, err := delegate.ParseScope(c.Delegate.IDScope); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid delegate.id_scope").
			WithDetail("value", c.Delegate.IDScope)
	}

	if c.Bench.Iterations <= 0 {
		return errors.Newf(errors.ErrConfigValid, "bench.iterations must be positive, got %d", c.Bench.Iterations)
	}
	if c.Bench.Warmup < 0 {
		return errors.Newf(errors.ErrConfigValid, "bench.warmup must not be negative, got %d", c.Bench.Warmup)
	}
	if c.Bench.Timeout < 0 {
		return errors.Newf(errors.ErrConfigValid, "bench.timeout must not be negative, got %s", c.Bench.Timeout)
	}

	for _, s := range c.Demo.Sections {
		if !slices.Contains(demo.Sections(), s) {
			return errors.Newf(errors.ErrConfigValid, "unknown demo section: %s", s).
				WithDetail("known", demo.Sections())
		}
	}

	return nil
}

// IDScope returns the parsed id scope. Call Validate first.
func (c *Config) IDScope() delegate.Scope {
	scope, _ := delegate.ParseScope(c.Delegate.IDScope)
	return scope
}

// DelegateOptions returns the options every driver-built delegate receives
func (c *Config) DelegateOptions() []delegate.Option {
	return []delegate.Option{delegate.WithIDScope(c.IDScope())}
}
