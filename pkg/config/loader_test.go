package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/delegate/pkg/delegate"
	"github.com/arthur-debert/delegate/pkg/demo"
	"github.com/arthur-debert/delegate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at an empty temp dir and clears overrides
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DELEGATE_CONFIG", "")
	t.Setenv("DELEGATE_CONFIG_DIR", dir)
	for _, key := range []string{
		"DELEGATE_LOG_VERBOSITY",
		"DELEGATE_OUTPUT_FORMAT",
		"DELEGATE_DELEGATE_ID_SCOPE",
		"DELEGATE_DEMO_SECTIONS",
		"DELEGATE_BENCH_ITERATIONS",
		"DELEGATE_BENCH_WARMUP",
		"DELEGATE_BENCH_TIMEOUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Log.Verbosity)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Equal(t, "instance", cfg.Delegate.IDScope)
	assert.Equal(t, demo.Sections(), cfg.Demo.Sections)
	assert.Equal(t, 1000000, cfg.Bench.Iterations)
	assert.Equal(t, 1000, cfg.Bench.Warmup)
	assert.Equal(t, time.Minute, cfg.Bench.Timeout)
	assert.Equal(t, delegate.ScopeInstance, cfg.IDScope())
}

func TestLoad_XDGFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[bench]
iterations = 42

[delegate]
id_scope = "signature"
`)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Bench.Iterations)
	assert.Equal(t, 1000, cfg.Bench.Warmup, "untouched keys keep their default")
	assert.Equal(t, delegate.ScopeSignature, cfg.IDScope())
}

func TestLoad_ExplicitYAMLFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "delegate.yaml")
	writeFile(t, path, `
output:
  format: json
demo:
  sections: [register, signal]
bench:
  timeout: 5s
`)

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, []string{"register", "signal"}, cfg.Demo.Sections)
	assert.Equal(t, 5*time.Second, cfg.Bench.Timeout)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad), "got %v", err)
}

func TestLoad_EnvConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, "[log]\nverbosity = 2\n")
	t.Setenv("DELEGATE_CONFIG", path)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Log.Verbosity)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[bench\niterations = ")

	_, err := Load(LoadOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[bench]\niterations = 42\n")

	t.Setenv("DELEGATE_BENCH_ITERATIONS", "7")
	t.Setenv("DELEGATE_DELEGATE_ID_SCOPE", "signature")
	t.Setenv("DELEGATE_DEMO_SECTIONS", "invoke,remove")
	t.Setenv("DELEGATE_BENCH_TIMEOUT", "250ms")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Bench.Iterations)
	assert.Equal(t, "signature", cfg.Delegate.IDScope)
	assert.Equal(t, []string{"invoke", "remove"}, cfg.Demo.Sections)
	assert.Equal(t, 250*time.Millisecond, cfg.Bench.Timeout)
}

func TestLoad_OverridesWin(t *testing.T) {
	isolate(t)
	t.Setenv("DELEGATE_OUTPUT_FORMAT", "yaml")

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{
		"output.format":    "text",
		"bench.iterations": 10,
	}})
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 10, cfg.Bench.Iterations)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		override map[string]interface{}
	}{
		{"unknown format", map[string]interface{}{"output.format": "csv"}},
		{"unknown scope", map[string]interface{}{"delegate.id_scope": "global"}},
		{"zero iterations", map[string]interface{}{"bench.iterations": 0}},
		{"negative warmup", map[string]interface{}{"bench.warmup": -1}},
		{"unknown section", map[string]interface{}{"demo.sections": []string{"teleport"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(LoadOptions{Overrides: tt.override})
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"DELEGATE_BENCH_ITERATIONS":  "bench.iterations",
		"DELEGATE_DELEGATE_ID_SCOPE": "delegate.id_scope",
		"DELEGATE_LOG_VERBOSITY":     "log.verbosity",
		"DELEGATE_CONFIG":            "",
		"DELEGATE_CONFIG_DIR":        "",
		"DELEGATE_STATE_DIR":         "",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestEffective(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{"bench.iterations": 5}})
	require.NoError(t, err)

	out, err := cfg.Effective()
	require.NoError(t, err)
	assert.Contains(t, string(out), "[bench]")
	assert.Contains(t, string(out), "iterations = 5")
	assert.Regexp(t, `timeout = ['"]1m['"]`, string(out))
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Len(t, cfg.DelegateOptions(), 1)
}
