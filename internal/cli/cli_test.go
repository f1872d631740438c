package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/delegate/pkg/errors"
	"github.com/arthur-debert/delegate/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate keeps config, env overrides and the log file away from the user's
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DELEGATE_CONFIG", "")
	t.Setenv("DELEGATE_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("DELEGATE_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("NO_COLOR", "1")
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

func execute(t *testing.T, files afero.Fs, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(files)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_NoCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs())
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
	assert.Contains(t, out, "demo")
}

func TestDemo_JSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs(), "demo", "--format", "json")
	require.NoError(t, err)

	var report types.DemoReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.OK())
	assert.Len(t, report.Sections, 6)
}

func TestDemo_SelectedSectionsText(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs(), "demo", "signal", "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "signal fires both targets")
	assert.NotContains(t, out, "every form registers")
}

func TestDemo_SignatureScopeFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("DELEGATE_DELEGATE_ID_SCOPE", "signature")
	_, err := execute(t, afero.NewMemMapFs(), "demo", "--format", "yaml")
	require.NoError(t, err)
}

func TestDemo_UnknownSection(t *testing.T) {
	isolate(t)
	_, err := execute(t, afero.NewMemMapFs(), "demo", "teleport")
	assert.Error(t, err)
}

func TestDemo_InvalidFormat(t *testing.T) {
	isolate(t)
	_, err := execute(t, afero.NewMemMapFs(), "demo", "--format", "html")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
}

func TestBench_JSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs(), "bench", "-n", "200", "--format", "json")
	require.NoError(t, err)

	var report types.BenchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 200, report.Iterations)
	assert.Equal(t, "instance", report.IDScope)
	require.Len(t, report.Runs, 2)
	for _, run := range report.Runs {
		assert.Equal(t, 600, run.Value, run.Name)
	}
}

func TestBench_ZeroIterations(t *testing.T) {
	isolate(t)
	_, err := execute(t, afero.NewMemMapFs(), "bench", "-n", "0")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
}

func TestBench_ErrorAsJSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs(), "bench", "-n", "0", "--format", "json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)

	var report types.ErrorReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "INVALID_INPUT", report.Code)
	assert.Contains(t, report.Error, "iterations must be positive")
}

func TestBench_ErrorAsYAML(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs(), "bench", "-n", "0", "-f", "yaml")
	assert.Error(t, err)

	var report types.ErrorReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, "INVALID_INPUT", report.Code)
}

func TestBench_ErrorLeftToCallerInText(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs(), "bench", "-n", "0", "-f", "text")
	assert.Error(t, err)
	assert.NotContains(t, out, "INVALID_INPUT")
}

func TestGenConfig_Stdout(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs(), "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "[bench]")
	assert.Contains(t, out, "# iterations = ")
}

func TestGenConfig_Write(t *testing.T) {
	dir := isolate(t)
	files := afero.NewMemMapFs()
	path := filepath.Join(dir, "config", "config.toml")

	out, err := execute(t, files, "genconfig", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	content, err := afero.ReadFile(files, path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[delegate]")

	_, err = execute(t, files, "genconfig", "-w")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists), "got %v", err)

	_, err = execute(t, files, "genconfig", "-w", "--force")
	require.NoError(t, err)
}

func TestGenConfig_WriteStructured(t *testing.T) {
	dir := isolate(t)
	files := afero.NewMemMapFs()
	path := filepath.Join(dir, "config", "config.toml")

	out, err := execute(t, files, "genconfig", "-w", "-f", "json")
	require.NoError(t, err)

	var msg types.MessageReport
	require.NoError(t, json.Unmarshal([]byte(out), &msg))
	assert.Equal(t, "Wrote default configuration to "+path, msg.Message)

	out, err = execute(t, files, "genconfig", "-w", "-f", "json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists), "got %v", err)

	var report types.ErrorReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "ALREADY_EXISTS", report.Code)
	assert.Equal(t, path, report.Details["path"])
}

func TestGenConfig_Effective(t *testing.T) {
	isolate(t)
	t.Setenv("DELEGATE_BENCH_ITERATIONS", "42")

	out, err := execute(t, afero.NewMemMapFs(), "genconfig", "--effective")
	require.NoError(t, err)
	assert.Regexp(t, `iterations = ['"]?42`, out)
}

func TestGenConfig_WriteAndEffectiveConflict(t *testing.T) {
	isolate(t)
	_, err := execute(t, afero.NewMemMapFs(), "genconfig", "--write", "--effective")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "delegate version")
}

func TestCompletion(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, afero.NewMemMapFs(), "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "delegate")
		})
	}
}

func TestMan(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs(), "man")
	require.NoError(t, err)
	assert.Contains(t, out, "DELEGATE")
	assert.Contains(t, out, "genconfig")
}

func TestHelpTopics(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs(), "help", "topics")
	require.NoError(t, err)
	for _, topic := range []string{"reentrancy", "targets", "ids", "failures", "configuration", "--format"} {
		assert.Contains(t, out, topic)
	}

	out, err = execute(t, afero.NewMemMapFs(), "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "Available help topics:")
}

func TestHelpTopic(t *testing.T) {
	isolate(t)
	out, err := execute(t, afero.NewMemMapFs(), "help", "reentrancy")
	require.NoError(t, err)
	assert.Contains(t, out, "Reentrancy")
}

func TestConfigFlag_Missing(t *testing.T) {
	dir := isolate(t)
	_, err := execute(t, afero.NewMemMapFs(), "--config", filepath.Join(dir, "nope.toml"), "version")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad), "got %v", err)
}
