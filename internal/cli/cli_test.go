package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"vgrid/internal/cli"
	"vgrid/internal/config"
	"vgrid/internal/virtual"
)

// run executes the root command with args against an isolated config file.
func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("VGRID_LOG_LEVEL", "error")
	t.Cleanup(config.CloseLogFile)

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func tempConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "vgrid", "config.yaml")
}

// fields parses "key  value" text output into a map.
func fields(out string) map[string]string {
	m := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		k, v, _ := strings.Cut(line, " ")
		m[k] = strings.TrimSpace(v)
	}
	return m
}

func TestWindowCmd_Text(t *testing.T) {
	out, err := run(t, tempConfig(t), "window",
		"--rows", "50000", "--height", "800", "--scroll-top", "4000")
	require.NoError(t, err)

	got := fields(out)
	assert.Equal(t, "[95, 125)", got["rows"])
	assert.Equal(t, "[0, 0)", got["columns"])
	assert.Equal(t, "3800", got["offsetY"])
	assert.Equal(t, "2000000", got["totalHeight"])
}

func TestWindowCmd_JSON(t *testing.T) {
	out, err := run(t, tempConfig(t), "window",
		"--widths", "80,200,150", "--width", "100", "--scroll-left", "250",
		"--overscan-columns", "0", "--output", "json")
	require.NoError(t, err)

	var w virtual.Window
	require.NoError(t, json.Unmarshal([]byte(out), &w))
	assert.Equal(t, 1, w.StartColumn)
	assert.Equal(t, 3, w.EndColumn)
	assert.Equal(t, 80.0, w.OffsetX)
	assert.Equal(t, 430.0, w.TotalWidth)
	assert.Equal(t, 0, w.EndRow)
	assert.Contains(t, out, `"startColumnIndex": 1`)
}

func TestWindowCmd_YAML(t *testing.T) {
	out, err := run(t, tempConfig(t), "window",
		"--rows", "10", "--height", "800", "-o", "yaml")
	require.NoError(t, err)

	var w virtual.Window
	require.NoError(t, yaml.Unmarshal([]byte(out), &w))
	assert.Equal(t, 10, w.EndRow)
	assert.Contains(t, out, "end_row_index: 10")
}

func TestWindowCmd_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "zero row height", args: []string{"--rows", "10", "--row-height", "0"}, errMsg: "invalid geometry"},
		{name: "negative height", args: []string{"--height", "-1"}, errMsg: "invalid geometry"},
		{name: "negative overscan", args: []string{"--overscan-rows", "-1"}, errMsg: "invalid geometry"},
		{name: "negative width", args: []string{"--widths", "10,-5"}, errMsg: "invalid geometry"},
		{name: "unknown output", args: []string{"-o", "xml"}, errMsg: "unknown output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tempConfig(t), append([]string{"window"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTUICommands_RequireTerminal(t *testing.T) {
	for _, args := range [][]string{{"demo"}, {"pg", "--uri", "postgres://localhost/x"}} {
		_, err := run(t, tempConfig(t), args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "not a terminal")
	}
}

func TestPgCmd_ConflictingFlags(t *testing.T) {
	_, err := run(t, tempConfig(t), "pg", "--uri", "postgres://x", "--conn", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestConfigInit(t *testing.T) {
	path := tempConfig(t)

	out, err := run(t, path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Grid, cfg.Grid)

	_, err = run(t, path, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, path, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_OverwritesInvalidConfig(t *testing.T) {
	path := tempConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  row_height: 0\n"), 0o600))

	_, err := run(t, path, "window")
	require.Error(t, err)

	_, err = run(t, path, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigConnections(t *testing.T) {
	path := tempConfig(t)

	_, err := run(t, path, "config", "add-conn", "local", "--database", "app", "--password", "s3cret")
	require.NoError(t, err)
	_, err = run(t, path, "config", "add-conn", "remote", "--uri", "postgres://db/app")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Connections, 2)
	local, err := cfg.Find("local")
	require.NoError(t, err)
	assert.Equal(t, "localhost", local.Host)
	assert.Equal(t, "5432", local.Port)

	out, err := run(t, path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "name: local")
	assert.Contains(t, out, "row_height: 1")
	assert.NotContains(t, out, "s3cret")

	_, err = run(t, path, "config", "remove-conn", "local")
	require.NoError(t, err)
	_, err = run(t, path, "config", "remove-conn", "local")
	require.ErrorIs(t, err, config.ErrUnknownConnection)

	_, err = run(t, path, "config", "add-conn", "bad")
	require.Error(t, err)
}
