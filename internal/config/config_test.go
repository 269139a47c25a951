package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Grid, cfg.Grid)
	assert.Equal(t, path, cfg.Path())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vgrid", "config.yaml")

	cfg := Default()
	cfg.SetPath(path)
	cfg.Grid.OverscanRows = 9
	cfg.Add(SavedConnection{Name: "local", Host: "localhost", Port: "5432", Database: "app"})
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.Grid.OverscanRows)
	require.Len(t, loaded.Connections, 1)
	assert.Equal(t, "app", loaded.Connections[0].Database)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  overscan_columns: 4\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Grid.OverscanColumns)
	assert.Equal(t, 1.0, cfg.Grid.RowHeight)
	assert.Equal(t, 5, cfg.Grid.OverscanRows)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "bad yaml", content: "grid: [", errMsg: "failed to parse config"},
		{name: "zero row height", content: "grid:\n  row_height: 0\n", errMsg: "row_height"},
		{name: "negative overscan", content: "grid:\n  overscan_rows: -1\n", errMsg: "overscan"},
		{name: "zero default width", content: "grid:\n  default_column_width: 0\n", errMsg: "default_column_width"},
		{name: "fractional row height", content: "grid:\n  row_height: 1.5\n", errMsg: "row_height"},
		{name: "fractional header height", content: "grid:\n  header_height: 0.5\n", errMsg: "header_height"},
		{name: "fractional default width", content: "grid:\n  default_column_width: 12.25\n", errMsg: "default_column_width"},
		{name: "infinite row height", content: "grid:\n  row_height: .inf\n", errMsg: "row_height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VGRID_LOG_LEVEL", "debug")
	t.Setenv("VGRID_LOG_FILE", "/tmp/x.log")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/x.log", cfg.Logging.File)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("VGRID_CONFIG", "/etc/vgrid.yaml")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/vgrid.yaml", p)

	t.Setenv("VGRID_CONFIG", "")
	t.Setenv("HOME", "/home/someone")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/someone/.config/vgrid/config.yaml", p)
}

func TestConnections(t *testing.T) {
	cfg := Default()
	cfg.Add(SavedConnection{Name: "a", Host: "one"})
	cfg.Add(SavedConnection{Name: "b"})
	cfg.Add(SavedConnection{Name: "a", Host: "two"})

	require.Len(t, cfg.Connections, 2)
	conn, err := cfg.Find("a")
	require.NoError(t, err)
	assert.Equal(t, "two", conn.Host)

	_, err = cfg.Find("zzz")
	assert.ErrorIs(t, err, ErrUnknownConnection)

	cfg.Delete(0)
	cfg.Delete(5)
	require.Len(t, cfg.Connections, 1)
	assert.Equal(t, "b", cfg.Connections[0].Name)
}

func TestInitLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "vgrid.log")

	require.NoError(t, InitLogger(LogOptions{Level: "debug", File: path}))
	log := GetLogger()
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
	log.Debug().Str("k", "v").Msg("hello")
	CloseLogFile()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)

	require.NoError(t, InitLogger(LogOptions{Level: "bogus"}))
	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}
