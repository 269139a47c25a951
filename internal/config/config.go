package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownConnection is returned when a saved connection name is not found.
const ErrUnknownConnection = constError("unknown connection")

// SavedConnection is a named PostgreSQL connection.
type SavedConnection struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host,omitempty"`
	Port     string `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
	URI      string `yaml:"uri,omitempty"`
}

// GridConfig holds the viewport geometry, in terminal cells.
type GridConfig struct {
	RowHeight          float64 `yaml:"row_height"`
	HeaderHeight       float64 `yaml:"header_height"`
	DefaultColumnWidth float64 `yaml:"default_column_width"`
	OverscanRows       int     `yaml:"overscan_rows"`
	OverscanColumns    int     `yaml:"overscan_columns"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Config is the on-disk configuration.
type Config struct {
	Grid        GridConfig        `yaml:"grid"`
	Logging     LoggingConfig     `yaml:"logging"`
	Connections []SavedConnection `yaml:"connections,omitempty"`

	path string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			RowHeight:          1,
			HeaderHeight:       2,
			DefaultColumnWidth: 16,
			OverscanRows:       5,
			OverscanColumns:    2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vgrid"), nil
}

// DefaultPath returns $VGRID_CONFIG or ~/.config/vgrid/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("VGRID_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path, or at DefaultPath when path is empty. A
// missing file yields the defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), err
		}
		path = p
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// SetPath changes where Save writes.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Validate rejects geometry the grid cannot lay out. Heights and the
// default width are whole terminal cells.
func (c *Config) Validate() error {
	g := c.Grid
	if g.RowHeight <= 0 || !wholeCells(g.RowHeight) {
		return fmt.Errorf("grid.row_height must be a whole number > 0, got %v", g.RowHeight)
	}
	if g.HeaderHeight < 0 || !wholeCells(g.HeaderHeight) {
		return fmt.Errorf("grid.header_height must be a whole number >= 0, got %v", g.HeaderHeight)
	}
	if g.DefaultColumnWidth <= 0 || !wholeCells(g.DefaultColumnWidth) {
		return fmt.Errorf("grid.default_column_width must be a whole number > 0, got %v", g.DefaultColumnWidth)
	}
	if g.OverscanRows < 0 || g.OverscanColumns < 0 {
		return fmt.Errorf("grid overscan must be >= 0, got %d/%d", g.OverscanRows, g.OverscanColumns)
	}
	return nil
}

func wholeCells(v float64) bool {
	return v == math.Trunc(v) && !math.IsInf(v, 0)
}

// Save writes the config as YAML, creating its directory.
func (c *Config) Save() error {
	if c.path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = p
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(c.path, data, 0600)
}

// Add inserts conn, replacing any connection with the same name.
func (c *Config) Add(conn SavedConnection) {
	for i, existing := range c.Connections {
		if existing.Name == conn.Name {
			c.Connections[i] = conn
			return
		}
	}
	c.Connections = append(c.Connections, conn)
}

// Delete removes the connection at index.
func (c *Config) Delete(index int) {
	if index < 0 || index >= len(c.Connections) {
		return
	}
	c.Connections = append(c.Connections[:index], c.Connections[index+1:]...)
}

// Find returns the saved connection called name.
func (c *Config) Find(name string) (SavedConnection, error) {
	for _, conn := range c.Connections {
		if conn.Name == name {
			return conn, nil
		}
	}
	return SavedConnection{}, fmt.Errorf("%w: %s", ErrUnknownConnection, name)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("VGRID_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("VGRID_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}
