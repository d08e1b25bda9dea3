// Package config loads lrg's optional TOML configuration file. Built-in
// defaults are overridden by the file, and the file in turn is overridden
// by command-line flags (applied by the cmd layer).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"github.com/hisahi/lrg/internal/reader"
)

// Config mirrors the config.toml layout.
type Config struct {
	Display  Display  `toml:"display"`
	Engine   Engine   `toml:"engine"`
	Warnings Warnings `toml:"warnings"`
	Pacing   Pacing   `toml:"pacing"`
}

type Display struct {
	LineNumbers bool   `toml:"line_numbers"`
	FileNames   bool   `toml:"file_names"`
	NumberWidth int64  `toml:"number_width"`
	Color       string `toml:"color"` // auto, always or never
}

type Engine struct {
	BufferSize        int64  `toml:"buffer_size"`
	BackscanThreshold int64  `toml:"backscan_threshold"`
	RewindMode        string `toml:"rewind_mode"` // auto, rewind or backscan
}

type Warnings struct {
	WarnEOF   bool `toml:"warn_eof"`
	StrictEOF bool `toml:"strict_eof"`
}

type Pacing struct {
	LinesPerSecond float64 `toml:"lines_per_second"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display: Display{
			NumberWidth: 7,
			Color:       "auto",
		},
		Engine: Engine{
			BufferSize:        reader.DefaultBufferSize,
			BackscanThreshold: 64,
			RewindMode:        "auto",
		},
	}
}

// DefaultPath returns the conventional location of the config file
// ($XDG_CONFIG_HOME/lrg/config.toml), or "" when no config directory can be
// determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lrg", "config.toml")
}

// Load reads the config file at path on top of the defaults. An empty path
// means DefaultPath; a missing file is not an error and yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// BufferSize converts the configured buffer size to an int, rejecting
// values that cannot fit.
func (c Config) BufferSize() (int, error) {
	n, err := safecast.Conv[int](c.Engine.BufferSize)
	if err != nil {
		return 0, fmt.Errorf("buffer_size %d: %w", c.Engine.BufferSize, err)
	}
	return n, nil
}

// NumberWidth converts the configured line-number field width to an int.
func (c Config) NumberWidth() (int, error) {
	n, err := safecast.Conv[int](c.Display.NumberWidth)
	if err != nil {
		return 0, fmt.Errorf("number_width %d: %w", c.Display.NumberWidth, err)
	}
	return n, nil
}

// BackscanThreshold converts the configured threshold to the reader's line
// distance type.
func (c Config) BackscanThreshold() (uint64, error) {
	n, err := safecast.Conv[uint64](c.Engine.BackscanThreshold)
	if err != nil {
		return 0, fmt.Errorf("backscan_threshold %d: %w", c.Engine.BackscanThreshold, err)
	}
	return n, nil
}

// RewindMode parses the configured rewind mode name.
func (c Config) RewindMode() (reader.RewindMode, error) {
	return ParseRewindMode(c.Engine.RewindMode)
}

// ParseRewindMode maps a mode name to a reader.RewindMode.
func ParseRewindMode(name string) (reader.RewindMode, error) {
	switch name {
	case "", "auto":
		return reader.RewindAuto, nil
	case "rewind":
		return reader.RewindFull, nil
	case "backscan":
		return reader.RewindBackscan, nil
	}
	return 0, fmt.Errorf("unknown rewind mode %q", name)
}
