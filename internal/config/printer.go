package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/banshee-data/gridfit/internal/fsutil"
	"github.com/banshee-data/gridfit/internal/units"
)

// DefaultPath is the printer config file, relative to the working root.
const DefaultPath = ".gf-config"

// Default print bed size in millimetres.
const (
	DefaultBedWidthMM = 225
	DefaultBedDepthMM = 225
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// PrinterConfig holds the print bed dimensions used to decide when a
// baseplate has to be split.
type PrinterConfig struct {
	BedWidthMM int `json:"print_bed_width_mm"`
	BedDepthMM int `json:"print_bed_depth_mm"`
}

// Default returns the 225x225 bed used when no config file exists.
func Default() PrinterConfig {
	return PrinterConfig{BedWidthMM: DefaultBedWidthMM, BedDepthMM: DefaultBedDepthMM}
}

// Validate checks that both bed dimensions are positive.
func (c PrinterConfig) Validate() error {
	if c.BedWidthMM <= 0 {
		return fmt.Errorf("print_bed_width_mm must be positive, got %d", c.BedWidthMM)
	}
	if c.BedDepthMM <= 0 {
		return fmt.Errorf("print_bed_depth_mm must be positive, got %d", c.BedDepthMM)
	}
	return nil
}

// MaxUnits returns how many grid units fit on the bed per axis.
func (c PrinterConfig) MaxUnits() (int, int) {
	return units.MaxUnits(c.BedWidthMM, c.BedDepthMM)
}

// Exists reports whether a printer config file is present at path.
func Exists(fsys fsutil.FileSystem, path string) bool {
	return fsys.Exists(filepath.Clean(path))
}

// Load reads the printer config at path. A missing file yields the defaults;
// an unreadable or invalid file is an error.
func Load(fsys fsutil.FileSystem, path string) (PrinterConfig, error) {
	cleanPath := filepath.Clean(path)

	info, err := fsys.Stat(cleanPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return PrinterConfig{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return PrinterConfig{}, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return PrinterConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg PrinterConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return PrinterConfig{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return PrinterConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON, replacing any previous file.
func Save(fsys fsutil.FileSystem, path string, cfg PrinterConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := fsys.WriteFile(cleanPath, raw, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
