package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/banshee-data/gridfit/internal/fsutil"
)

// Prompter asks the user for a value, returning def when they just press Enter.
type Prompter interface {
	Prompt(label, def string) (string, error)
}

// Ask prompts for both bed dimensions, offering the defaults.
func Ask(p Prompter) (PrinterConfig, error) {
	w, err := askInt(p, "Print bed width (mm)", DefaultBedWidthMM)
	if err != nil {
		return PrinterConfig{}, err
	}
	d, err := askInt(p, "Print bed depth (mm)", DefaultBedDepthMM)
	if err != nil {
		return PrinterConfig{}, err
	}
	cfg := PrinterConfig{BedWidthMM: w, BedDepthMM: d}
	if err := cfg.Validate(); err != nil {
		return PrinterConfig{}, err
	}
	return cfg, nil
}

// Ensure returns the printer config at path, prompting for and saving one
// when the file is missing. created reports whether a new file was written.
func Ensure(fsys fsutil.FileSystem, path string, p Prompter) (cfg PrinterConfig, created bool, err error) {
	if Exists(fsys, path) {
		cfg, err = Load(fsys, path)
		return cfg, false, err
	}

	cfg, err = Ask(p)
	if err != nil {
		return PrinterConfig{}, false, err
	}
	if err := Save(fsys, path, cfg); err != nil {
		return PrinterConfig{}, false, err
	}
	return cfg, true, nil
}

func askInt(p Prompter, label string, def int) (int, error) {
	raw, err := p.Prompt(label, strconv.Itoa(def))
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("dimensions must be integers, got %q", raw)
	}
	return n, nil
}
