// Package testutil provides shared test fixtures: a geometry builder that
// writes placeholder STL files and a prompter that replays scripted answers.
package testutil

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/banshee-data/gridfit/internal/fsutil"
	"github.com/banshee-data/gridfit/internal/geometry"
	"github.com/banshee-data/gridfit/internal/units"
)

// FakeBuilder implements geometry.Builder without any solid modelling.
// Exported files contain a one-line description of the solid.
type FakeBuilder struct {
	FS fsutil.FileSystem
	// Calls records every build in order, e.g. "bin 2x2x3".
	Calls []string
	// FailOn makes builds whose description starts with this prefix fail.
	FailOn string
}

// NewFakeBuilder returns a FakeBuilder exporting into fsys.
func NewFakeBuilder(fsys fsutil.FileSystem) *FakeBuilder {
	return &FakeBuilder{FS: fsys}
}

func (b *FakeBuilder) build(desc string) (geometry.Renderable, error) {
	b.Calls = append(b.Calls, desc)
	if b.FailOn != "" && strings.HasPrefix(desc, b.FailOn) {
		return nil, fmt.Errorf("fake builder: %s failed", desc)
	}
	return &FakeSolid{fs: b.FS, desc: desc}, nil
}

func (b *FakeBuilder) Bin(length, width, height int) (geometry.Renderable, error) {
	if err := units.ValidateGridUnits(length, width, height); err != nil {
		return nil, fmt.Errorf("%w: %v", geometry.ErrInvalidDimensions, err)
	}
	return b.build(fmt.Sprintf("bin %dx%dx%d", length, width, height))
}

func (b *FakeBuilder) Baseplate(length, width int) (geometry.Renderable, error) {
	if err := units.ValidateGridUnits(length, width); err != nil {
		return nil, fmt.Errorf("%w: %v", geometry.ErrInvalidDimensions, err)
	}
	return b.build(fmt.Sprintf("baseplate %dx%d", length, width))
}

func (b *FakeBuilder) Spacers(drawerWidthMM, drawerDepthMM float64, fit units.Fit) (geometry.Renderable, error) {
	if !fit.NeedsSpacers() {
		return nil, fmt.Errorf("%w: no spacers needed", geometry.ErrInvalidDimensions)
	}
	return b.build(fmt.Sprintf("spacers %gx%g", drawerWidthMM, drawerDepthMM))
}

// FakeSolid is the Renderable returned by FakeBuilder.
type FakeSolid struct {
	fs   fsutil.FileSystem
	desc string
}

// Export writes "solid <desc>" to path, creating parent directories.
func (s *FakeSolid) Export(path string) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return s.fs.WriteFile(path, []byte("solid "+s.desc+"\n"), 0644)
}

// ScriptedPrompter replays answers in order. An empty answer selects the
// default; running out of answers returns io.EOF like a closed stdin.
type ScriptedPrompter struct {
	Answers []string
	// Labels records every prompt label shown.
	Labels []string
}

// NewScriptedPrompter returns a prompter that replays answers.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{Answers: answers}
}

func (p *ScriptedPrompter) Prompt(label, def string) (string, error) {
	p.Labels = append(p.Labels, label)
	if len(p.Answers) == 0 {
		return "", io.EOF
	}
	ans := p.Answers[0]
	p.Answers = p.Answers[1:]
	if ans == "" {
		return def, nil
	}
	return ans, nil
}

// Confirm consumes one answer; empty, "y" and "yes" accept.
func (p *ScriptedPrompter) Confirm(question string) (bool, error) {
	ans, err := p.Prompt(question, "y")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
