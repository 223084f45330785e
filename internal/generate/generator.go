// Package generate implements the generation commands: it turns dimensions
// into STL files, files them under the active project and records every
// export in the history ledger.
package generate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/gridfit/internal/config"
	"github.com/banshee-data/gridfit/internal/console"
	"github.com/banshee-data/gridfit/internal/fsutil"
	"github.com/banshee-data/gridfit/internal/geometry"
	"github.com/banshee-data/gridfit/internal/history"
	"github.com/banshee-data/gridfit/internal/monitoring"
	"github.com/banshee-data/gridfit/internal/project"
	"github.com/banshee-data/gridfit/internal/security"
	"github.com/banshee-data/gridfit/internal/timeutil"
)

// ErrGenerationFailed wraps every failure to build or export a solid.
var ErrGenerationFailed = errors.New("generation failed")

// Default outputs used when no project is active.
const (
	DefaultBinOutput       = "output/bin.stl"
	DefaultBaseplateOutput = "output/baseplate.stl"
	DefaultDrawerFitOutput = "output/drawer-fit"
)

// Prompter reads interactive answers.
type Prompter interface {
	// Prompt returns the answer to "label [def]", or def when it is empty.
	Prompt(label, def string) (string, error)
	// Confirm asks a question that defaults to yes.
	Confirm(question string) (bool, error)
}

// Recorder stores history entries. *history.DB implements it.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
}

// Generator carries the collaborators shared by every command.
type Generator struct {
	// Root is the working directory relative output paths resolve against.
	Root       string
	FS         fsutil.FileSystem
	Store      *project.Store
	Builder    geometry.Builder
	ConfigPath string
	Prompter   Prompter
	Console    *console.Console
	// History is optional; nil disables recording.
	History Recorder
	Clock   timeutil.Clock
}

// New wires a Generator rooted at root on the OS filesystem.
func New(root string, builder geometry.Builder, prompter Prompter, con *console.Console) *Generator {
	fsys := fsutil.OSFileSystem{}
	return &Generator{
		Root:       root,
		FS:         fsys,
		Store:      project.NewStore(root),
		Builder:    builder,
		ConfigPath: filepath.Join(root, config.DefaultPath),
		Prompter:   prompter,
		Console:    con,
		Clock:      timeutil.RealClock{},
	}
}

// resolve anchors a relative output path at the working root.
func (g *Generator) resolve(path string) string {
	if filepath.IsAbs(path) || g.Root == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(g.Root, path)
}

func (g *Generator) clock() timeutil.Clock {
	if g.Clock == nil {
		return timeutil.RealClock{}
	}
	return g.Clock
}

// target is where a component is written: into the active project under a
// prompted name, or to a plain output path.
type target struct {
	project   string
	component string
}

// componentTarget resolves the active project and, when there is one, asks
// for the component name.
func (g *Generator) componentTarget(defaultName string) (target, error) {
	active, err := g.Store.Active()
	if err != nil {
		return target{}, err
	}
	if active == "" {
		return target{component: defaultName}, nil
	}
	if !g.Store.Exists(active) {
		return target{}, fmt.Errorf("active project %q: %w", active, project.ErrProjectNotFound)
	}

	name, err := g.Prompter.Prompt("Name", defaultName)
	if err != nil {
		return target{}, fmt.Errorf("failed to read input: %w", err)
	}
	if err := security.ValidateName("component", name); err != nil {
		return target{}, err
	}
	return target{project: active, component: name}, nil
}

// export writes r to path and records it in history. Build and export
// failures are reported as ErrGenerationFailed.
func (g *Generator) export(ctx context.Context, t target, kind project.Kind, path string, r geometry.Renderable) error {
	start := g.clock().Now()
	if err := r.Export(path); err != nil {
		return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	monitoring.Debugf("exported %s in %s", path, g.clock().Since(start))

	var size int64
	if info, err := g.FS.Stat(path); err == nil {
		size = info.Size()
	}
	g.record(ctx, history.Entry{
		Project:   t.project,
		Component: t.component,
		Kind:      string(kind),
		Path:      path,
		SizeBytes: size,
	})
	return nil
}

func (g *Generator) record(ctx context.Context, e history.Entry) {
	if g.History == nil {
		return
	}
	if _, err := g.History.Record(ctx, e); err != nil {
		monitoring.Logf("failed to record history for %s: %v", e.Path, err)
	}
}

// buildFailed wraps a builder error.
func buildFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
}
