package generate

import (
	"context"
	"fmt"

	"github.com/banshee-data/gridfit/internal/project"
	"github.com/banshee-data/gridfit/internal/units"
)

// BinOptions describes a bin in grid units.
type BinOptions struct {
	Length int
	Width  int
	Height int
	// Output is used when no project is active; empty means DefaultBinOutput.
	Output string
}

// BaseplateOptions describes a baseplate in grid units.
type BaseplateOptions struct {
	Length int
	Width  int
	Output string
}

// Result lists what a single-component command wrote.
type Result struct {
	Project   string
	Component string
	Path      string
}

// Bin generates a bin. With an active project the file is named after the
// prompted component name and the component is added to the project.
func (g *Generator) Bin(ctx context.Context, opts BinOptions) (*Result, error) {
	g.Console.Header("Generating %dx%dx%d Gridfinity bin...", opts.Length, opts.Width, opts.Height)

	if err := units.ValidateGridUnits(opts.Length, opts.Width, opts.Height); err != nil {
		return nil, err
	}

	t, err := g.componentTarget(fmt.Sprintf("bin-%dx%dx%d", opts.Length, opts.Width, opts.Height))
	if err != nil {
		return nil, err
	}
	path := g.componentPath(t, opts.Output, DefaultBinOutput)

	r, err := g.Builder.Bin(opts.Length, opts.Width, opts.Height)
	if err != nil {
		return nil, buildFailed(err)
	}
	if err := g.export(ctx, t, project.KindBin, path, r); err != nil {
		return nil, err
	}
	g.Console.Success("Generated: %s", path)

	if err := g.addToProject(t, project.NewBin(t.component, opts.Length, opts.Width, opts.Height)); err != nil {
		return nil, err
	}
	return &Result{Project: t.project, Component: t.component, Path: path}, nil
}

// Baseplate generates a baseplate the same way Bin generates a bin.
func (g *Generator) Baseplate(ctx context.Context, opts BaseplateOptions) (*Result, error) {
	g.Console.Header("Generating %dx%d Gridfinity baseplate...", opts.Length, opts.Width)

	if err := units.ValidateGridUnits(opts.Length, opts.Width); err != nil {
		return nil, err
	}

	t, err := g.componentTarget(fmt.Sprintf("baseplate-%dx%d", opts.Length, opts.Width))
	if err != nil {
		return nil, err
	}
	path := g.componentPath(t, opts.Output, DefaultBaseplateOutput)

	r, err := g.Builder.Baseplate(opts.Length, opts.Width)
	if err != nil {
		return nil, buildFailed(err)
	}
	if err := g.export(ctx, t, project.KindBaseplate, path, r); err != nil {
		return nil, err
	}
	g.Console.Success("Generated: %s", path)

	if err := g.addToProject(t, project.NewBaseplate(t.component, opts.Length, opts.Width)); err != nil {
		return nil, err
	}
	return &Result{Project: t.project, Component: t.component, Path: path}, nil
}

func (g *Generator) componentPath(t target, output, def string) string {
	if t.project != "" {
		return g.Store.ComponentPath(t.project, t.component+".stl")
	}
	if output == "" {
		output = def
	}
	return g.resolve(output)
}

func (g *Generator) addToProject(t target, c project.Component) error {
	if t.project == "" {
		return nil
	}
	if p, err := g.Store.Load(t.project); err == nil {
		if _, ok := p.Find(c.Name); ok {
			g.Console.Warning("Replacing existing component %s in project %s", c.Name, t.project)
		}
	}
	if err := g.Store.AddComponent(t.project, c); err != nil {
		return err
	}
	g.Console.Success("Added to project: %s", t.project)
	return nil
}
