package generate

import (
	"context"
	"fmt"

	"github.com/banshee-data/gridfit/internal/config"
	"github.com/banshee-data/gridfit/internal/layout"
	"github.com/banshee-data/gridfit/internal/project"
	"github.com/banshee-data/gridfit/internal/units"
)

// NewProject creates an empty project and makes it active.
func (g *Generator) NewProject(name string) (*project.Project, error) {
	g.Console.Header("Creating new project: %s", name)

	p, err := g.Store.Create(name)
	if err != nil {
		return nil, err
	}
	g.Console.Success("Created project: %s", name)
	g.Console.Success("Project directory: %s", g.Store.Path(name))
	g.Console.Success("Active project set to: %s", name)
	return p, nil
}

// LoadProject regenerates every STL file of a project from its config and
// makes it the active project.
func (g *Generator) LoadProject(ctx context.Context, name string) (*project.Project, error) {
	g.Console.Header("Loading project: %s", name)

	p, err := g.Store.Load(name)
	if err != nil {
		return nil, err
	}

	g.Console.Header("Regenerating %d component(s)...", len(p.Components))
	for _, c := range p.Components {
		if err := g.regenerate(ctx, p.Name, c); err != nil {
			return nil, fmt.Errorf("component %q: %w", c.Name, err)
		}
	}

	if err := g.Store.SetActive(name); err != nil {
		return nil, err
	}
	g.Console.Success("Loaded project: %s", name)
	g.Console.Success("Active project set to: %s", name)
	return p, nil
}

func (g *Generator) regenerate(ctx context.Context, projectName string, c project.Component) error {
	t := target{project: projectName, component: c.Name}

	switch c.Type {
	case project.KindBin:
		g.Console.Printf("  Generating bin: %s (%s)\n", c.Name, c.Describe())
		r, err := g.Builder.Bin(c.Length, c.Width, c.Height)
		if err != nil {
			return buildFailed(err)
		}
		return g.export(ctx, t, c.Type, g.Store.ComponentPath(projectName, c.Name+".stl"), r)

	case project.KindBaseplate:
		g.Console.Printf("  Generating baseplate: %s (%s)\n", c.Name, c.Describe())
		r, err := g.Builder.Baseplate(c.Length, c.Width)
		if err != nil {
			return buildFailed(err)
		}
		return g.export(ctx, t, c.Type, g.Store.ComponentPath(projectName, c.Name+".stl"), r)

	case project.KindDrawerFit:
		g.Console.Printf("  Generating drawer-fit: %s (%s)\n", c.Name, c.Describe())
		return g.regenerateDrawerFit(ctx, t, c)

	default:
		return fmt.Errorf("unknown component type %q", c.Type)
	}
}

// regenerateDrawerFit rebuilds a kit the way it was first generated: split
// kits are re-split for the current print bed.
func (g *Generator) regenerateDrawerFit(ctx context.Context, t target, c project.Component) error {
	fit, err := units.Convert(c.WidthMM, c.DepthMM)
	if err != nil {
		return err
	}
	paths := g.drawerFitPaths(t, "")

	if c.SplitCount > 0 {
		cfg, err := config.Load(g.FS, g.ConfigPath)
		if err != nil {
			return err
		}
		maxX, maxY := cfg.MaxUnits()
		pieces, err := layout.Split(fit.UnitsWidth, fit.UnitsDepth, maxX, maxY)
		if err != nil {
			return err
		}
		if len(pieces) != c.SplitCount {
			g.Console.Warning("  %s now splits into %d pieces (was %d) for the %dx%dmm print bed",
				c.Name, len(pieces), c.SplitCount, cfg.BedWidthMM, cfg.BedDepthMM)
		}
		if _, err := g.exportPieces(ctx, t, paths.splitPrefix, pieces); err != nil {
			return err
		}
	} else {
		r, err := g.Builder.Baseplate(fit.UnitsWidth, fit.UnitsDepth)
		if err != nil {
			return buildFailed(err)
		}
		if err := g.export(ctx, t, c.Type, paths.single, r); err != nil {
			return err
		}
	}

	if fit.NeedsSpacers() {
		return g.exportSpacers(ctx, t, c.WidthMM, c.DepthMM, fit, paths.spacers)
	}
	return nil
}

// ListProjects prints every project, marking the active one.
func (g *Generator) ListProjects() ([]project.Summary, error) {
	g.Console.Header("Gridfinity Projects")

	projects, err := g.Store.List()
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		g.Console.Println("No projects found")
		return projects, nil
	}
	for _, p := range projects {
		if p.Active {
			g.Console.Printf("  * %s (active)\n", p.Name)
		} else {
			g.Console.Printf("    %s\n", p.Name)
		}
	}
	return projects, nil
}

// InitConfig prompts for the print bed size and saves it, replacing any
// existing config.
func (g *Generator) InitConfig() (config.PrinterConfig, error) {
	g.Console.Header("Printer Configuration Setup")
	g.Console.Println()
	g.Console.Println("Enter your printer's bed dimensions in millimeters.")
	g.Console.Println()

	cfg, err := config.Ask(g.Prompter)
	if err != nil {
		return config.PrinterConfig{}, err
	}
	if err := config.Save(g.FS, g.ConfigPath, cfg); err != nil {
		return config.PrinterConfig{}, err
	}

	g.Console.Println()
	g.Console.Success("Configuration saved to %s", config.DefaultPath)
	g.Console.Success("Print bed: %dmm x %dmm", cfg.BedWidthMM, cfg.BedDepthMM)
	return cfg, nil
}

// ShowConfig prints the current print bed and how many grid units fit on it.
func (g *Generator) ShowConfig() (config.PrinterConfig, error) {
	g.Console.Header("Current Printer Configuration")
	g.Console.Println()

	cfg, err := config.Load(g.FS, g.ConfigPath)
	if err != nil {
		return config.PrinterConfig{}, err
	}
	maxX, maxY := cfg.MaxUnits()

	g.Console.Printf("Print bed width:  %dmm\n", cfg.BedWidthMM)
	g.Console.Printf("Print bed depth:  %dmm\n", cfg.BedDepthMM)
	g.Console.Println()
	g.Console.Printf("Max gridfinity units: %d x %d\n", maxX, maxY)
	g.Console.Println()
	return cfg, nil
}
