package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/gridfit/internal/config"
	"github.com/banshee-data/gridfit/internal/geometry"
	"github.com/banshee-data/gridfit/internal/layout"
	"github.com/banshee-data/gridfit/internal/monitoring"
	"github.com/banshee-data/gridfit/internal/project"
	"github.com/banshee-data/gridfit/internal/units"
)

// DrawerFitOptions describes a drawer opening in millimetres.
type DrawerFitOptions struct {
	WidthMM float64
	DepthMM float64
	// Output is the path prefix used when no project is active; empty means
	// DefaultDrawerFitOutput.
	Output string
	// Split answers the split prompt up front; nil asks interactively.
	Split *bool
	// Preview, when set, is the image file the split plan is drawn to.
	Preview string
}

// DrawerFitResult is what a drawer-fit run produced.
type DrawerFitResult struct {
	units.Fit
	Project   string
	Component string
	// BaseplatePath is the first (or only) baseplate file.
	BaseplatePath  string
	BaseplatePaths []string
	// SpacerPath is empty when the gaps needed no spacers.
	SpacerPath string
	Pieces     []layout.Piece
	// SplitCount is zero when the baseplate was generated in one piece.
	SplitCount  int
	PreviewPath string
}

// kitPaths are the output locations of one drawer-fit kit.
type kitPaths struct {
	single      string // unsplit baseplate
	splitPrefix string // split pieces are <splitPrefix>-<i>.stl
	spacers     string
}

// DrawerFit fits a baseplate and spacers to a drawer. When the baseplate
// exceeds the print bed the user may split it into pieces that fit.
func (g *Generator) DrawerFit(ctx context.Context, opts DrawerFitOptions) (*DrawerFitResult, error) {
	g.Console.Header("Generating drawer-fit solution for %gx%gmm drawer...", opts.WidthMM, opts.DepthMM)
	g.Console.Println()

	cfg, err := g.ensureConfig()
	if err != nil {
		return nil, err
	}
	g.Console.Println()

	fit, err := units.Convert(opts.WidthMM, opts.DepthMM)
	if err != nil {
		return nil, err
	}

	maxX, maxY := cfg.MaxUnits()
	needsSplit := layout.NeedsSplit(fit.UnitsWidth, fit.UnitsDepth, maxX, maxY)
	split := false
	var pieces []layout.Piece

	if needsSplit {
		pieces, err = layout.Split(fit.UnitsWidth, fit.UnitsDepth, maxX, maxY)
		if err != nil {
			return nil, err
		}
		g.Console.Warning("Warning: Calculated baseplate (%dx%d units = %gx%gmm) exceeds print bed (%dx%dmm)",
			fit.UnitsWidth, fit.UnitsDepth, fit.ActualWidthMM, fit.ActualDepthMM, cfg.BedWidthMM, cfg.BedDepthMM)
		g.Console.Warning("   Suggestion: Split into %d baseplates: %s units", len(pieces), layout.Summary(pieces))
		g.Console.Println()

		if opts.Split != nil {
			split = *opts.Split
		} else {
			split, err = g.Prompter.Confirm("Split into smaller baseplates?")
			if err != nil {
				return nil, fmt.Errorf("failed to read input: %w", err)
			}
		}
		g.Console.Println()
	}

	t, err := g.componentTarget(fmt.Sprintf("drawer-fit-%dx%dmm", int(opts.WidthMM), int(opts.DepthMM)))
	if err != nil {
		return nil, err
	}
	paths := g.drawerFitPaths(t, opts.Output)

	res := &DrawerFitResult{Fit: fit, Project: t.project, Component: t.component}

	if split {
		g.Console.Header("Generating split baseplates...")
		res.Pieces = pieces
		res.SplitCount = len(pieces)
		res.BaseplatePaths, err = g.exportPieces(ctx, t, paths.splitPrefix, pieces)
		if err != nil {
			return nil, err
		}
	} else {
		if needsSplit {
			g.Console.Warning("Proceeding with single oversized baseplate...")
			g.Console.Println()
		}
		res.Pieces = []layout.Piece{{Index: 1, Width: fit.UnitsWidth, Depth: fit.UnitsDepth}}
		r, err := g.Builder.Baseplate(fit.UnitsWidth, fit.UnitsDepth)
		if err != nil {
			return nil, buildFailed(err)
		}
		if err := g.export(ctx, t, project.KindDrawerFit, paths.single, r); err != nil {
			return nil, err
		}
		res.BaseplatePaths = []string{paths.single}
	}
	res.BaseplatePath = res.BaseplatePaths[0]

	// Spacers always cover the whole drawer, split or not.
	if fit.NeedsSpacers() {
		if err := g.exportSpacers(ctx, t, opts.WidthMM, opts.DepthMM, fit, paths.spacers); err != nil {
			return nil, err
		}
		res.SpacerPath = paths.spacers
	}

	g.printSummary(opts.WidthMM, opts.DepthMM, fit)

	if res.SpacerPath != "" && (opts.WidthMM > float64(cfg.BedWidthMM) || opts.DepthMM > float64(cfg.BedDepthMM)) {
		g.Console.Warning("Warning: Spacer dimensions may exceed print bed (%dx%dmm)", cfg.BedWidthMM, cfg.BedDepthMM)
		g.Console.Println()
	}

	if !split {
		if needsSplit {
			g.Console.Success("Generated baseplate: %s (WARNING: exceeds print bed)", res.BaseplatePath)
		} else {
			g.Console.Success("Generated baseplate: %s", res.BaseplatePath)
		}
	}
	if res.SpacerPath != "" {
		g.Console.Success("Generated spacers: %s", res.SpacerPath)
	} else {
		g.Console.Println("No spacers generated (gaps below 4mm threshold)")
	}

	if opts.Preview != "" {
		res.PreviewPath = g.resolve(opts.Preview)
		if err := layout.RenderPreview(res.PreviewPath, opts.WidthMM, opts.DepthMM, res.Pieces); err != nil {
			return nil, err
		}
		g.Console.Success("Preview: %s", res.PreviewPath)
	}

	comp := project.NewDrawerFit(t.component, opts.WidthMM, opts.DepthMM, fit, res.SplitCount)
	if err := g.addToProject(t, comp); err != nil {
		return nil, err
	}
	return res, nil
}

// ensureConfig loads the printer config, prompting for one on first use.
func (g *Generator) ensureConfig() (config.PrinterConfig, error) {
	cfg, created, err := config.Ensure(g.FS, g.ConfigPath, g.Prompter)
	if err != nil {
		return config.PrinterConfig{}, err
	}
	if created {
		g.Console.Success("Configuration saved to %s", config.DefaultPath)
		g.Console.Success("Print bed: %dmm x %dmm", cfg.BedWidthMM, cfg.BedDepthMM)
	} else {
		g.Console.Printf("Using printer config: %dx%dmm print bed\n", cfg.BedWidthMM, cfg.BedDepthMM)
	}
	return cfg, nil
}

// drawerFitPaths names the kit files. Inside a project everything is named
// after the component; otherwise Output is a prefix and split pieces go
// next to it as baseplate-<i>.stl.
func (g *Generator) drawerFitPaths(t target, output string) kitPaths {
	if t.project != "" {
		base := g.Store.ComponentPath(t.project, t.component)
		return kitPaths{
			single:      base + "-baseplate.stl",
			splitPrefix: base + "-baseplate",
			spacers:     base + "-spacers.stl",
		}
	}
	if output == "" {
		output = DefaultDrawerFitOutput
	}
	prefix := g.resolve(output)
	return kitPaths{
		single:      prefix + "-baseplate.stl",
		splitPrefix: filepath.Join(filepath.Dir(prefix), "baseplate"),
		spacers:     prefix + "-spacers.stl",
	}
}

// exportPieces builds and writes one baseplate per piece, in plan order.
func (g *Generator) exportPieces(ctx context.Context, t target, prefix string, pieces []layout.Piece) ([]string, error) {
	paths := make([]string, 0, len(pieces))
	for _, pc := range pieces {
		r, err := g.Builder.Baseplate(pc.Width, pc.Depth)
		if err != nil {
			return nil, buildFailed(err)
		}
		path := layout.PieceFileName(prefix, pc)
		if err := g.export(ctx, t, project.KindDrawerFit, path, r); err != nil {
			return nil, err
		}
		g.Console.Success("  Generated %s (%s units)", filepath.Base(path), pc)
		paths = append(paths, path)
	}
	return paths, nil
}

func (g *Generator) exportSpacers(ctx context.Context, t target, widthMM, depthMM float64, fit units.Fit, path string) error {
	r, err := g.Builder.Spacers(widthMM, depthMM, fit)
	if err != nil {
		return buildFailed(err)
	}
	lw, ld := geometry.SpacerLayoutSize(fit)
	monitoring.Debugf("spacer half set lays out to %.1fx%.1fmm", lw, ld)
	return g.export(ctx, t, project.KindDrawerFit, path, r)
}

// printSummary prints the fit calculation and which spacer parts it needs.
func (g *Generator) printSummary(widthMM, depthMM float64, fit units.Fit) {
	sideX, sideY := fit.PerSideGaps()
	g.Console.Println()
	g.Console.Printf("Drawer: %g x %g mm\n", widthMM, depthMM)
	g.Console.Printf("Units: %d x %d\n", fit.UnitsWidth, fit.UnitsDepth)
	g.Console.Printf("Baseplate: %g x %g mm\n", fit.ActualWidthMM, fit.ActualDepthMM)
	g.Console.Printf("Gaps: X=%gmm per side, Y=%gmm per side\n", sideX, sideY)

	if parts := fit.SpacerParts(); len(parts) > 0 {
		g.Console.Printf("Spacers: %s\n", strings.Join(parts, ", "))
	} else {
		g.Console.Println("Spacers: none needed (gaps too small)")
	}
	g.Console.Println()
}
