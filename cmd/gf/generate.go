package main

import (
	"fmt"

	"github.com/banshee-data/gridfit/internal/generate"
	"github.com/spf13/cobra"
)

func newBinCmd(a *app) *cobra.Command {
	var opts generate.BinOptions
	cmd := &cobra.Command{
		Use:   "bin",
		Short: "Generate a Gridfinity bin and export to STL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, done := a.recordingGenerator()
			defer done()
			_, err := g.Bin(cmd.Context(), opts)
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.Length, "length", 2, "length in grid units (1 unit = 42mm)")
	f.IntVar(&opts.Width, "width", 2, "width in grid units")
	f.IntVar(&opts.Height, "height", 3, "height in height units (1 unit = 7mm)")
	f.StringVar(&opts.Output, "output", generate.DefaultBinOutput, "output STL path when no project is active")
	return cmd
}

func newBaseplateCmd(a *app) *cobra.Command {
	var opts generate.BaseplateOptions
	cmd := &cobra.Command{
		Use:   "baseplate",
		Short: "Generate a Gridfinity baseplate and export to STL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, done := a.recordingGenerator()
			defer done()
			_, err := g.Baseplate(cmd.Context(), opts)
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.Length, "length", 4, "length in grid units (1 unit = 42mm)")
	f.IntVar(&opts.Width, "width", 4, "width in grid units")
	f.StringVar(&opts.Output, "output", generate.DefaultBaseplateOutput, "output STL path when no project is active")
	return cmd
}

func newDrawerFitCmd(a *app) *cobra.Command {
	var (
		opts    generate.DrawerFitOptions
		split   bool
		noSplit bool
	)
	cmd := &cobra.Command{
		Use:   "drawer-fit",
		Short: "Generate a baseplate and spacers that fill a drawer",
		Long: `Fit whole 42mm grid units into a drawer opening, generate the baseplate
and, when the leftover gap is more than 4mm per side, the spacers that fill it.
Baseplates larger than the print bed can be split into pieces that fit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("width") || !cmd.Flags().Changed("depth") {
				return fmt.Errorf("--width and --depth are required")
			}
			switch {
			case split:
				opts.Split = &split
			case noSplit:
				no := false
				opts.Split = &no
			}
			g, done := a.recordingGenerator()
			defer done()
			_, err := g.DrawerFit(cmd.Context(), opts)
			return err
		},
	}
	f := cmd.Flags()
	f.Float64Var(&opts.WidthMM, "width", 0, "drawer width (X) in millimetres")
	f.Float64Var(&opts.DepthMM, "depth", 0, "drawer depth (Y) in millimetres")
	f.StringVar(&opts.Output, "output", generate.DefaultDrawerFitOutput, "output path prefix when no project is active")
	f.BoolVar(&split, "split", false, "split an oversized baseplate without asking")
	f.BoolVar(&noSplit, "no-split", false, "keep an oversized baseplate in one piece without asking")
	f.StringVar(&opts.Preview, "preview", "", "write a drawing of the baseplate layout to this image (png, svg, pdf)")
	cmd.MarkFlagsMutuallyExclusive("split", "no-split")
	return cmd
}
