package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newNewProjectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new-project <name>",
		Short: "Create a new project and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := a.generator()
			_, err := g.NewProject(args[0])
			return err
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <project>",
		Short: "Regenerate every STL file of a project and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, done := a.recordingGenerator()
			defer done()
			_, err := g.LoadProject(cmd.Context(), args[0])
			return err
		},
	}
}

func newListProjectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-projects",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := a.generator()
			_, err := g.ListProjects()
			return err
		},
	}
}

var errConfigFlagRequired = errors.New("at least one flag is required: --init or --show")

func newConfigCmd(a *app) *cobra.Command {
	var initCfg, show bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the printer configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !initCfg && !show {
				a.con.Println("Usage:")
				a.con.Println("  gf config --init    # Initialize or update printer dimensions")
				a.con.Println("  gf config --show    # Display current configuration")
				return errConfigFlagRequired
			}
			g := a.generator()
			if initCfg {
				if _, err := g.InitConfig(); err != nil {
					return err
				}
			}
			if show {
				if _, err := g.ShowConfig(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&initCfg, "init", false, "initialize or update printer dimensions interactively")
	cmd.Flags().BoolVar(&show, "show", false, "display current configuration values")
	return cmd
}
