package main

import (
	"errors"
	"path/filepath"

	"github.com/banshee-data/gridfit/internal/history"
	"github.com/banshee-data/gridfit/internal/monitoring"
	"github.com/banshee-data/gridfit/internal/project"
	"github.com/banshee-data/gridfit/internal/report"
	"github.com/spf13/cobra"
)

var errNoProject = errors.New("no project given and no active project")

func newReportCmd(a *app) *cobra.Command {
	var projectName, output string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write an HTML chart of a project's components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := project.NewStore(a.dir)
			name := projectName
			if name == "" {
				active, err := store.Active()
				if err != nil {
					return err
				}
				if active == "" {
					return errNoProject
				}
				name = active
			}

			p, err := store.Load(name)
			if err != nil {
				return err
			}

			var entries []history.Entry
			db, err := a.existingHistory()
			switch {
			case err != nil:
				monitoring.Logf("history unavailable for report: %v", err)
			case db != nil:
				entries, err = db.List(cmd.Context(), p.Name, 0)
				db.Close()
				if err != nil {
					return err
				}
			}

			path := output
			if path == "" {
				path = report.DefaultOutput(p.Name)
			}
			if !filepath.IsAbs(path) {
				path = filepath.Join(a.dir, path)
			}
			if err := report.WriteFile(path, p, entries); err != nil {
				return err
			}
			a.con.Success("Report for %s written to %s", p.Name, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectName, "project", "", "project to report on (default: active project)")
	cmd.Flags().StringVar(&output, "output", "", "HTML file to write (default: <project>-report.html)")
	return cmd
}
