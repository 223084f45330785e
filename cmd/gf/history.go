package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/banshee-data/gridfit/internal/history"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		projectName string
		limit       int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently generated STL files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.existingHistory()
			if err != nil {
				return err
			}
			var entries []history.Entry
			if db != nil {
				defer db.Close()
				entries, err = db.List(cmd.Context(), projectName, limit)
				if err != nil {
					return err
				}
			}

			a.con.Header("Generation history")
			if len(entries) == 0 {
				a.con.Println("No files generated yet")
				return nil
			}

			tw := tabwriter.NewWriter(a.con.Out(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tPROJECT\tCOMPONENT\tKIND\tSIZE\tPATH")
			for _, e := range entries {
				proj := e.Project
				if proj == "" {
					proj = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					proj, e.Component, e.Kind, humanize.Bytes(uint64(e.SizeBytes)), e.Path)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&projectName, "project", "", "only show files of this project")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries (0 for all)")
	return cmd
}
