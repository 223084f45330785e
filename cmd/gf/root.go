package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/banshee-data/gridfit/internal/console"
	"github.com/banshee-data/gridfit/internal/generate"
	"github.com/banshee-data/gridfit/internal/geometry"
	"github.com/banshee-data/gridfit/internal/history"
	"github.com/banshee-data/gridfit/internal/monitoring"
	"github.com/banshee-data/gridfit/internal/version"
	"github.com/spf13/cobra"
)

// app holds the persistent flag values and shared collaborators.
type app struct {
	con        *console.Console
	dir        string
	resolution int
	debug      bool

	// builder overrides the SDF builder; tests set it.
	builder geometry.Builder
	flush   func()
}

func newApp(con *console.Console) *app {
	return &app{con: con, dir: ".", resolution: geometry.DefaultResolution}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "gf",
		Short:         "Generate Gridfinity storage components and track them in projects",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flush, err := monitoring.Init(a.debug)
			if err != nil {
				return err
			}
			a.flush = flush
			monitoring.Debugf("gf %s: root=%s resolution=%d", version.Version, a.dir, a.resolution)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.dir, "dir", ".", "working directory holding projects and config")
	pf.IntVar(&a.resolution, "resolution", geometry.DefaultResolution, "STL mesh resolution (octree cells along the longest axis)")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newBinCmd(a),
		newBaseplateCmd(a),
		newDrawerFitCmd(a),
		newNewProjectCmd(a),
		newLoadCmd(a),
		newListProjectsCmd(a),
		newConfigCmd(a),
		newHistoryCmd(a),
		newReportCmd(a),
		newVersionCmd(a),
	)
	return root
}

// historyPath is the ledger location under the working directory.
func (a *app) historyPath() string {
	return filepath.Join(a.dir, history.DefaultPath)
}

// generator wires a Generator for a command that only reads state.
func (a *app) generator() *generate.Generator {
	builder := a.builder
	if builder == nil {
		builder = geometry.NewSDFBuilder(a.resolution)
	}
	return generate.New(a.dir, builder, a.con, a.con)
}

// recordingGenerator wires a Generator that records exported files in the
// history ledger. The returned function closes the ledger. A ledger that
// cannot be opened disables recording.
func (a *app) recordingGenerator() (*generate.Generator, func()) {
	g := a.generator()

	db, err := history.Open(a.historyPath())
	if err != nil {
		monitoring.Logf("history disabled: %v", err)
		return g, func() {}
	}
	if v, dirty, err := db.Version(); err == nil {
		monitoring.Debugf("history ledger %s at schema version %d (dirty=%v)", a.historyPath(), v, dirty)
	}
	g.History = db
	return g, func() {
		if err := db.Close(); err != nil {
			monitoring.Logf("failed to close history db: %v", err)
		}
	}
}

// existingHistory opens the ledger for reading. It returns a nil DB when
// nothing has been generated yet, so read-only commands never create it.
func (a *app) existingHistory() (*history.DB, error) {
	path := a.historyPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return history.Open(path)
}

// close flushes the logger installed by the root command. Execute skips
// post-run hooks when a command fails, so main calls this unconditionally.
func (a *app) close() {
	if a.flush != nil {
		a.flush()
		a.flush = nil
	}
}
