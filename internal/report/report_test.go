package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/gridfit/internal/history"
	"github.com/banshee-data/gridfit/internal/project"
	"github.com/banshee-data/gridfit/internal/units"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject(t *testing.T) *project.Project {
	t.Helper()
	fit, err := units.Convert(530, 247)
	require.NoError(t, err)
	return &project.Project{
		Name: "kitchen",
		Components: []project.Component{
			project.NewBin("spice-bin", 2, 1, 6),
			project.NewBaseplate("plate-4x4", 4, 4),
			project.NewDrawerFit("cutlery", 530, 247, fit, 3),
		},
	}
}

func TestWrite_Charts(t *testing.T) {
	var buf bytes.Buffer
	entries := []history.Entry{
		{Component: "spice-bin", Path: "spice-bin.stl", SizeBytes: 2048},
		{Component: "cutlery", Path: "cutlery-baseplate-1.stl", SizeBytes: 1024},
		{Component: "cutlery", Path: "cutlery-baseplate-2.stl", SizeBytes: 1024},
	}
	require.NoError(t, Write(&buf, sampleProject(t), entries))

	html := buf.String()
	assert.Contains(t, html, "Gridfinity project: kitchen")
	assert.Contains(t, html, "Grid footprint")
	assert.Contains(t, html, "Bin heights")
	assert.Contains(t, html, "Exported STL size")
	for _, name := range []string{"spice-bin", "plate-4x4", "cutlery"} {
		assert.Contains(t, html, name)
	}
}

func TestSizeChart_CountsEachPathOnce(t *testing.T) {
	// Newest first, as history.List returns them: the plate was regenerated
	// twice by load and shrank on the last run.
	entries := []history.Entry{
		{Component: "plate", Path: "projects/p/plate.stl", SizeBytes: 100 * 1024},
		{Component: "kit", Path: "projects/p/kit-baseplate.stl", SizeBytes: 50 * 1024},
		{Component: "kit", Path: "projects/p/kit-spacers.stl", SizeBytes: 10 * 1024},
		{Component: "plate", Path: "projects/p/plate.stl", SizeBytes: 120 * 1024},
		{Component: "plate", Path: "projects/p/plate.stl", SizeBytes: 120 * 1024},
		{Component: "kit", Path: "projects/p/kit-baseplate.stl", SizeBytes: 50 * 1024},
	}

	bar := sizeChart(entries)
	require.Len(t, bar.MultiSeries, 1)
	assert.Equal(t, []opts.BarData{{Value: 100.0}, {Value: 60.0}}, bar.MultiSeries[0].Data)

	var buf bytes.Buffer
	p := &project.Project{Name: "p", Components: []project.Component{project.NewBaseplate("plate", 2, 2)}}
	require.NoError(t, Write(&buf, p, entries))
	assert.Contains(t, buf.String(), "files=3")
}

func TestWrite_NoBinsNoHistory(t *testing.T) {
	var buf bytes.Buffer
	p := &project.Project{Name: "garage", Components: []project.Component{project.NewBaseplate("plate", 2, 2)}}
	require.NoError(t, Write(&buf, p, nil))

	html := buf.String()
	assert.Contains(t, html, "Grid footprint")
	assert.NotContains(t, html, "Bin heights")
	assert.NotContains(t, html, "Exported STL size")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", DefaultOutput("kitchen"))
	require.NoError(t, WriteFile(path, sampleProject(t), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "kitchen-report.html", DefaultOutput("kitchen"))
	assert.Equal(t, "garage_shelf-report.html", DefaultOutput("garage shelf"))
}
