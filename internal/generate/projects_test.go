package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/banshee-data/gridfit/internal/config"
	"github.com/banshee-data/gridfit/internal/project"
	"github.com/banshee-data/gridfit/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	f := newFixture(t)

	p, err := f.g.NewProject("kitchen")
	require.NoError(t, err)
	assert.Equal(t, "kitchen", p.Name)
	assert.Empty(t, p.Components)

	active, err := f.g.Store.Active()
	require.NoError(t, err)
	assert.Equal(t, "kitchen", active)
	assert.Contains(t, f.out.String(), "Project directory: /work/projects/kitchen")

	_, err = f.g.NewProject("kitchen")
	assert.True(t, errors.Is(err, project.ErrProjectExists))
}

func TestLoadProject_RegeneratesEverything(t *testing.T) {
	f := newFixture(t)
	f.withConfig(t, config.Default())

	split, err := units.Convert(530, 247)
	require.NoError(t, err)
	single, err := units.Convert(200, 200)
	require.NoError(t, err)

	require.NoError(t, f.g.Store.Save(&project.Project{
		Name: "kitchen",
		Components: []project.Component{
			project.NewBin("spice", 2, 1, 6),
			project.NewBaseplate("plate", 3, 3),
			project.NewDrawerFit("cutlery", 530, 247, split, 3),
			project.NewDrawerFit("junk", 200, 200, single, 0),
		},
	}))
	f.withProject(t, "garage")

	p, err := f.g.LoadProject(context.Background(), "kitchen")
	require.NoError(t, err)
	assert.Len(t, p.Components, 4)

	dir := "/work/projects/kitchen/"
	assert.Equal(t, []string{
		dir + "spice.stl",
		dir + "plate.stl",
		dir + "cutlery-baseplate-1.stl",
		dir + "cutlery-baseplate-2.stl",
		dir + "cutlery-baseplate-3.stl",
		dir + "cutlery-spacers.stl",
		dir + "junk-baseplate.stl",
		dir + "junk-spacers.stl",
	}, f.history.paths())
	assert.Equal(t, "solid bin 2x1x6\n", f.read(t, dir+"spice.stl"))

	active, err := f.g.Store.Active()
	require.NoError(t, err)
	assert.Equal(t, "kitchen", active)

	out := f.out.String()
	assert.Contains(t, out, ">>> Regenerating 4 component(s)...")
	assert.Contains(t, out, "  Generating bin: spice (2x1x6)")
	assert.Contains(t, out, "  Generating drawer-fit: cutlery (530x247mm)")
	assert.NotContains(t, out, "now splits into")
}

func TestLoadProject_ResplitsForNewBed(t *testing.T) {
	f := newFixture(t)
	f.withConfig(t, config.PrinterConfig{BedWidthMM: 350, BedDepthMM: 350})

	fit, err := units.Convert(530, 247)
	require.NoError(t, err)
	require.NoError(t, f.g.Store.Save(&project.Project{
		Name:       "kitchen",
		Components: []project.Component{project.NewDrawerFit("cutlery", 530, 247, fit, 3)},
	}))

	_, err = f.g.LoadProject(context.Background(), "kitchen")
	require.NoError(t, err)
	assert.Equal(t, []string{"baseplate 8x5", "baseplate 4x5", "spacers 530x247"}, f.builder.Calls)
	assert.Contains(t, f.out.String(), "cutlery now splits into 2 pieces (was 3) for the 350x350mm print bed")
}

func TestLoadProject_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.g.LoadProject(context.Background(), "missing")
	assert.True(t, errors.Is(err, project.ErrProjectNotFound))

	require.NoError(t, f.fs.MkdirAll("/work/projects/empty", 0755))
	_, err = f.g.LoadProject(context.Background(), "empty")
	assert.True(t, errors.Is(err, project.ErrConfigNotFound))

	active, err := f.g.Store.Active()
	require.NoError(t, err)
	assert.Empty(t, active, "failed loads leave the active project alone")
}

func TestLoadProject_BuilderFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.g.Store.Save(&project.Project{
		Name:       "kitchen",
		Components: []project.Component{project.NewBin("spice", 1, 1, 1)},
	}))
	f.builder.FailOn = "bin"

	_, err := f.g.LoadProject(context.Background(), "kitchen")
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.Contains(t, err.Error(), `component "spice"`)
}

func TestListProjects(t *testing.T) {
	f := newFixture(t)

	got, err := f.g.ListProjects()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, f.out.String(), "No projects found")

	f.withProject(t, "office")
	f.withProject(t, "garage")

	f.out.Reset()
	got, err = f.g.ListProjects()
	require.NoError(t, err)
	assert.Equal(t, []project.Summary{{Name: "garage", Active: true}, {Name: "office"}}, got)
	assert.Equal(t, "\n>>> Gridfinity Projects\n  * garage (active)\n    office\n", f.out.String())
}

func TestInitAndShowConfig(t *testing.T) {
	f := newFixture(t, "300", "")

	cfg, err := f.g.InitConfig()
	require.NoError(t, err)
	assert.Equal(t, config.PrinterConfig{BedWidthMM: 300, BedDepthMM: 225}, cfg)
	assert.Contains(t, f.out.String(), "Print bed: 300mm x 225mm")

	f.out.Reset()
	cfg, err = f.g.ShowConfig()
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.BedWidthMM)
	out := f.out.String()
	assert.Contains(t, out, "Print bed width:  300mm")
	assert.Contains(t, out, "Print bed depth:  225mm")
	assert.Contains(t, out, "Max gridfinity units: 7 x 5")
}

func TestInitConfig_RejectsNonIntegers(t *testing.T) {
	f := newFixture(t, "wide", "")
	_, err := f.g.InitConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimensions must be integers")
	assert.False(t, config.Exists(f.fs, f.g.ConfigPath))
}

func TestShowConfig_Defaults(t *testing.T) {
	f := newFixture(t)
	cfg, err := f.g.ShowConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Contains(t, f.out.String(), "Max gridfinity units: 5 x 5")
}
