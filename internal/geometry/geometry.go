// Package geometry builds Gridfinity solids and exports them as STL meshes.
// Callers only see Builder and Renderable; the solid modelling is done with
// signed distance fields from github.com/soypat/sdf.
package geometry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/gridfit/internal/units"
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/render"
)

// ErrInvalidDimensions is returned for sizes the builders cannot model.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// DefaultResolution is the octree mesh cell count along the longest axis.
const DefaultResolution = 200

// Renderable is a constructed solid ready to be written to disk.
type Renderable interface {
	Export(path string) error
}

// Builder constructs Gridfinity components.
type Builder interface {
	// Bin builds a length x width grid-unit bin, height in 7mm units.
	Bin(length, width, height int) (Renderable, error)
	// Baseplate builds a length x width grid-unit baseplate.
	Baseplate(length, width int) (Renderable, error)
	// Spacers builds the half set of spacers that fill the gap between a
	// fitted baseplate and the drawer walls.
	Spacers(drawerWidthMM, drawerDepthMM float64, fit units.Fit) (Renderable, error)
}

// Solid is an SDF model exported through the octree STL renderer.
type Solid struct {
	SDF        sdf.SDF3
	Resolution int
}

// Export renders the solid to an STL file, creating parent directories.
func (s *Solid) Export(path string) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	cells := s.Resolution
	if cells <= 0 {
		cells = DefaultResolution
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render %s: %v", path, r)
		}
	}()
	if err := render.CreateSTL(path, render.NewOctreeRenderer(s.SDF, cells)); err != nil {
		return fmt.Errorf("write STL %s: %w", path, err)
	}
	return nil
}
