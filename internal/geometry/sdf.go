package geometry

import (
	"fmt"
	"math"

	"github.com/banshee-data/gridfit/internal/units"
	"github.com/soypat/sdf"
	form2 "github.com/soypat/sdf/form2/must2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Gridfinity profile dimensions in millimetres.
const (
	binClearance     = 0.5  // bins are this much smaller than their grid footprint
	binCornerRadius  = 3.75 // outer corner radius of bins and baseplates
	binWallThickness = 1.2
	binFloorMM       = 1.0
	binFootSize      = 35.6 // one foot per grid cell under the bin
	binFootRadius    = 1.6
	binFootHeight    = 4.75

	baseplateHeight      = 5.0
	baseplateRim         = 0.9 // half the wall left between two pockets
	baseplatePocketRound = 3.2

	spacerHeight = baseplateHeight
	spacerLayout = 5.0 // distance between spacer parts on the print bed
)

// SDFBuilder builds components with signed distance fields.
type SDFBuilder struct {
	// Resolution is the octree cell count used when exporting.
	Resolution int
}

// NewSDFBuilder returns a builder exporting at the given resolution.
func NewSDFBuilder(resolution int) *SDFBuilder {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return &SDFBuilder{Resolution: resolution}
}

func (b *SDFBuilder) solid(s sdf.SDF3) *Solid {
	return &Solid{SDF: s, Resolution: b.Resolution}
}

// Bin builds a hollow bin standing on one foot per grid cell.
func (b *SDFBuilder) Bin(length, width, height int) (r Renderable, err error) {
	if err := units.ValidateGridUnits(length, width, height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}
	defer recoverBuild(&err)

	outerX := units.ToMM(length) - binClearance
	outerY := units.ToMM(width) - binClearance
	wallH := float64(height * units.HeightUnitMM)

	outer := extrudeOnBed(form2.Box(r2.Vec{X: outerX, Y: outerY}, binCornerRadius), wallH)
	cavity := extrudeOnBed(form2.Box(r2.Vec{
		X: outerX - 2*binWallThickness,
		Y: outerY - 2*binWallThickness,
	}, binCornerRadius-binWallThickness), wallH)
	cavity = sdf.Transform3D(cavity, sdf.Translate3D(r3.Vec{Z: binFloorMM}))
	shell := sdf.Difference3D(outer, cavity)

	foot := form2.Box(r2.Vec{X: binFootSize, Y: binFootSize}, binFootRadius)
	feet := extrudeOnBed(gridArray(foot, length, width), binFootHeight)
	feet = sdf.Transform3D(feet, sdf.Translate3D(r3.Vec{Z: -binFootHeight}))

	return b.solid(sdf.Union3D(shell, feet)), nil
}

// Baseplate builds an open-frame baseplate with one pocket per grid cell.
func (b *SDFBuilder) Baseplate(length, width int) (r Renderable, err error) {
	if err := units.ValidateGridUnits(length, width); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}
	defer recoverBuild(&err)

	plate := form2.Box(r2.Vec{X: units.ToMM(length), Y: units.ToMM(width)}, binCornerRadius)
	pocketSize := units.GridUnitMM - 2*baseplateRim
	pocket := form2.Box(r2.Vec{X: pocketSize, Y: pocketSize}, baseplatePocketRound)
	frame := sdf.Difference2D(plate, gridArray(pocket, length, width))

	return b.solid(extrudeOnBed(frame, baseplateHeight)), nil
}

// Spacers builds one of each spacer part the fit needs (the other half of
// the set is a mirror print of the same file), laid out in a row along X.
func (b *SDFBuilder) Spacers(drawerWidthMM, drawerDepthMM float64, fit units.Fit) (r Renderable, err error) {
	if drawerWidthMM < fit.ActualWidthMM || drawerDepthMM < fit.ActualDepthMM {
		return nil, fmt.Errorf("%w: drawer %gx%gmm is smaller than the baseplate %gx%gmm",
			ErrInvalidDimensions, drawerWidthMM, drawerDepthMM, fit.ActualWidthMM, fit.ActualDepthMM)
	}
	parts := fit.SpacerParts()
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: gaps are below the %dmm spacer threshold", ErrInvalidDimensions, units.MinSpacerGapMM)
	}
	defer recoverBuild(&err)

	sideX, sideY := fit.PerSideGaps()
	var pieces []sdf.SDF3
	cursor := 0.0
	for _, part := range parts {
		var size r2.Vec
		switch part {
		case units.SpacerCorner:
			size = r2.Vec{X: sideX, Y: sideY}
		case units.SpacerFrontBack:
			size = r2.Vec{X: fit.ActualWidthMM, Y: sideY}
		case units.SpacerLeftRight:
			size = r2.Vec{X: sideX, Y: fit.ActualDepthMM}
		}
		s := extrudeOnBed(form2.Box(size, 0), spacerHeight)
		s = sdf.Transform3D(s, sdf.Translate3D(r3.Vec{X: cursor + size.X/2, Y: size.Y / 2}))
		pieces = append(pieces, s)
		cursor += size.X + spacerLayout
	}

	if len(pieces) == 1 {
		return b.solid(pieces[0]), nil
	}
	return b.solid(sdf.Union3D(pieces...)), nil
}

// gridArray repeats a cell profile nx by ny times on the 42mm pitch,
// centred on the origin.
func gridArray(cell sdf.SDF2, nx, ny int) sdf.SDF2 {
	pitch := float64(units.GridUnitMM)
	arr := sdf.Array2D(cell, sdf.V2i{nx, ny}, r2.Vec{X: pitch, Y: pitch})
	offset := r2.Vec{X: -float64(nx-1) * pitch / 2, Y: -float64(ny-1) * pitch / 2}
	return sdf.Transform2D(arr, sdf.Translate2D(offset))
}

// extrudeOnBed extrudes a profile so it spans z in [0, height]. Extrude3D is
// symmetric about the XY plane.
func extrudeOnBed(profile sdf.SDF2, height float64) sdf.SDF3 {
	s := sdf.Extrude3D(profile, height)
	return sdf.Transform3D(s, sdf.Translate3D(r3.Vec{Z: height / 2}))
}

// recoverBuild turns a panic from the must-constructors into an error.
func recoverBuild(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrInvalidDimensions, r)
	}
}

// SpacerLayoutSize returns the bed area in millimetres that the spacer half
// set produced by Spacers occupies.
func SpacerLayoutSize(fit units.Fit) (float64, float64) {
	sideX, sideY := fit.PerSideGaps()
	var w, d float64
	for i, part := range fit.SpacerParts() {
		if i > 0 {
			w += spacerLayout
		}
		switch part {
		case units.SpacerCorner:
			w += sideX
			d = math.Max(d, sideY)
		case units.SpacerFrontBack:
			w += fit.ActualWidthMM
			d = math.Max(d, sideY)
		case units.SpacerLeftRight:
			w += sideX
			d = math.Max(d, fit.ActualDepthMM)
		}
	}
	return w, d
}
