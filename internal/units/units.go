// Package units provides the Gridfinity grid constants and the millimetre to
// grid-unit conversion used to fit baseplates into drawers.
package units

import (
	"errors"
	"fmt"
	"math"
)

// Grid constants
const (
	GridUnitMM     = 42 // one grid cell, both axes
	HeightUnitMM   = 7  // one bin height step
	MinSpacerGapMM = 4  // per-side gap above which spacers are generated

	// MaxDimensionMM bounds drawer dimensions so unit counts stay small ints.
	MaxDimensionMM = 10000
)

var (
	// ErrNonPositive is returned when a drawer dimension is zero or negative.
	ErrNonPositive = errors.New("dimensions must be positive numbers")
	// ErrBelowMinimum is returned when a drawer dimension cannot hold one grid unit.
	ErrBelowMinimum = errors.New("dimension below one grid unit")
	// ErrOutOfRange is returned for non-finite or implausibly large dimensions.
	ErrOutOfRange = errors.New("dimension out of range")
)

// Fit is the result of converting a drawer opening into whole grid units.
// Units never round up, so the covered area always fits inside the opening.
type Fit struct {
	UnitsWidth    int
	UnitsDepth    int
	ActualWidthMM float64
	ActualDepthMM float64
	GapXMM        float64
	GapYMM        float64
}

// Convert converts drawer dimensions in millimetres to whole grid units.
func Convert(widthMM, depthMM float64) (Fit, error) {
	if err := checkRange("width", widthMM); err != nil {
		return Fit{}, err
	}
	if err := checkRange("depth", depthMM); err != nil {
		return Fit{}, err
	}
	if widthMM <= 0 || depthMM <= 0 {
		return Fit{}, ErrNonPositive
	}
	if widthMM < GridUnitMM {
		return Fit{}, fmt.Errorf("width must be at least %dmm to fit a 1-unit baseplate: %w", GridUnitMM, ErrBelowMinimum)
	}
	if depthMM < GridUnitMM {
		return Fit{}, fmt.Errorf("depth must be at least %dmm to fit a 1-unit baseplate: %w", GridUnitMM, ErrBelowMinimum)
	}

	uw := ToUnits(widthMM)
	ud := ToUnits(depthMM)
	aw := ToMM(uw)
	ad := ToMM(ud)

	return Fit{
		UnitsWidth:    uw,
		UnitsDepth:    ud,
		ActualWidthMM: aw,
		ActualDepthMM: ad,
		GapXMM:        widthMM - aw,
		GapYMM:        depthMM - ad,
	}, nil
}

// checkRange rejects NaN, infinities and values above MaxDimensionMM. NaN
// compares false against every bound, so it has to be caught first.
func checkRange(axis string, mm float64) error {
	if math.IsNaN(mm) || math.IsInf(mm, 0) {
		return fmt.Errorf("%s must be a finite number, got %v: %w", axis, mm, ErrOutOfRange)
	}
	if mm > MaxDimensionMM {
		return fmt.Errorf("%s must be at most %dmm, got %gmm: %w", axis, MaxDimensionMM, mm, ErrOutOfRange)
	}
	return nil
}

// ToUnits floor-divides a length in millimetres by the grid unit.
func ToUnits(mm float64) int {
	return int(math.Floor(mm / GridUnitMM))
}

// ToMM returns the length covered by n grid units.
func ToMM(n int) float64 {
	return float64(n * GridUnitMM)
}

// MaxUnits returns how many whole grid units fit on a print bed per axis.
func MaxUnits(bedWidthMM, bedDepthMM int) (int, int) {
	return bedWidthMM / GridUnitMM, bedDepthMM / GridUnitMM
}

// PerSideGap splits a total gap evenly between the two opposing walls.
func PerSideGap(gapMM float64) float64 {
	return gapMM / 2
}

// PerSideGaps returns the per-side gap on each axis.
func (f Fit) PerSideGaps() (float64, float64) {
	return PerSideGap(f.GapXMM), PerSideGap(f.GapYMM)
}

// NeedsSpacers reports whether the per-side gap exceeds MinSpacerGapMM on
// at least one axis.
func (f Fit) NeedsSpacers() bool {
	x, y := f.PerSideGaps()
	return x > MinSpacerGapMM || y > MinSpacerGapMM
}

// Spacer part names
const (
	SpacerCorner    = "corner"
	SpacerFrontBack = "front/back"
	SpacerLeftRight = "left/right"
)

// SpacerParts lists the spacer pieces a fit requires. Gaps on the X axis are
// filled by left/right strips, gaps on Y by front/back strips, and corners are
// only needed when both axes are filled.
func (f Fit) SpacerParts() []string {
	x, y := f.PerSideGaps()
	overX := x > MinSpacerGapMM
	overY := y > MinSpacerGapMM

	switch {
	case overX && overY:
		return []string{SpacerCorner, SpacerFrontBack, SpacerLeftRight}
	case overX:
		return []string{SpacerLeftRight}
	case overY:
		return []string{SpacerFrontBack}
	default:
		return nil
	}
}

// ValidateGridUnits checks that every grid dimension is at least one unit.
func ValidateGridUnits(dims ...int) error {
	for _, d := range dims {
		if d < 1 {
			return fmt.Errorf("all dimensions must be positive integers >= 1, got %d", d)
		}
	}
	return nil
}
