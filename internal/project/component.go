package project

import (
	"fmt"

	"github.com/banshee-data/gridfit/internal/units"
)

// Kind identifies the type of a project component.
type Kind string

const (
	KindBin       Kind = "bin"
	KindBaseplate Kind = "baseplate"
	KindDrawerFit Kind = "drawer-fit"
)

// Component is one generated part of a project. Name is unique within the
// project; which dimension fields are set depends on Type.
type Component struct {
	Name string `json:"name"`
	Type Kind   `json:"type"`

	// bin and baseplate, in grid units
	Length int `json:"length,omitempty"`
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// drawer-fit
	WidthMM    float64 `json:"width_mm,omitempty"`
	DepthMM    float64 `json:"depth_mm,omitempty"`
	UnitsWidth int     `json:"units_width,omitempty"`
	UnitsDepth int     `json:"units_depth,omitempty"`
	SplitCount int     `json:"split_count,omitempty"`
}

// NewBin returns a bin component.
func NewBin(name string, length, width, height int) Component {
	return Component{Name: name, Type: KindBin, Length: length, Width: width, Height: height}
}

// NewBaseplate returns a baseplate component.
func NewBaseplate(name string, length, width int) Component {
	return Component{Name: name, Type: KindBaseplate, Length: length, Width: width}
}

// NewDrawerFit returns a drawer-fit component. splitCount is zero when the
// baseplate was generated as a single piece.
func NewDrawerFit(name string, widthMM, depthMM float64, fit units.Fit, splitCount int) Component {
	return Component{
		Name:       name,
		Type:       KindDrawerFit,
		WidthMM:    widthMM,
		DepthMM:    depthMM,
		UnitsWidth: fit.UnitsWidth,
		UnitsDepth: fit.UnitsDepth,
		SplitCount: splitCount,
	}
}

// Validate checks that the fields required by the component type are set.
func (c Component) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("component name must not be empty")
	}
	switch c.Type {
	case KindBin:
		return units.ValidateGridUnits(c.Length, c.Width, c.Height)
	case KindBaseplate:
		return units.ValidateGridUnits(c.Length, c.Width)
	case KindDrawerFit:
		if _, err := units.Convert(c.WidthMM, c.DepthMM); err != nil {
			return fmt.Errorf("component %q: %w", c.Name, err)
		}
		return nil
	default:
		return fmt.Errorf("component %q has unknown type %q", c.Name, c.Type)
	}
}

// Footprint returns the component's size on the grid in units.
func (c Component) Footprint() (int, int) {
	if c.Type == KindDrawerFit {
		return c.UnitsWidth, c.UnitsDepth
	}
	return c.Length, c.Width
}

// Describe returns a short dimension string for listings.
func (c Component) Describe() string {
	switch c.Type {
	case KindBin:
		return fmt.Sprintf("%dx%dx%d", c.Length, c.Width, c.Height)
	case KindBaseplate:
		return fmt.Sprintf("%dx%d", c.Length, c.Width)
	case KindDrawerFit:
		return fmt.Sprintf("%gx%gmm", c.WidthMM, c.DepthMM)
	default:
		return ""
	}
}
