package layout

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/banshee-data/gridfit/internal/units"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	drawerColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	pieceColors = []color.Color{
		color.RGBA{R: 49, G: 104, B: 142, A: 160},
		color.RGBA{R: 53, G: 183, B: 121, A: 160},
		color.RGBA{R: 181, G: 222, B: 43, A: 160},
		color.RGBA{R: 62, G: 73, B: 137, A: 160},
	}
)

// RenderPreview draws the drawer outline and every piece of a split plan in
// millimetres and saves it to path. The image format follows the extension
// (png, svg, pdf, ...).
func RenderPreview(path string, drawerWidthMM, drawerDepthMM float64, pieces []Piece) error {
	if len(pieces) == 0 {
		return fmt.Errorf("no pieces to preview")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Drawer %.0f x %.0f mm: %d piece(s)", drawerWidthMM, drawerDepthMM, len(pieces))
	p.X.Label.Text = "X (mm)"
	p.Y.Label.Text = "Y (mm)"

	outline, err := plotter.NewPolygon(rect(0, 0, drawerWidthMM, drawerDepthMM))
	if err != nil {
		return fmt.Errorf("failed to build drawer outline: %w", err)
	}
	outline.Color = nil
	outline.LineStyle.Color = drawerColor
	outline.LineStyle.Width = vg.Points(2)
	outline.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(outline)

	// Center the grid inside the drawer the same way the spacers do.
	var gridW, gridD int
	for _, pc := range pieces {
		if pc.Row == 0 {
			gridW += pc.Width
		}
		if pc.Col == 0 {
			gridD += pc.Depth
		}
	}
	originX := (drawerWidthMM - units.ToMM(gridW)) / 2
	originY := (drawerDepthMM - units.ToMM(gridD)) / 2

	centers := make(plotter.XYs, 0, len(pieces))
	labels := make([]string, 0, len(pieces))
	for i, pc := range pieces {
		x0 := originX + units.ToMM(pc.OffsetX)
		y0 := originY + units.ToMM(pc.OffsetY)
		w := units.ToMM(pc.Width)
		d := units.ToMM(pc.Depth)

		poly, err := plotter.NewPolygon(rect(x0, y0, w, d))
		if err != nil {
			return fmt.Errorf("failed to build piece %d: %w", pc.Index, err)
		}
		poly.Color = pieceColors[i%len(pieceColors)]
		poly.LineStyle.Width = vg.Points(1)
		p.Add(poly)

		centers = append(centers, plotter.XY{X: x0 + w/2, Y: y0 + d/2})
		labels = append(labels, fmt.Sprintf("#%d %s", pc.Index, pc))
	}

	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: centers, Labels: labels})
	if err != nil {
		return fmt.Errorf("failed to build labels: %w", err)
	}
	p.Add(lbl)

	p.X.Min, p.X.Max = -5, drawerWidthMM+5
	p.Y.Min, p.Y.Max = -5, drawerDepthMM+5

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create preview dir: %w", err)
		}
	}

	width, height := previewSize(drawerWidthMM, drawerDepthMM)
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

const (
	previewLongSide  = 8 * vg.Inch
	previewShortSide = 3 * vg.Inch
)

// previewSize keeps the drawer's aspect ratio with the long side fixed at
// previewLongSide. The short side never drops below previewShortSide, so very
// narrow drawers are stretched rather than rendered as a sliver.
func previewSize(widthMM, depthMM float64) (vg.Length, vg.Length) {
	if widthMM >= depthMM {
		return previewLongSide, max(previewShortSide, vg.Length(float64(previewLongSide)*depthMM/widthMM))
	}
	return max(previewShortSide, vg.Length(float64(previewLongSide)*widthMM/depthMM)), previewLongSide
}

func rect(x, y, w, h float64) plotter.XYs {
	return plotter.XYs{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
}
