package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	outlineColor    = color.Black
	longColor       = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	transverseColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	bentColor       = color.RGBA{R: 0, G: 100, B: 0, A: 255}
)

// ExportPlan exports a plan of the framed opening to an image file. The
// format follows the extension (.png, .svg, .pdf); anything else is
// written as PNG with ".png" appended.
func ExportPlan(pl *Plan, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Opening %s framing", pl.Opening)
	p.X.Label.Text = "Along long edge (mm)"
	p.Y.Label.Text = "Along transverse edge (mm)"

	outline := make(plotter.XYs, 0, 5)
	for _, pt := range pl.Outline() {
		outline = append(outline, plotter.XY{X: pt.X, Y: pt.Y})
	}
	opening, err := plotter.NewPolygon(outline)
	if err != nil {
		return err
	}
	opening.Color = color.RGBA{R: 220, G: 220, B: 220, A: 150}
	opening.LineStyle.Width = vg.Points(2)
	opening.LineStyle.Color = outlineColor
	p.Add(opening)

	for _, ln := range pl.Straight {
		c := longColor
		if abs64(ln.To.X-ln.From.X) < abs64(ln.To.Y-ln.From.Y) {
			c = transverseColor
		}
		if err := addLine(p, ln, c, vg.Points(1.5)); err != nil {
			return err
		}
	}

	var ends plotter.XYs
	for _, ln := range pl.Bent {
		if err := addLine(p, ln, bentColor, vg.Points(1)); err != nil {
			return err
		}
		ends = append(ends, plotter.XY{X: ln.To.X, Y: ln.To.Y})
	}
	if len(ends) > 0 {
		bends, err := plotter.NewScatter(ends)
		if err != nil {
			return err
		}
		bends.GlyphStyle.Color = bentColor
		bends.GlyphStyle.Radius = vg.Points(2.5)
		bends.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(bends)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0, Y: 0}},
		Labels: []string{fmt.Sprintf("%.0f x %.0f", pl.Length, pl.Width)},
	})
	if err != nil {
		return err
	}
	p.Add(labels)

	// keep the plan undistorted
	span := max(pl.Max.X-pl.Min.X, pl.Max.Y-pl.Min.Y) * 1.1
	cx, cy := (pl.Max.X+pl.Min.X)/2, (pl.Max.Y+pl.Min.Y)/2
	p.X.Min, p.X.Max = cx-span/2, cx+span/2
	p.Y.Min, p.Y.Max = cy-span/2, cy+span/2

	size := 8 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(size, size, filename)
	default:
		return p.Save(size, size, filename+".png")
	}
}

func addLine(p *plot.Plot, ln Line, c color.Color, w vg.Length) error {
	l, err := plotter.NewLine(plotter.XYs{
		{X: ln.From.X, Y: ln.From.Y},
		{X: ln.To.X, Y: ln.To.Y},
	})
	if err != nil {
		return err
	}
	l.LineStyle.Width = w
	l.LineStyle.Color = c
	p.Add(l)
	return nil
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
