package render

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/vk/skychart/internal/catalog"
	"github.com/vk/skychart/internal/ctxlog"
	"github.com/vk/skychart/internal/theme"
)

const (
	chartTitle = "Night Sky"
	raLabel    = "Right Ascension (deg)"
	decLabel   = "Declination (deg)"

	canvasWidth  = 10 * vg.Inch
	canvasHeight = 6 * vg.Inch
	outputDPI    = 150

	markerOpacity = 0.8
	gridOpacity   = 0.2
	labelFontSize = vg.Length(8)
)

// MarkerArea returns the marker area, in printer's points squared, for a
// star of the given apparent magnitude: max(1, 10 - 2*mag)^2. Brighter
// (lower-magnitude) stars get larger markers; the clamp keeps the area at
// least 1 for arbitrarily faint stars. This is a presentation formula, not
// a photometric one.
func MarkerArea(mag float64) float64 {
	side := math.Max(1, 10-2*mag)
	return side * side
}

// markerRadius converts a marker area into the glyph radius gonum/plot
// expects.
func markerRadius(mag float64) vg.Length {
	return vg.Length(math.Sqrt(MarkerArea(mag)) / 2)
}

// Render draws the given stars as a sky chart and writes it to outputPath.
// An unregistered themeName silently falls back to the default theme, and
// an empty star slice still produces a valid (empty) chart; the only
// failures are drawing and file-writing errors.
func Render(ctx context.Context, stars []catalog.Star, themeName string, showLabels bool, outputPath string) error {
	logger := ctxlog.FromContext(ctx)

	t := theme.Resolve(themeName)
	if t.Name != themeName {
		logger.Debug("Theme not registered, using default.", "requested", themeName, "using", t.Name)
	}
	logger.Debug("Rendering sky chart.", "stars", len(stars), "theme", t.Name, "labels", showLabels, "output", outputPath)

	p := plot.New()
	p.Title.Text = chartTitle
	p.Title.TextStyle.Color = t.Foreground
	p.BackgroundColor = t.Background

	p.X.Label.Text = raLabel
	p.Y.Label.Text = decLabel
	styleAxis(&p.X, t.Foreground)
	styleAxis(&p.Y, t.Foreground)

	// Sky charts are drawn as seen from inside the celestial sphere, so
	// right ascension increases to the left.
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	grid := plotter.NewGrid()
	grid.Vertical.Color = withOpacity(t.Foreground, gridOpacity)
	grid.Horizontal.Color = withOpacity(t.Foreground, gridOpacity)
	p.Add(grid)

	points := make(plotter.XYs, len(stars))
	for i, s := range stars {
		points[i].X = s.RADeg
		points[i].Y = s.DecDeg
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	markerColor := withOpacity(t.Foreground, markerOpacity)
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  markerColor,
			Radius: markerRadius(stars[i].Mag),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(scatter)

	if showLabels {
		labels, err := newStarLabels(stars, t.Foreground)
		if err != nil {
			return fmt.Errorf("build labels: %w", err)
		}
		p.Add(labels)
	}

	if len(stars) == 0 {
		// With no data the axis limits stay infinite; pin them to the
		// conventional celestial ranges so the empty chart still draws.
		p.X.Min, p.X.Max = 0, 360
		p.Y.Min, p.Y.Max = -90, 90
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(canvasWidth, canvasHeight),
		vgimg.UseDPI(outputDPI),
		vgimg.UseBackgroundColor(t.Background),
	)
	p.Draw(draw.New(canvas))

	if err := writeCanvas(canvas, outputPath); err != nil {
		return err
	}
	logger.Info("Sky chart written.", "output", outputPath, "stars", len(stars), "theme", t.Name)
	return nil
}

// newStarLabels builds a name annotation anchored at each star's position.
func newStarLabels(stars []catalog.Star, fg color.NRGBA) (*plotter.Labels, error) {
	xyl := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(stars)),
		Labels: make([]string, len(stars)),
	}
	for i, s := range stars {
		xyl.XYs[i].X = s.RADeg
		xyl.XYs[i].Y = s.DecDeg
		xyl.Labels[i] = s.Name
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = fg
		labels.TextStyle[i].Font.Size = labelFontSize
	}
	return labels, nil
}

// writeCanvas encodes the drawn canvas into outputPath. The encoding is
// chosen by the path's extension; anything unrecognized is written as PNG.
func writeCanvas(canvas *vgimg.Canvas, outputPath string) (err error) {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create chart output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close chart output %s: %w", outputPath, cerr)
		}
	}()

	var wt io.WriterTo
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".jpg", ".jpeg":
		wt = vgimg.JpegCanvas{Canvas: canvas}
	case ".tif", ".tiff":
		wt = vgimg.TiffCanvas{Canvas: canvas}
	default:
		wt = vgimg.PngCanvas{Canvas: canvas}
	}
	if _, err := wt.WriteTo(f); err != nil {
		return fmt.Errorf("encode chart %s: %w", outputPath, err)
	}
	return nil
}

// styleAxis recolors an axis' line, ticks and text with the theme
// foreground.
func styleAxis(a *plot.Axis, fg color.NRGBA) {
	a.LineStyle.Color = fg
	a.Label.TextStyle.Color = fg
	a.Tick.LineStyle.Color = fg
	a.Tick.Label.Color = fg
}

// withOpacity returns c with its alpha channel scaled to the given opacity.
func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(math.Round(opacity * float64(c.A)))
	return c
}
