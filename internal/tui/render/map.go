package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/cristianoliveira/maprepl/internal/geo"
	"github.com/cristianoliveira/maprepl/internal/mapview"
	"github.com/cristianoliveira/maprepl/internal/overlay"
)

const (
	popupMarker      = '◉'
	popupMarkerColor = "#FFA500"
)

// MapFrame is the input for MapCanvas.
type MapFrame struct {
	State  mapview.State
	Width  int
	Height int
}

// MapCanvas draws the base layer colored by grade, the filtered layer above
// it, the popup anchor and the popup box in the top-right corner.
func MapCanvas(f MapFrame) string {
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}
	proj := NewProjection(f.State.Viewport, f.Width, f.Height)
	canvas := NewCanvas(f.Width, f.Height)
	visible := proj.Visible()

	if f.State.Base != nil {
		for _, feat := range f.State.Base.Features {
			drawFeature(canvas, proj, visible, feat, overlay.GradeColor(feat), Sparse)
		}
	}
	if f.State.Filtered != nil {
		for _, feat := range f.State.Filtered.Features {
			drawFeature(canvas, proj, visible, feat, overlay.ColorFiltered, Solid)
		}
	}
	if f.State.Popup != nil {
		if col, row, ok := proj.ToCell(f.State.Popup.At); ok {
			canvas.Mark(col, row, popupMarker, popupMarkerColor)
		}
	}

	lines := canvas.Render()
	if f.State.Popup != nil {
		lines = overlayTopRight(lines, PopupBox(f.State.Popup.Lines), f.Width)
	}
	return strings.Join(lines, "\n")
}

func drawFeature(c *Canvas, proj Projection, visible geo.BBox, feat geo.Feature, color string, fill Pattern) {
	if feat.Geometry == nil || !feat.Geometry.Bounds().Intersects(visible) {
		return
	}
	for _, poly := range feat.Geometry.Polygons {
		rings := make([][][2]float64, 0, len(poly))
		for _, ring := range poly {
			dots := make([][2]float64, len(ring))
			for i, pt := range ring {
				x, y := proj.ToDot(pt)
				dots[i] = [2]float64{x, y}
			}
			rings = append(rings, dots)
		}
		c.FillPolygon(rings, color, fill)
		for _, r := range rings {
			c.StrokeRing(r, color)
		}
	}
}

// PopupBox renders popup lines in a bordered box.
func PopupBox(lines []string) string {
	return popupStyle.Render(strings.Join(lines, "\n"))
}

// overlayTopRight writes box over the right edge of the first rows of lines.
// lines are width cells wide.
func overlayTopRight(lines []string, box string, width int) []string {
	boxLines := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	if boxWidth >= width {
		boxWidth = width
	}
	left := width - boxWidth
	out := make([]string, len(lines))
	copy(out, lines)
	for i, bl := range boxLines {
		if i >= len(out) {
			break
		}
		out[i] = ansi.Truncate(out[i], left, "") + ansi.Truncate(bl, boxWidth, "")
	}
	return out
}
