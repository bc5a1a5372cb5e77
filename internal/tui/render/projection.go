package render

import (
	"math"

	"github.com/cristianoliveira/maprepl/internal/geo"
	"github.com/cristianoliveira/maprepl/internal/mapview"
)

// DotsPerCol and DotsPerRow are the braille dots in one terminal cell.
const (
	DotsPerCol = 2
	DotsPerRow = 4
	// dotsPerTile is the dot width of the whole world at zoom 0.
	dotsPerTile = 64
)

// Projection maps between geographic coordinates and canvas dots. It is
// equirectangular: one dot spans the same number of degrees on both axes.
type Projection struct {
	Center geo.Point
	Zoom   float64
	Cols   int
	Rows   int
}

// NewProjection projects v onto a canvas of cols x rows cells.
func NewProjection(v mapview.Viewport, cols, rows int) Projection {
	return Projection{Center: geo.Point{Lon: v.Lon, Lat: v.Lat}, Zoom: v.Zoom, Cols: cols, Rows: rows}
}

// DegreesPerDot is the angular size of one dot.
func (p Projection) DegreesPerDot() float64 {
	return 360 / (math.Exp2(p.Zoom) * dotsPerTile)
}

// ToDot returns the dot coordinate of pt. Results may fall off the canvas.
func (p Projection) ToDot(pt geo.Point) (x, y float64) {
	d := p.DegreesPerDot()
	x = float64(p.Cols*DotsPerCol)/2 + (pt.Lon-p.Center.Lon)/d
	y = float64(p.Rows*DotsPerRow)/2 - (pt.Lat-p.Center.Lat)/d
	return x, y
}

// ToCell returns the cell containing pt and whether it is on the canvas.
func (p Projection) ToCell(pt geo.Point) (col, row int, ok bool) {
	x, y := p.ToDot(pt)
	col, row = int(math.Floor(x/DotsPerCol)), int(math.Floor(y/DotsPerRow))
	return col, row, col >= 0 && col < p.Cols && row >= 0 && row < p.Rows
}

// CellCenter is the coordinate under the middle of a cell.
func (p Projection) CellCenter(col, row int) geo.Point {
	d := p.DegreesPerDot()
	x := float64(col*DotsPerCol) + DotsPerCol/2.0
	y := float64(row*DotsPerRow) + DotsPerRow/2.0
	return geo.Point{
		Lon: p.Center.Lon + (x-float64(p.Cols*DotsPerCol)/2)*d,
		Lat: p.Center.Lat - (y-float64(p.Rows*DotsPerRow)/2)*d,
	}
}

// Visible is the area covered by the canvas.
func (p Projection) Visible() geo.BBox {
	d := p.DegreesPerDot()
	halfW := float64(p.Cols*DotsPerCol) / 2 * d
	halfH := float64(p.Rows*DotsPerRow) / 2 * d
	return geo.BBox{
		MinLon: p.Center.Lon - halfW,
		MinLat: p.Center.Lat - halfH,
		MaxLon: p.Center.Lon + halfW,
		MaxLat: p.Center.Lat + halfH,
	}
}

// PanStep is the pan distance in degrees for one key press: a tenth of the
// canvas width.
func (p Projection) PanStep() float64 {
	return float64(p.Cols*DotsPerCol) / 10 * p.DegreesPerDot()
}
