package geo

import "math"

// Contains reports whether p lies inside the ring (even-odd rule).
func (r Ring) Contains(p Point) bool {
	inside := false
	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := r[i], r[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			x := (b.Lon-a.Lon)*(p.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lon
			if p.Lon < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Contains reports whether p is inside the outer ring and outside every hole.
func (poly Polygon) Contains(p Point) bool {
	if len(poly) == 0 || !poly[0].Contains(p) {
		return false
	}
	for _, hole := range poly[1:] {
		if hole.Contains(p) {
			return false
		}
	}
	return true
}

// Contains reports whether any polygon of g contains p.
func (g *Geometry) Contains(p Point) bool {
	if g == nil {
		return false
	}
	for _, poly := range g.Polygons {
		if poly.Contains(p) {
			return true
		}
	}
	return false
}

// HitTest returns the topmost feature containing p. Features later in the
// collection are drawn above earlier ones.
func (fc *FeatureCollection) HitTest(p Point) (Feature, bool) {
	if fc == nil {
		return Feature{}, false
	}
	for i := len(fc.Features) - 1; i >= 0; i-- {
		if fc.Features[i].Geometry.Contains(p) {
			return fc.Features[i], true
		}
	}
	return Feature{}, false
}

// BBox is an axis-aligned bounding box in degrees.
type BBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// EmptyBBox is the identity for Extend.
func EmptyBBox() BBox {
	return BBox{MinLon: math.Inf(1), MinLat: math.Inf(1), MaxLon: math.Inf(-1), MaxLat: math.Inf(-1)}
}

// IsEmpty reports whether no point has been added.
func (b BBox) IsEmpty() bool {
	return b.MinLon > b.MaxLon || b.MinLat > b.MaxLat
}

// Extend grows b to include p.
func (b BBox) Extend(p Point) BBox {
	b.MinLon = math.Min(b.MinLon, p.Lon)
	b.MinLat = math.Min(b.MinLat, p.Lat)
	b.MaxLon = math.Max(b.MaxLon, p.Lon)
	b.MaxLat = math.Max(b.MaxLat, p.Lat)
	return b
}

// Intersects reports whether the boxes overlap.
func (b BBox) Intersects(o BBox) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return b.MinLon <= o.MaxLon && o.MinLon <= b.MaxLon && b.MinLat <= o.MaxLat && o.MinLat <= b.MaxLat
}

// Center is the midpoint of the box.
func (b BBox) Center() Point {
	return Point{Lon: (b.MinLon + b.MaxLon) / 2, Lat: (b.MinLat + b.MaxLat) / 2}
}

// Bounds is the box around every outer ring of g.
func (g *Geometry) Bounds() BBox {
	box := EmptyBBox()
	if g == nil {
		return box
	}
	for _, poly := range g.Polygons {
		if len(poly) == 0 {
			continue
		}
		for _, pt := range poly[0] {
			box = box.Extend(pt)
		}
	}
	return box
}

// Bounds is the box around every feature in the collection.
func (fc *FeatureCollection) Bounds() BBox {
	box := EmptyBBox()
	if fc == nil {
		return box
	}
	for _, f := range fc.Features {
		fb := f.Geometry.Bounds()
		if fb.IsEmpty() {
			continue
		}
		box = box.Extend(Point{fb.MinLon, fb.MinLat}).Extend(Point{fb.MaxLon, fb.MaxLat})
	}
	return box
}
