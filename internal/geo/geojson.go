// Package geo holds the GeoJSON subset used by map overlays: feature
// collections of Polygon and MultiPolygon features.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypePolygon           = "Polygon"
	TypeMultiPolygon      = "MultiPolygon"
)

// ErrNotFeatureCollection is returned when a document's type is not FeatureCollection.
var ErrNotFeatureCollection = errors.New("geo: document is not a FeatureCollection")

// Point is a longitude/latitude pair in degrees.
type Point struct {
	Lon float64
	Lat float64
}

// MarshalJSON encodes the point as a GeoJSON position [lon, lat].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lon, p.Lat})
}

// UnmarshalJSON accepts a GeoJSON position; extra elements (altitude) are ignored.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pos []float64
	if err := json.Unmarshal(data, &pos); err != nil {
		return fmt.Errorf("geo: position: %w", err)
	}
	if len(pos) < 2 {
		return fmt.Errorf("geo: position needs 2 coordinates, got %d", len(pos))
	}
	p.Lon, p.Lat = pos[0], pos[1]
	return nil
}

// Ring is a closed linear ring.
type Ring []Point

// Polygon is an outer ring followed by optional holes.
type Polygon []Ring

// Geometry is a Polygon or MultiPolygon normalized to a list of polygons.
// Other geometry types decode with no polygons and never hit.
type Geometry struct {
	Type     string
	Polygons []Polygon
}

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw rawGeometry
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("geo: geometry: %w", err)
	}
	g.Type = raw.Type
	g.Polygons = nil
	switch raw.Type {
	case TypePolygon:
		var poly Polygon
		if err := json.Unmarshal(raw.Coordinates, &poly); err != nil {
			return fmt.Errorf("geo: polygon coordinates: %w", err)
		}
		g.Polygons = []Polygon{poly}
	case TypeMultiPolygon:
		var polys []Polygon
		if err := json.Unmarshal(raw.Coordinates, &polys); err != nil {
			return fmt.Errorf("geo: multipolygon coordinates: %w", err)
		}
		g.Polygons = polys
	}
	return nil
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	var coords any
	switch g.Type {
	case TypePolygon:
		if len(g.Polygons) > 0 {
			coords = g.Polygons[0]
		} else {
			coords = Polygon{}
		}
	default:
		coords = g.Polygons
	}
	return json.Marshal(struct {
		Type        string `json:"type"`
		Coordinates any    `json:"coordinates"`
	}{g.Type, coords})
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   *Geometry      `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Property returns a property rendered as text, or "" when absent or null.
func (f Feature) Property(name string) string {
	v, ok := f.Properties[name]
	if !ok || v == nil {
		return ""
	}
	switch typed := v.(type) {
	case string:
		return typed
	case float64:
		return fmt.Sprintf("%g", typed)
	default:
		return fmt.Sprint(typed)
	}
}

// FeatureCollection is a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Len is the number of features; a nil collection has none.
func (fc *FeatureCollection) Len() int {
	if fc == nil {
		return 0
	}
	return len(fc.Features)
}

// Decode parses data as a FeatureCollection. Documents whose type is not
// FeatureCollection yield ErrNotFeatureCollection.
func Decode(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("geo: decode: %w", err)
	}
	if fc.Type != TypeFeatureCollection {
		return nil, ErrNotFeatureCollection
	}
	if fc.Features == nil {
		fc.Features = []Feature{}
	}
	return &fc, nil
}
