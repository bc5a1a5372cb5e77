package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]],[[4,4],[6,4],[6,6],[4,6],[4,4]]]},
      "properties": {"state": "RI", "city": "Providence", "name": "Elmwood", "holc_grade": "B"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "MultiPolygon", "coordinates": [[[[20,20],[22,20],[22,22],[20,22],[20,20]]],[[[30,30],[32,30],[32,32],[30,32],[30,30]]]]},
      "properties": {"state": "CA", "city": null, "holc_id": 7}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [5, 5]},
      "properties": {}
    }
  ]
}`

func decodeSample(t *testing.T) *FeatureCollection {
	t.Helper()
	fc, err := Decode([]byte(sampleCollection))
	require.NoError(t, err)
	return fc
}

func TestDecode(t *testing.T) {
	fc := decodeSample(t)

	require.Equal(t, 3, fc.Len())
	assert.Equal(t, TypePolygon, fc.Features[0].Geometry.Type)
	assert.Len(t, fc.Features[0].Geometry.Polygons, 1)
	assert.Len(t, fc.Features[0].Geometry.Polygons[0], 2, "outer ring plus one hole")
	assert.Len(t, fc.Features[1].Geometry.Polygons, 2)
	assert.Empty(t, fc.Features[2].Geometry.Polygons, "points never hit")
}

func TestDecodeRejectsOtherTypes(t *testing.T) {
	_, err := Decode([]byte(`{"type":"Feature"}`))
	assert.ErrorIs(t, err, ErrNotFeatureCollection)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeEmptyCollection(t *testing.T) {
	fc, err := Decode([]byte(`{"type":"FeatureCollection"}`))
	require.NoError(t, err)
	assert.Equal(t, 0, fc.Len())
	assert.NotNil(t, fc.Features)
}

func TestProperty(t *testing.T) {
	fc := decodeSample(t)

	assert.Equal(t, "Providence", fc.Features[0].Property("city"))
	assert.Equal(t, "", fc.Features[1].Property("city"), "null renders empty")
	assert.Equal(t, "", fc.Features[1].Property("name"), "missing renders empty")
	assert.Equal(t, "7", fc.Features[1].Property("holc_id"))
}

func TestHitTest(t *testing.T) {
	fc := decodeSample(t)

	tests := []struct {
		name  string
		point Point
		want  string
		hit   bool
	}{
		{"inside outer ring", Point{1, 1}, "RI", true},
		{"inside hole", Point{5, 5}, "", false},
		{"second polygon of multipolygon", Point{31, 31}, "CA", true},
		{"outside everything", Point{-5, -5}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := fc.HitTest(tt.point)
			assert.Equal(t, tt.hit, ok)
			assert.Equal(t, tt.want, f.Property("state"))
		})
	}
}

func TestHitTestPrefersTopmost(t *testing.T) {
	fc, err := Decode([]byte(`{"type":"FeatureCollection","features":[
	  {"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]]]},"properties":{"name":"bottom"}},
	  {"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[1,1],[3,1],[3,3],[1,3],[1,1]]]},"properties":{"name":"top"}}
	]}`))
	require.NoError(t, err)

	f, ok := fc.HitTest(Point{2, 2})
	require.True(t, ok)
	assert.Equal(t, "top", f.Property("name"))

	var nilFC *FeatureCollection
	_, ok = nilFC.HitTest(Point{2, 2})
	assert.False(t, ok)
}

func TestBounds(t *testing.T) {
	fc := decodeSample(t)

	box := fc.Bounds()
	assert.Equal(t, BBox{MinLon: 0, MinLat: 0, MaxLon: 32, MaxLat: 32}, box)
	assert.Equal(t, Point{16, 16}, box.Center())
	assert.True(t, box.Intersects(BBox{MinLon: 31, MinLat: 31, MaxLon: 40, MaxLat: 40}))
	assert.False(t, box.Intersects(BBox{MinLon: 33, MinLat: 0, MaxLon: 40, MaxLat: 1}))
	assert.True(t, EmptyBBox().IsEmpty())
	assert.False(t, EmptyBBox().Intersects(box))
}

func TestGeometryRoundTrip(t *testing.T) {
	fc := decodeSample(t)

	data, err := json.Marshal(fc.Features[0].Geometry)
	require.NoError(t, err)
	var back Geometry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *fc.Features[0].Geometry, back)
}

func TestPointRejectsShortPosition(t *testing.T) {
	var p Point
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &p))
	require.NoError(t, json.Unmarshal([]byte(`[1,2,3]`), &p))
	assert.Equal(t, Point{1, 2}, p)
}
