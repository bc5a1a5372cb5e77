package mapview

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cristianoliveira/maprepl/internal/geo"
	"github.com/cristianoliveira/maprepl/internal/geocode"
)

type mockOverlays struct{ mock.Mock }

func (m *mockOverlays) Redlining(ctx context.Context) (*geo.FeatureCollection, error) {
	args := m.Called(ctx)
	fc, _ := args.Get(0).(*geo.FeatureCollection)
	return fc, args.Error(1)
}

func (m *mockOverlays) Filtered(ctx context.Context, keyword string) (*geo.FeatureCollection, error) {
	args := m.Called(ctx, keyword)
	fc, _ := args.Get(0).(*geo.FeatureCollection)
	return fc, args.Error(1)
}

type mockBroadband struct{ mock.Mock }

func (m *mockBroadband) Broadband(ctx context.Context, state, county string) (string, error) {
	args := m.Called(ctx, state, county)
	return args.String(0), args.Error(1)
}

type mockGeocoder struct{ mock.Mock }

func (m *mockGeocoder) Locate(ctx context.Context, state, county string) (geo.Point, error) {
	args := m.Called(ctx, state, county)
	p, _ := args.Get(0).(geo.Point)
	return p, args.Error(1)
}

type mockCensus struct{ mock.Mock }

func (m *mockCensus) County(ctx context.Context, p geo.Point) (geocode.County, error) {
	args := m.Called(ctx, p)
	c, _ := args.Get(0).(geocode.County)
	return c, args.Error(1)
}

type fixture struct {
	overlays  *mockOverlays
	broadband *mockBroadband
	geocoder  *mockGeocoder
	census    *mockCensus
	c         *Controller
}

func newFixture() *fixture {
	f := &fixture{
		overlays:  &mockOverlays{},
		broadband: &mockBroadband{},
		geocoder:  &mockGeocoder{},
		census:    &mockCensus{},
	}
	f.c = NewController(Deps{
		Overlays:  f.overlays,
		Broadband: f.broadband,
		Geocoder:  f.geocoder,
		Census:    f.census,
	})
	return f
}

func square(minLon, minLat, maxLon, maxLat float64) *geo.Geometry {
	ring := geo.Ring{{Lon: minLon, Lat: minLat}, {Lon: maxLon, Lat: minLat}, {Lon: maxLon, Lat: maxLat}, {Lon: minLon, Lat: maxLat}, {Lon: minLon, Lat: minLat}}
	return &geo.Geometry{Type: "Polygon", Polygons: []geo.Polygon{{ring}}}
}

func baseCollection() *geo.FeatureCollection {
	return &geo.FeatureCollection{Type: "FeatureCollection", Features: []geo.Feature{
		{Type: "Feature", Geometry: square(0, 0, 10, 10), Properties: map[string]any{
			"state": "RI", "city": "Providence", "name": "Fox Point", "holc_grade": "B",
		}},
		{Type: "Feature", Geometry: square(20, 20, 30, 30), Properties: map[string]any{"state": "", "city": nil}},
		{Type: "Feature", Geometry: square(40, 40, 50, 50)},
	}}
}
