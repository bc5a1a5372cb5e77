// Package overlay fetches the GeoJSON layers drawn on the map: the base
// redlining layer, the keyword-filtered layer and a bundled mock layer.
package overlay

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cristianoliveira/maprepl/internal/geo"
	"github.com/cristianoliveira/maprepl/internal/logging"
)

// MockKeyword makes a filtered search resolve the bundled collection.
const MockKeyword = "mock"

//go:embed mock.geojson
var mockGeoJSON []byte

// WorldBBox covers every longitude and latitude.
var WorldBBox = geo.BBox{MinLon: -180, MinLat: -90, MaxLon: 180, MaxLat: 90}

// Source is the backend surface the fetcher needs.
type Source interface {
	Redlining(ctx context.Context, box geo.BBox) (*geo.FeatureCollection, error)
	Filter(ctx context.Context, keyword string) (*geo.FeatureCollection, error)
}

// Fetcher resolves overlay collections.
type Fetcher struct {
	source Source
	log    logging.Logger
}

// NewFetcher creates a fetcher over source. A nil logger disables logging.
func NewFetcher(source Source, log logging.Logger) *Fetcher {
	if log == nil {
		log = logging.Nop()
	}
	return &Fetcher{source: source, log: log.With("component", "overlay")}
}

// Redlining fetches the base layer for the whole world.
func (f *Fetcher) Redlining(ctx context.Context) (*geo.FeatureCollection, error) {
	fc, err := f.source.Redlining(ctx, WorldBBox)
	if err != nil {
		f.log.Warn("redlining fetch failed", "error", err.Error())
		return nil, fmt.Errorf("overlay: redlining: %w", err)
	}
	f.log.Info("redlining loaded", "features", fc.Len())
	return fc, nil
}

// Filtered fetches features matching keyword. Underscores in keyword stand
// for spaces.
func (f *Fetcher) Filtered(ctx context.Context, keyword string) (*geo.FeatureCollection, error) {
	words := strings.ReplaceAll(keyword, "_", " ")
	fc, err := f.source.Filter(ctx, words)
	if err != nil {
		f.log.Warn("filter fetch failed", "keyword", words, "error", err.Error())
		return nil, fmt.Errorf("overlay: filter %q: %w", words, err)
	}
	return fc, nil
}

// Mocked returns the bundled collection.
func Mocked() (*geo.FeatureCollection, error) {
	fc, err := geo.Decode(mockGeoJSON)
	if err != nil {
		return nil, fmt.Errorf("overlay: bundled mock: %w", err)
	}
	return fc, nil
}
