// Package mapview holds the map view's state machine and the asynchronous
// operations that drive it.
//
// State is a plain value. Every operation returns an Outcome whose
// Transition is applied to the latest State by the caller, so overlapping
// operations never write through a stale snapshot.
package mapview

import (
	"math"

	"github.com/cristianoliveira/maprepl/internal/geo"
)

// Viewport is the visible map area.
type Viewport struct {
	Lon  float64
	Lat  float64
	Zoom float64
}

// Zoom levels.
const (
	MinZoom   = 0
	MaxZoom   = 20
	FocusZoom = 10
	maxLat    = 85
)

// DefaultViewport is the initial view.
var DefaultViewport = Viewport{Lon: 19.944544, Lat: 50.049683, Zoom: 1}

// Popup is an anchored text box.
type Popup struct {
	At    geo.Point
	Lines []string
}

// State is the complete map view state.
type State struct {
	Viewport Viewport
	// Base is the redlining layer; nil until loaded.
	Base *geo.FeatureCollection
	// Filtered is the keyword layer; nil when absent.
	Filtered *geo.FeatureCollection
	// Popup is nil when hidden.
	Popup *Popup
}

// NewState returns the state of a freshly mounted map.
func NewState() State {
	return State{Viewport: DefaultViewport}
}

// BaseLoaded reports whether the base overlay has been loaded.
func (s State) BaseLoaded() bool { return s.Base != nil }

// PopupShown reports whether a popup is visible.
func (s State) PopupShown() bool { return s.Popup != nil }

// WithBase sets the base overlay.
func (s State) WithBase(fc *geo.FeatureCollection) State {
	s.Base = fc
	return s
}

// WithFiltered replaces the filtered overlay wholesale.
func (s State) WithFiltered(fc *geo.FeatureCollection) State {
	s.Filtered = fc
	return s
}

// ClearFiltered removes the filtered overlay.
func (s State) ClearFiltered() State {
	s.Filtered = nil
	return s
}

// ShowPopup replaces any visible popup.
func (s State) ShowPopup(p Popup) State {
	lines := make([]string, len(p.Lines))
	copy(lines, p.Lines)
	p.Lines = lines
	s.Popup = &p
	return s
}

// ClosePopup hides the popup.
func (s State) ClosePopup() State {
	s.Popup = nil
	return s
}

// Pan moves the center by the given degrees. Longitude wraps and latitude
// is clamped to the projection's range.
func (s State) Pan(dLon, dLat float64) State {
	s.Viewport.Lon = wrapLon(s.Viewport.Lon + dLon)
	s.Viewport.Lat = clamp(s.Viewport.Lat+dLat, -maxLat, maxLat)
	return s
}

// ZoomBy changes the zoom level, clamped to [MinZoom, MaxZoom].
func (s State) ZoomBy(delta float64) State {
	s.Viewport.Zoom = clamp(s.Viewport.Zoom+delta, MinZoom, MaxZoom)
	return s
}

// FlyTo centers the view on p at zoom.
func (s State) FlyTo(p geo.Point, zoom float64) State {
	s.Viewport = Viewport{
		Lon:  wrapLon(p.Lon),
		Lat:  clamp(p.Lat, -maxLat, maxLat),
		Zoom: clamp(zoom, MinZoom, MaxZoom),
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func wrapLon(lon float64) float64 {
	if lon >= -180 && lon < 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
