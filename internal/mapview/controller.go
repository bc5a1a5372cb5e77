package mapview

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianoliveira/maprepl/internal/backend"
	apperrors "github.com/cristianoliveira/maprepl/internal/errors"
	"github.com/cristianoliveira/maprepl/internal/geo"
	"github.com/cristianoliveira/maprepl/internal/geocode"
	"github.com/cristianoliveira/maprepl/internal/logging"
	"github.com/cristianoliveira/maprepl/internal/metrics"
	"github.com/cristianoliveira/maprepl/internal/overlay"
)

const notAvailable = "N/A"

// Alert texts shown by the map view.
const (
	msgNoMatches     = "No areas matching sought-after keyword found"
	msgFilterFailed  = "Failed to fetch filtered data from the backend"
	msgMockOverlayed = "Mocked data overlayed successfully"
)

// Overlays fetches overlay collections.
type Overlays interface {
	Redlining(ctx context.Context) (*geo.FeatureCollection, error)
	Filtered(ctx context.Context, keyword string) (*geo.FeatureCollection, error)
}

// BroadbandSource resolves a county's broadband access percentage.
type BroadbandSource interface {
	Broadband(ctx context.Context, state, county string) (string, error)
}

// Geocoder resolves a county to a coordinate.
type Geocoder interface {
	Locate(ctx context.Context, state, county string) (geo.Point, error)
}

// CountyLocator resolves a coordinate to its county.
type CountyLocator interface {
	County(ctx context.Context, p geo.Point) (geocode.County, error)
}

// Transition maps the current state to the next one.
type Transition func(State) State

// Outcome is the result of an operation: an optional state transition and
// an optional modal alert.
type Outcome struct {
	Transition Transition
	Alert      string
	AlertType  apperrors.MessageType
}

// Apply runs the transition against s, returning s unchanged when none.
func (o Outcome) Apply(s State) State {
	if o.Transition == nil {
		return s
	}
	return o.Transition(s)
}

// HasAlert reports whether the outcome carries an alert.
func (o Outcome) HasAlert() bool { return o.Alert != "" }

// Controller runs the map view's fetch sequences.
type Controller struct {
	overlays  Overlays
	broadband BroadbandSource
	geocoder  Geocoder
	census    CountyLocator
	log       logging.Logger
	metrics   *metrics.Metrics
}

// Deps are the controller's collaborators.
type Deps struct {
	Overlays  Overlays
	Broadband BroadbandSource
	Geocoder  Geocoder
	Census    CountyLocator
	Logger    logging.Logger
	Metrics   *metrics.Metrics
}

// NewController creates a controller.
func NewController(d Deps) *Controller {
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		overlays:  d.Overlays,
		broadband: d.Broadband,
		geocoder:  d.Geocoder,
		census:    d.Census,
		log:       log.With("component", "mapview"),
		metrics:   d.Metrics,
	}
}

func (c *Controller) alert(text string, typ apperrors.MessageType, t Transition) Outcome {
	c.metrics.IncAlert(typ.String())
	return Outcome{Transition: t, Alert: text, AlertType: typ}
}

// LoadBase fetches the base overlay once on mount. A failed fetch leaves
// the base unset without alerting.
func (c *Controller) LoadBase(ctx context.Context) Outcome {
	fc, err := c.overlays.Redlining(ctx)
	if err != nil {
		c.log.Warn("base overlay unavailable", "error", err.Error())
		return Outcome{}
	}
	return Outcome{Transition: func(s State) State { return s.WithBase(fc) }}
}

// Click queries the base overlay at p. It is a no-op until the base is
// loaded. A miss hides the popup; a hit resolves the broadband percentage
// for the clicked county and shows it.
func (c *Controller) Click(ctx context.Context, s State, p geo.Point) Outcome {
	if !s.BaseLoaded() {
		return Outcome{}
	}
	feature, hit := s.Base.HitTest(p)
	if !hit {
		return Outcome{Transition: State.ClosePopup}
	}
	if feature.Properties == nil {
		return Outcome{}
	}
	broadband := c.broadbandAt(ctx, p)
	popup := Popup{At: p, Lines: []string{
		"State: " + orNA(feature.Property("state")),
		"City: " + orNA(feature.Property("city")),
		"Broadband Access Percent: " + orNA(broadband),
		"Name: " + orNA(feature.Property("name")),
	}}
	return Outcome{Transition: func(s State) State { return s.ShowPopup(popup) }}
}

// broadbandAt resolves the county at p and its broadband percentage. A
// backend logical error yields its message; other failures yield "".
func (c *Controller) broadbandAt(ctx context.Context, p geo.Point) string {
	county, err := c.census.County(ctx, p)
	if err != nil {
		c.log.Warn("county lookup failed", "lon", p.Lon, "lat", p.Lat, "error", err.Error())
		return ""
	}
	pct, err := c.broadband.Broadband(ctx, county.State, county.County)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return apiErr.Message
		}
		c.log.Warn("broadband lookup failed", "state", county.State, "county", county.County, "error", err.Error())
		return ""
	}
	return pct
}

// FocusMap geocodes "county,state", flies there and shows the broadband
// popup, replacing any popup already shown.
func (c *Controller) FocusMap(ctx context.Context, state, county, broadband string) Outcome {
	at, err := c.geocoder.Locate(ctx, state, county)
	if err != nil {
		return c.alert(fmt.Sprintf("Error encountered: %v", err), apperrors.MessageTypeError, nil)
	}
	popup := Popup{At: at, Lines: []string{
		"State: " + orNA(state),
		"County: " + orNA(county),
		"Broadband Access Percent: " + orNA(broadband),
	}}
	return Outcome{Transition: func(s State) State {
		return s.FlyTo(at, FocusZoom).ShowPopup(popup)
	}}
}

// AddFilteredLayer replaces the filtered overlay with the features matching
// keyword. The keyword "mock" resolves the bundled collection.
func (c *Controller) AddFilteredLayer(ctx context.Context, keyword string) Outcome {
	if keyword == overlay.MockKeyword {
		return c.AddMockLayer()
	}
	fc, err := c.overlays.Filtered(ctx, keyword)
	if err != nil {
		return c.alert(msgFilterFailed, apperrors.MessageTypeError, State.ClearFiltered)
	}
	if fc.Len() == 0 {
		return c.alert(msgNoMatches, apperrors.MessageTypeWarning, State.ClearFiltered)
	}
	return Outcome{Transition: func(s State) State { return s.WithFiltered(fc) }}
}

// AddMockLayer overlays the bundled collection.
func (c *Controller) AddMockLayer() Outcome {
	fc, err := overlay.Mocked()
	if err != nil {
		return c.alert(msgFilterFailed, apperrors.MessageTypeError, State.ClearFiltered)
	}
	return c.alert(msgMockOverlayed, apperrors.MessageTypeSuccess, func(s State) State { return s.WithFiltered(fc) })
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
