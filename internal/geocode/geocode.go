// Package geocode wraps the third-party lookups used by the map view:
// forward geocoding of "county,state" and reverse county lookup by coordinate.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/maprepl/internal/geo"
	"github.com/cristianoliveira/maprepl/internal/logging"
	"github.com/cristianoliveira/maprepl/internal/metrics"
	"github.com/tidwall/gjson"
)

const (
	endpointForward = "geocode"
	endpointCensus  = "census_area"
	censusYear      = "2020"
)

var (
	// ErrNoResults is returned when a lookup answered but matched nothing.
	ErrNoResults = errors.New("geocode: no results")
	// ErrMissingToken is returned by Forward when no access token is configured.
	ErrMissingToken = errors.New("geocode: access token not configured")
)

// County is a reverse lookup result.
type County struct {
	State  string
	County string
}

type fetcher struct {
	http    *http.Client
	metrics *metrics.Metrics
	log     logging.Logger
}

// Option configures a lookup client.
type Option func(*fetcher)

func WithHTTPClient(c *http.Client) Option { return func(f *fetcher) { f.http = c } }
func WithMetrics(m *metrics.Metrics) Option { return func(f *fetcher) { f.metrics = m } }
func WithLogger(l logging.Logger) Option    { return func(f *fetcher) { f.log = l } }

func newFetcher(component string, opts []Option) fetcher {
	f := fetcher{http: http.DefaultClient, log: logging.Nop()}
	for _, opt := range opts {
		opt(&f)
	}
	f.log = f.log.With("component", component)
	return f
}

func (f fetcher) getJSON(ctx context.Context, endpoint, rawURL string) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("geocode: build request: %w", err)
	}
	start := time.Now()
	resp, err := f.http.Do(req)
	if err != nil {
		f.metrics.ObserveUpstream(endpoint, 0, time.Since(start))
		f.log.Warn("request failed", "url", rawURL, "error", err.Error())
		return gjson.Result{}, fmt.Errorf("geocode: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	f.metrics.ObserveUpstream(endpoint, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("geocode: read %s: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, fmt.Errorf("geocode: %s returned %d", endpoint, resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("geocode: %s returned invalid JSON", endpoint)
	}
	f.log.Debug("response", "url", rawURL, "status", resp.StatusCode)
	return gjson.ParseBytes(body), nil
}

// Geocoder resolves place names to coordinates with the Mapbox places API.
type Geocoder struct {
	fetcher
	baseURL string
	token   string
}

// NewGeocoder creates a forward geocoder rooted at baseURL
// (e.g. https://api.mapbox.com/geocoding/v5/mapbox.places).
func NewGeocoder(baseURL, accessToken string, opts ...Option) *Geocoder {
	return &Geocoder{
		fetcher: newFetcher("geocoder", opts),
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   accessToken,
	}
}

// Locate geocodes "<county>,<state>" and returns the first feature's center.
func (g *Geocoder) Locate(ctx context.Context, state, county string) (geo.Point, error) {
	if g.token == "" {
		return geo.Point{}, ErrMissingToken
	}
	place := url.PathEscape(county + "," + state)
	rawURL := fmt.Sprintf("%s/%s.json?access_token=%s", g.baseURL, place, url.QueryEscape(g.token))
	doc, err := g.getJSON(ctx, endpointForward, rawURL)
	if err != nil {
		return geo.Point{}, err
	}
	coords := doc.Get("features.0.geometry.coordinates")
	if !coords.IsArray() || len(coords.Array()) < 2 {
		return geo.Point{}, fmt.Errorf("%w for %s, %s", ErrNoResults, county, state)
	}
	arr := coords.Array()
	return geo.Point{Lon: arr[0].Float(), Lat: arr[1].Float()}, nil
}

// CensusLocator resolves coordinates to a county with the FCC census area API.
type CensusLocator struct {
	fetcher
	baseURL string
}

// NewCensusLocator creates a reverse locator rooted at baseURL
// (e.g. https://geo.fcc.gov/api/census/area).
func NewCensusLocator(baseURL string, opts ...Option) *CensusLocator {
	return &CensusLocator{
		fetcher: newFetcher("census", opts),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// County returns the county containing p. A trailing " County" is stripped.
func (c *CensusLocator) County(ctx context.Context, p geo.Point) (County, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Lon, 'f', -1, 64))
	q.Set("censusYear", censusYear)
	q.Set("format", "json")
	doc, err := c.getJSON(ctx, endpointCensus, c.baseURL+"?"+q.Encode())
	if err != nil {
		return County{}, err
	}
	first := doc.Get("results.0")
	if !first.Exists() {
		return County{}, fmt.Errorf("%w at %v,%v", ErrNoResults, p.Lat, p.Lon)
	}
	county := strings.TrimSpace(strings.Replace(first.Get("county_name").String(), " County", "", 1))
	return County{
		State:  first.Get("state_name").String(),
		County: county,
	}, nil
}
