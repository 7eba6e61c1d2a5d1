// README: Geoapify routing provider; geocoding plus per-mode transport options.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"yatra/internal/trip"
)

const (
	defaultBaseURL = "https://api.geoapify.com"

	geocodeTimeout = 20 * time.Second
	routeTimeout   = 30 * time.Second
)

// ProviderError indicates the routing provider could not supply usable data.
// It is always recoverable: the planner degrades to model estimates.
type ProviderError struct {
	Reason string
}

func (e *ProviderError) Error() string {
	return e.Reason
}

// Point is a geocoded place.
type Point struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Formatted   string  `json:"formatted"`
	CountryCode string  `json:"country_code"`
}

// travelMode maps a Geoapify routing mode onto the label and vehicle list we
// expose per transport option.
type travelMode struct {
	mode     string
	label    string
	vehicles []string
}

var travelModes = []travelMode{
	{mode: "drive", label: "Driving", vehicles: []string{"Car", "Taxi"}},
	{mode: "transit", label: "Transit", vehicles: []string{"Bus", "Train"}},
}

// Provider talks to the Geoapify geocoding and routing APIs.
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *Cache
}

// NewProvider creates a Provider. cache may be nil, in which case every
// lookup hits the API.
func NewProvider(apiKey string, cache *Cache) (*Provider, error) {
	if apiKey == "" {
		return nil, &ProviderError{Reason: "GEOAPIFY_API_KEY is not set"}
	}
	return &Provider{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		cache:      cache,
	}, nil
}

// Geocode resolves a place name to coordinates via /v1/geocode/search.
func (p *Provider) Geocode(ctx context.Context, place string) (Point, error) {
	if cached, ok := p.cache.GetGeocode(ctx, place); ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("text", place)
	q.Set("limit", "1")
	q.Set("format", "json")
	q.Set("apiKey", p.apiKey)

	var body struct {
		Results []struct {
			Lat         float64 `json:"lat"`
			Lon         float64 `json:"lon"`
			Formatted   string  `json:"formatted"`
			CountryCode string  `json:"country_code"`
		} `json:"results"`
	}
	if err := p.getJSON(ctx, "/v1/geocode/search", q, &body, "Geoapify geocoding failed"); err != nil {
		return Point{}, err
	}
	if len(body.Results) == 0 {
		return Point{}, &ProviderError{Reason: fmt.Sprintf("Location not found: %s", place)}
	}

	point := Point{
		Lat:         body.Results[0].Lat,
		Lon:         body.Results[0].Lon,
		Formatted:   body.Results[0].Formatted,
		CountryCode: body.Results[0].CountryCode,
	}
	if point.Formatted == "" {
		point.Formatted = place
	}

	p.cache.PutGeocode(ctx, place, point)
	return point, nil
}

// GetTransportOptions computes one transport option per mode for the leg.
// Modes that fail or return non-positive distance/time are skipped; it fails
// only when no mode yields usable data.
func (p *Provider) GetTransportOptions(ctx context.Context, source, destination string) ([]trip.TransportOption, error) {
	src, err := p.Geocode(ctx, source)
	if err != nil {
		return nil, err
	}
	dst, err := p.Geocode(ctx, destination)
	if err != nil {
		return nil, err
	}

	var options []trip.TransportOption
	for _, tm := range travelModes {
		distanceM, timeS, err := p.route(ctx, src, dst, tm.mode)
		if err != nil {
			continue
		}
		if distanceM <= 0 || timeS <= 0 {
			continue
		}

		distanceKm := math.Round(distanceM/1000.0*10) / 10
		cost := estimateCost(distanceKm, tm.mode)
		options = append(options, trip.TransportOption{
			Mode:                tm.label,
			EstimatedTravelTime: formatDuration(timeS),
			DistanceKm:          distanceKm,
			AvailableVehicles:   append([]string(nil), tm.vehicles...),
			EstimatedCost:       cost,
			RouteSummary: fmt.Sprintf(
				"Distance/time from Geoapify routing. Cost estimated at INR %.0f-%.0f based on distance.",
				cost.Min, cost.Max,
			),
		})
	}

	if len(options) == 0 {
		return nil, &ProviderError{Reason: "Insufficient route data from provider"}
	}
	return options, nil
}

// route requests /v1/routing for one mode and returns distance (meters) and
// time (seconds).
func (p *Provider) route(ctx context.Context, src, dst Point, mode string) (float64, float64, error) {
	srcKey := fmt.Sprintf("%v,%v", src.Lat, src.Lon)
	dstKey := fmt.Sprintf("%v,%v", dst.Lat, dst.Lon)

	if distanceM, timeS, ok := p.cache.GetRoute(ctx, srcKey, dstKey, mode); ok {
		return distanceM, timeS, nil
	}

	ctx, cancel := context.WithTimeout(ctx, routeTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("waypoints", srcKey+"|"+dstKey)
	q.Set("mode", mode)
	q.Set("apiKey", p.apiKey)

	var body struct {
		Features []struct {
			Properties struct {
				Distance float64 `json:"distance"`
				Time     float64 `json:"time"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := p.getJSON(ctx, "/v1/routing", q, &body, "Geoapify routing failed"); err != nil {
		return 0, 0, err
	}
	if len(body.Features) == 0 {
		return 0, 0, &ProviderError{Reason: "No route returned"}
	}

	props := body.Features[0].Properties
	p.cache.PutRoute(ctx, srcKey, dstKey, mode, props.Distance, props.Time)
	return props.Distance, props.Time, nil
}

func (p *Provider) getJSON(ctx context.Context, path string, q url.Values, out any, failurePrefix string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return &ProviderError{Reason: err.Error()}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Reason: fmt.Sprintf("%s: %v", failurePrefix, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{Reason: fmt.Sprintf("%s (%d)", failurePrefix, resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Reason: fmt.Sprintf("%s: %v", failurePrefix, err)}
	}
	return nil
}

// estimateCost converts distance into an INR cost band using fixed per-km
// rates (driving 10-16, transit 2-6), rounded to the nearest integer.
func estimateCost(distanceKm float64, mode string) trip.EstimatedCost {
	rateMin, rateMax := 10.0, 16.0
	if mode == "transit" {
		rateMin, rateMax = 2.0, 6.0
	}
	return trip.EstimatedCost{
		Min:      math.Round(distanceKm * rateMin),
		Max:      math.Round(distanceKm * rateMax),
		Currency: "INR",
	}
}

// formatDuration renders seconds as "N min", "N hr", or "N hr M min".
func formatDuration(seconds float64) string {
	minutes := int(math.Round(seconds / 60))
	hours := minutes / 60
	rem := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d min", rem)
	case rem == 0:
		return fmt.Sprintf("%d hr", hours)
	default:
		return fmt.Sprintf("%d hr %d min", hours, rem)
	}
}
