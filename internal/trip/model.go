package trip

import (
	"errors"
	"strings"
	"time"
)

// Data source annotations surfaced on every generated plan so downstream
// presentation can signal how trustworthy the routing numbers are.
const (
	DataSourceProvider = "Geoapify routing"
	DataSourceModel    = "LLM estimates"
)

var (
	ErrEmptySource       = errors.New("source must not be empty")
	ErrNoDestinations    = errors.New("at least one destination is required")
	ErrNonPositiveBudget = errors.New("budget must be positive")
)

// TripRequest is the immutable input to a single plan-generation call.
type TripRequest struct {
	Source       string
	Destinations []string
	Budget       float64
	// StartDate is optional; nil means the prompt tells the model not to
	// assume seasonality.
	StartDate *time.Time
}

// Validate checks the request invariants before any outbound call is made.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Source) == "" {
		return ErrEmptySource
	}
	if len(r.Destinations) == 0 {
		return ErrNoDestinations
	}
	for _, d := range r.Destinations {
		if strings.TrimSpace(d) == "" {
			return ErrNoDestinations
		}
	}
	if r.Budget <= 0 {
		return ErrNonPositiveBudget
	}
	return nil
}

// EstimatedCost is a min/max band in a single currency. Invariant: Min <= Max.
type EstimatedCost struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// TransportOption is one mode of travel for a leg with its own
// cost/time/vehicle data.
type TransportOption struct {
	Mode                string        `json:"mode"`
	EstimatedTravelTime string        `json:"estimated_travel_time"`
	DistanceKm          float64       `json:"distance_km"`
	AvailableVehicles   []string      `json:"available_vehicles"`
	EstimatedCost       EstimatedCost `json:"estimated_cost"`
	RouteSummary        string        `json:"route_summary"`
}

// RouteLeg is one source -> destination hop with at least one transport option.
type RouteLeg struct {
	LegName          string            `json:"leg_name"`
	TransportOptions []TransportOption `json:"transport_options"`
}

// TravelPlan is the canonical validated plan. Field names and nesting are the
// wire contract shared with the model's JSON output.
type TravelPlan struct {
	Source                  string            `json:"source"`
	Destinations            []string          `json:"destinations"`
	Budget                  float64           `json:"budget"`
	Routes                  []RouteLeg        `json:"routes"`
	BestRouteRecommendation string            `json:"best_route_recommendation"`
	DetailedTravelPlan      map[string]string `json:"detailed_travel_plan"`

	// DataSource and DataSourceError are set by the generator, never by the
	// model, and record whether routing came from the provider.
	DataSource      string `json:"data_source,omitempty"`
	DataSourceError string `json:"data_source_error,omitempty"`
}
