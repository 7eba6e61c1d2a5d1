package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// geoapifyStub emulates the geocoding and routing endpoints. Routes are keyed
// by mode; a missing mode answers with an empty feature list.
type geoapifyStub struct {
	places map[string]Point
	routes map[string]struct{ distanceM, timeS float64 }

	geocodeRequests []string
	routeRequests   []string
	routingStatus   int // 0 means 200
}

func (s *geoapifyStub) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/geocode/search", func(w http.ResponseWriter, r *http.Request) {
		text := r.URL.Query().Get("text")
		s.geocodeRequests = append(s.geocodeRequests, text)

		if r.URL.Query().Get("apiKey") == "" || r.URL.Query().Get("format") != "json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		point, ok := s.places[text]
		if !ok {
			json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"results": []Point{point}})
	})

	mux.HandleFunc("/v1/routing", func(w http.ResponseWriter, r *http.Request) {
		mode := r.URL.Query().Get("mode")
		s.routeRequests = append(s.routeRequests, mode)

		if s.routingStatus != 0 {
			w.WriteHeader(s.routingStatus)
			return
		}

		route, ok := s.routes[mode]
		if !ok {
			json.NewEncoder(w).Encode(map[string]any{"features": []any{}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{
				{"properties": map[string]any{"distance": route.distanceM, "time": route.timeS}},
			},
		})
	})

	return mux
}

func newTestProvider(t *testing.T, stub *geoapifyStub) *Provider {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	p, err := NewProvider("test-key", nil)
	if err != nil {
		t.Fatal(err)
	}
	p.baseURL = srv.URL
	p.httpClient = srv.Client()
	return p
}

func kolkataDighaStub() *geoapifyStub {
	return &geoapifyStub{
		places: map[string]Point{
			"Kolkata": {Lat: 22.5726, Lon: 88.3639, Formatted: "Kolkata, West Bengal, India", CountryCode: "in"},
			"Digha":   {Lat: 21.6266, Lon: 87.5074, Formatted: "Digha, West Bengal, India", CountryCode: "in"},
		},
		routes: map[string]struct{ distanceM, timeS float64 }{
			"drive":   {distanceM: 185160, timeS: 11700},
			"transit": {distanceM: 180000, timeS: 14400},
		},
	}
}

func TestGetTransportOptions(t *testing.T) {
	stub := kolkataDighaStub()
	p := newTestProvider(t, stub)

	options, err := p.GetTransportOptions(context.Background(), "Kolkata", "Digha")
	if err != nil {
		t.Fatalf("GetTransportOptions() error = %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("options count = %d, want 2", len(options))
	}

	drive := options[0]
	if drive.Mode != "Driving" {
		t.Errorf("Mode = %q, want Driving", drive.Mode)
	}
	// 185160 m rounds to 185.2 km at one decimal.
	if drive.DistanceKm != 185.2 {
		t.Errorf("DistanceKm = %v, want 185.2", drive.DistanceKm)
	}
	// 11700 s is 195 min.
	if drive.EstimatedTravelTime != "3 hr 15 min" {
		t.Errorf("EstimatedTravelTime = %q", drive.EstimatedTravelTime)
	}
	if got := drive.AvailableVehicles; len(got) != 2 || got[0] != "Car" || got[1] != "Taxi" {
		t.Errorf("AvailableVehicles = %v", got)
	}
	// Driving band is 10-16 INR/km, rounded.
	if drive.EstimatedCost.Min != 1852 || drive.EstimatedCost.Max != 2963 || drive.EstimatedCost.Currency != "INR" {
		t.Errorf("cost = %+v", drive.EstimatedCost)
	}
	if !strings.Contains(drive.RouteSummary, "Geoapify routing") {
		t.Errorf("RouteSummary = %q", drive.RouteSummary)
	}
	if !strings.Contains(drive.RouteSummary, "INR 1852-2963") {
		t.Errorf("RouteSummary = %q", drive.RouteSummary)
	}

	transit := options[1]
	if transit.Mode != "Transit" {
		t.Errorf("Mode = %q, want Transit", transit.Mode)
	}
	// Transit band is 2-6 INR/km over 180 km.
	if transit.EstimatedCost.Min != 360 || transit.EstimatedCost.Max != 1080 {
		t.Errorf("transit cost = %+v", transit.EstimatedCost)
	}
	if got := transit.AvailableVehicles; len(got) != 2 || got[0] != "Bus" || got[1] != "Train" {
		t.Errorf("AvailableVehicles = %v", got)
	}
}

func TestGetTransportOptionsSkipsFailingMode(t *testing.T) {
	stub := kolkataDighaStub()
	delete(stub.routes, "transit")
	p := newTestProvider(t, stub)

	options, err := p.GetTransportOptions(context.Background(), "Kolkata", "Digha")
	if err != nil {
		t.Fatalf("GetTransportOptions() error = %v", err)
	}
	if len(options) != 1 || options[0].Mode != "Driving" {
		t.Errorf("options = %+v, want Driving only", options)
	}
}

func TestGetTransportOptionsAllModesFail(t *testing.T) {
	stub := kolkataDighaStub()
	stub.routes = nil
	p := newTestProvider(t, stub)

	_, err := p.GetTransportOptions(context.Background(), "Kolkata", "Digha")
	provErr, ok := err.(*ProviderError)
	if !ok {
		t.Fatalf("expected *ProviderError, got %v (%T)", err, err)
	}
	if provErr.Reason != "Insufficient route data from provider" {
		t.Errorf("Reason = %q", provErr.Reason)
	}
}

func TestGetTransportOptionsSkipsZeroDistance(t *testing.T) {
	stub := kolkataDighaStub()
	stub.routes["drive"] = struct{ distanceM, timeS float64 }{distanceM: 0, timeS: 100}
	delete(stub.routes, "transit")
	p := newTestProvider(t, stub)

	if _, err := p.GetTransportOptions(context.Background(), "Kolkata", "Digha"); err == nil {
		t.Error("zero-distance routes must not produce options")
	}
}

func TestGeocode(t *testing.T) {
	stub := kolkataDighaStub()
	p := newTestProvider(t, stub)

	point, err := p.Geocode(context.Background(), "Kolkata")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if point.Lat != 22.5726 || point.Lon != 88.3639 {
		t.Errorf("point = %+v", point)
	}
	if point.CountryCode != "in" {
		t.Errorf("CountryCode = %q", point.CountryCode)
	}
}

func TestGeocodeNotFound(t *testing.T) {
	p := newTestProvider(t, kolkataDighaStub())

	_, err := p.Geocode(context.Background(), "Atlantis")
	provErr, ok := err.(*ProviderError)
	if !ok {
		t.Fatalf("expected *ProviderError, got %v (%T)", err, err)
	}
	if provErr.Reason != "Location not found: Atlantis" {
		t.Errorf("Reason = %q", provErr.Reason)
	}
}

func TestRoutingNon200(t *testing.T) {
	stub := kolkataDighaStub()
	stub.routingStatus = http.StatusInternalServerError
	p := newTestProvider(t, stub)

	_, err := p.GetTransportOptions(context.Background(), "Kolkata", "Digha")
	provErr, ok := err.(*ProviderError)
	if !ok {
		t.Fatalf("expected *ProviderError, got %v (%T)", err, err)
	}
	if provErr.Reason != "Insufficient route data from provider" {
		t.Errorf("Reason = %q", provErr.Reason)
	}
}

func TestNewProviderRequiresKey(t *testing.T) {
	if _, err := NewProvider("", nil); err == nil {
		t.Error("expected error for empty API key")
	}
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		distanceKm float64
		mode       string
		wantMin    float64
		wantMax    float64
	}{
		{100, "drive", 1000, 1600},
		{100, "transit", 200, 600},
		{185.2, "drive", 1852, 2963},
		{0.5, "transit", 1, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%.1fkm", tt.mode, tt.distanceKm), func(t *testing.T) {
			got := estimateCost(tt.distanceKm, tt.mode)
			if got.Min != tt.wantMin || got.Max != tt.wantMax {
				t.Errorf("estimateCost(%v, %q) = %+v, want min %v max %v",
					tt.distanceKm, tt.mode, got, tt.wantMin, tt.wantMax)
			}
			if got.Currency != "INR" {
				t.Errorf("Currency = %q", got.Currency)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{1500, "25 min"},
		{3600, "1 hr"},
		{11700, "3 hr 15 min"},
		{89, "1 min"},
		{7200, "2 hr"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatDuration(tt.seconds); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}
