package trip

import (
	"fmt"
	"strings"
)

// NormalizeAndValidate coerces a parsed model response into the canonical
// TravelPlan, normalizing legacy shapes first and then enforcing every plan
// invariant. The first violation found is returned as a SchemaError naming
// the offending field path.
func NormalizeAndValidate(v any) (*TravelPlan, error) {
	data, ok := v.(map[string]any)
	if !ok {
		return nil, &SchemaError{Field: "plan", Reason: "expected a JSON object"}
	}

	data = normalizePlan(data)

	plan := &TravelPlan{}

	source, err := fieldString(data, "source")
	if err != nil {
		return nil, err
	}
	plan.Source = source

	destinations, err := fieldStringList(data, "destinations")
	if err != nil {
		return nil, err
	}
	if len(destinations) == 0 {
		return nil, &SchemaError{Field: "destinations", Reason: "must not be empty"}
	}
	for i, d := range destinations {
		if strings.TrimSpace(d) == "" {
			return nil, &SchemaError{Field: fmt.Sprintf("destinations[%d]", i), Reason: "must not be empty"}
		}
	}
	plan.Destinations = destinations

	budget, err := fieldNumber(data, "budget")
	if err != nil {
		return nil, err
	}
	if budget <= 0 {
		return nil, &SchemaError{Field: "budget", Reason: "must be positive"}
	}
	plan.Budget = budget

	rawRoutes, ok := data["routes"].([]any)
	if !ok || len(rawRoutes) == 0 {
		return nil, &SchemaError{Field: "routes", Reason: "must be a non-empty list"}
	}
	if len(rawRoutes) != len(destinations) {
		return nil, &SchemaError{
			Field:  "routes",
			Reason: fmt.Sprintf("expected %d route(s) for %d destination(s), got %d", len(destinations), len(destinations), len(rawRoutes)),
		}
	}
	for i, r := range rawRoutes {
		leg, err := validateRoute(r, fmt.Sprintf("routes[%d]", i))
		if err != nil {
			return nil, err
		}
		plan.Routes = append(plan.Routes, leg)
	}

	recommendation, err := fieldString(data, "best_route_recommendation")
	if err != nil {
		return nil, err
	}
	plan.BestRouteRecommendation = recommendation

	rawPlan, ok := data["detailed_travel_plan"].(map[string]any)
	if !ok || len(rawPlan) == 0 {
		return nil, &SchemaError{Field: "detailed_travel_plan", Reason: "must be a non-empty object"}
	}
	plan.DetailedTravelPlan = make(map[string]string, len(rawPlan))
	for day, text := range rawPlan {
		s, ok := text.(string)
		if !ok {
			return nil, &SchemaError{Field: "detailed_travel_plan." + day, Reason: "must be a string"}
		}
		plan.DetailedTravelPlan[day] = s
	}

	return plan, nil
}

func validateRoute(v any, path string) (RouteLeg, error) {
	route, ok := v.(map[string]any)
	if !ok {
		return RouteLeg{}, &SchemaError{Field: path, Reason: "expected a JSON object"}
	}

	legName, err := fieldString(route, "leg_name")
	if err != nil {
		return RouteLeg{}, prefixField(err, path)
	}

	rawOpts, ok := route["transport_options"].([]any)
	if !ok || len(rawOpts) == 0 {
		return RouteLeg{}, &SchemaError{Field: path + ".transport_options", Reason: "must be a non-empty list"}
	}

	leg := RouteLeg{LegName: legName}
	for i, o := range rawOpts {
		opt, err := validateOption(o, fmt.Sprintf("%s.transport_options[%d]", path, i))
		if err != nil {
			return RouteLeg{}, err
		}
		leg.TransportOptions = append(leg.TransportOptions, opt)
	}
	return leg, nil
}

func validateOption(v any, path string) (TransportOption, error) {
	raw, ok := v.(map[string]any)
	if !ok {
		return TransportOption{}, &SchemaError{Field: path, Reason: "expected a JSON object"}
	}

	var opt TransportOption
	var err error

	if opt.Mode, err = fieldString(raw, "mode"); err != nil {
		return TransportOption{}, prefixField(err, path)
	}
	if opt.EstimatedTravelTime, err = fieldString(raw, "estimated_travel_time"); err != nil {
		return TransportOption{}, prefixField(err, path)
	}
	if opt.DistanceKm, err = fieldNumber(raw, "distance_km"); err != nil {
		return TransportOption{}, prefixField(err, path)
	}
	if opt.DistanceKm <= 0 {
		return TransportOption{}, &SchemaError{Field: path + ".distance_km", Reason: "must be positive"}
	}

	vehicles, err := fieldStringList(raw, "available_vehicles")
	if err != nil {
		return TransportOption{}, prefixField(err, path)
	}
	if len(vehicles) == 0 {
		return TransportOption{}, &SchemaError{Field: path + ".available_vehicles", Reason: "must not be empty"}
	}
	opt.AvailableVehicles = vehicles

	rawCost, ok := raw["estimated_cost"].(map[string]any)
	if !ok {
		return TransportOption{}, &SchemaError{Field: path + ".estimated_cost", Reason: "expected a JSON object"}
	}
	costPath := path + ".estimated_cost"
	if opt.EstimatedCost.Min, err = fieldNumber(rawCost, "min"); err != nil {
		return TransportOption{}, prefixField(err, costPath)
	}
	if opt.EstimatedCost.Max, err = fieldNumber(rawCost, "max"); err != nil {
		return TransportOption{}, prefixField(err, costPath)
	}
	if opt.EstimatedCost.Min < 0 {
		return TransportOption{}, &SchemaError{Field: costPath + ".min", Reason: "must be non-negative"}
	}
	if opt.EstimatedCost.Max < 0 {
		return TransportOption{}, &SchemaError{Field: costPath + ".max", Reason: "must be non-negative"}
	}
	if opt.EstimatedCost.Min > opt.EstimatedCost.Max {
		return TransportOption{}, &SchemaError{Field: costPath + ".min", Reason: "must be <= estimated_cost.max"}
	}
	opt.EstimatedCost.Currency = "INR"
	if c, ok := rawCost["currency"].(string); ok && c != "" {
		opt.EstimatedCost.Currency = c
	}

	if opt.RouteSummary, err = fieldString(raw, "route_summary"); err != nil {
		return TransportOption{}, prefixField(err, path)
	}

	return opt, nil
}

func fieldString(m map[string]any, field string) (string, error) {
	v, ok := m[field]
	if !ok || v == nil {
		return "", &SchemaError{Field: field, Reason: "is required"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &SchemaError{Field: field, Reason: "must be a string"}
	}
	return s, nil
}

// fieldNumber accepts JSON numbers and numeric strings.
func fieldNumber(m map[string]any, field string) (float64, error) {
	v, ok := m[field]
	if !ok || v == nil {
		return 0, &SchemaError{Field: field, Reason: "is required"}
	}
	if n, ok := numericValue(v); ok {
		return n, nil
	}
	return 0, &SchemaError{Field: field, Reason: "must be a number"}
}

func fieldStringList(m map[string]any, field string) ([]string, error) {
	v, ok := m[field]
	if !ok || v == nil {
		return nil, &SchemaError{Field: field, Reason: "is required"}
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &SchemaError{Field: field, Reason: "must be a list"}
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, &SchemaError{Field: fmt.Sprintf("%s[%d]", field, i), Reason: "must be a string"}
		}
		out = append(out, s)
	}
	return out, nil
}

// prefixField prepends the parent path to a SchemaError raised on a bare
// field name.
func prefixField(err error, path string) error {
	if se, ok := err.(*SchemaError); ok {
		return &SchemaError{Field: path + "." + se.Field, Reason: se.Reason}
	}
	return err
}
