package trip

import (
	"fmt"
	"strconv"
	"strings"
)

// routeShape classifies the historical JSON shapes the model has emitted for
// a single route entry. Classification happens once, up front, so the rest of
// the pipeline only ever sees the canonical shape.
type routeShape int

const (
	// shapeCanonical: {"leg_name": ..., "transport_options": [ {..}, ... ]}
	shapeCanonical routeShape = iota
	// shapeStringOptions: transport_options is a list of bare mode names.
	shapeStringOptions
	// shapeLegacySingle: option fields sit directly on the route object.
	shapeLegacySingle
)

func classifyRoute(route map[string]any) routeShape {
	opts, hasOpts := route["transport_options"]
	_, hasLeg := route["leg_name"]
	if hasOpts && hasLeg {
		if list, ok := opts.([]any); ok && len(list) > 0 && allStrings(list) {
			return shapeStringOptions
		}
		return shapeCanonical
	}
	return shapeLegacySingle
}

// normalizePlan rewrites legacy and alternate response shapes into the
// canonical plan layout. It never rejects anything; strict validation runs
// afterwards. Normalizing an already-canonical plan is a no-op.
func normalizePlan(data map[string]any) map[string]any {
	if routes, ok := data["routes"].([]any); ok {
		normalized := make([]any, 0, len(routes))
		for idx, r := range routes {
			route, ok := r.(map[string]any)
			if !ok {
				// Leave malformed entries for validation to flag.
				normalized = append(normalized, r)
				continue
			}
			normalized = append(normalized, normalizeRoute(route, idx))
		}
		data["routes"] = normalized
	}

	// Older responses carried a single "destination" field.
	if _, ok := data["destinations"]; !ok {
		if dest, ok := data["destination"].(string); ok && dest != "" {
			data["destinations"] = []any{dest}
		}
	}

	return data
}

func normalizeRoute(route map[string]any, idx int) map[string]any {
	switch classifyRoute(route) {
	case shapeStringOptions:
		list := route["transport_options"].([]any)
		opts := make([]any, 0, len(list))
		for _, o := range list {
			mode := o.(string)
			opts = append(opts, stubOption(mode))
		}
		route["transport_options"] = opts
		return route

	case shapeLegacySingle:
		opt := normalizeOption(route)
		legName, _ := route["leg_name"].(string)
		if legName == "" {
			from, _ := route["from"].(string)
			to, _ := route["to"].(string)
			if from != "" && to != "" {
				legName = from + " -> " + to
			} else {
				legName = fmt.Sprintf("Leg %d", idx+1)
			}
		}
		return map[string]any{
			"leg_name":          legName,
			"transport_options": []any{opt},
		}

	default: // shapeCanonical
		if list, ok := route["transport_options"].([]any); ok {
			opts := make([]any, 0, len(list))
			for _, o := range list {
				if m, ok := o.(map[string]any); ok {
					opts = append(opts, normalizeOption(m))
				} else {
					opts = append(opts, o)
				}
			}
			route["transport_options"] = opts
		}
		return route
	}
}

// normalizeOption rebuilds a transport option with every canonical field
// present, applying the historical field fallbacks.
func normalizeOption(opt map[string]any) map[string]any {
	mode := firstString(opt, "mode", "type", "route_name")
	if mode == "" {
		mode = "Route"
	}

	var estTime any
	if v, ok := opt["estimated_travel_time"]; ok && v != nil {
		estTime = v
	} else if v, ok := opt["duration_hours"]; ok && v != nil {
		estTime = fmt.Sprintf("%v hr", v)
	} else {
		estTime = "N/A"
	}

	distance, ok := opt["distance_km"]
	if !ok || distance == nil {
		distance = nil
		for _, key := range []string{"estimated_distance_km", "distance"} {
			if v, ok := opt[key]; ok {
				if n, isNum := numericValue(v); isNum && n != 0 {
					distance = n
					break
				}
			}
		}
		if distance == nil {
			distance = float64(1)
		}
	}

	vehicles, ok := opt["available_vehicles"]
	if !ok || vehicles == nil {
		vehicles = []any{titleWords(mode)}
	}

	cost, ok := opt["estimated_cost"]
	if !ok || cost == nil {
		cost = map[string]any{"min": float64(0), "max": float64(0), "currency": "INR"}
	}
	// A single number means a flat cost: collapse into an equal min/max band.
	if n, isNum := toNumber(cost); isNum {
		cost = map[string]any{"min": n, "max": n, "currency": "INR"}
	}

	summary := ""
	if s, ok := opt["route_summary"].(string); ok {
		summary = s
	}

	return map[string]any{
		"mode":                  mode,
		"estimated_travel_time": estTime,
		"distance_km":           distance,
		"available_vehicles":    vehicles,
		"estimated_cost":        cost,
		"route_summary":         summary,
	}
}

func stubOption(mode string) map[string]any {
	return map[string]any{
		"mode":                  mode,
		"estimated_travel_time": "N/A",
		"distance_km":           float64(1),
		"available_vehicles":    []any{mode},
		"estimated_cost":        map[string]any{"min": float64(0), "max": float64(0), "currency": "INR"},
		"route_summary":         "",
	}
}

func allStrings(list []any) bool {
	for _, v := range list {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// numericValue also accepts numeric strings; models occasionally quote their
// numbers.
func numericValue(v any) (float64, bool) {
	if n, ok := toNumber(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
