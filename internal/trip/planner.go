package trip

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"yatra/internal/ai"
)

// RouteProvider supplies authoritative routing data for one leg. A nil
// provider (or any provider error) downgrades the pipeline to model
// estimates; it is never fatal.
type RouteProvider interface {
	GetTransportOptions(ctx context.Context, source, destination string) ([]TransportOption, error)
}

// errNoRoutingKey stands in for the provider error when no provider was
// configured at all.
var errNoRoutingKey = errors.New("GEOAPIFY_API_KEY is not set")

// Planner orchestrates provider lookup, prompt build, model call, parse,
// validate, repair retry, provider-data reconciliation, and the memory
// update. It is the sole caller of the parser and validator and the sole
// writer of LastTrip/GeneratedTrips.
type Planner struct {
	model  ai.Provider
	routes RouteProvider

	retryBackoff time.Duration
}

// NewPlanner creates a Planner. routes may be nil when no routing credential
// is configured.
func NewPlanner(model ai.Provider, routes RouteProvider) *Planner {
	return &Planner{
		model:        model,
		routes:       routes,
		retryBackoff: defaultRetryBackoff,
	}
}

// Generate produces a validated TravelPlan for the request and records it in
// memory. Returns *InputError for model-emitted sentinels and
// *GenerationError when retries and the repair round-trip are exhausted.
func (p *Planner) Generate(ctx context.Context, req TripRequest, mem *Memory) (*TravelPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 1. Authoritative routing, all legs or nothing. Failure is captured as
	// text and the pipeline proceeds on model estimates.
	providerLegs, providerErr := p.fetchProviderRoutes(ctx, req)
	if providerErr != nil {
		log.Printf("routing provider unavailable, falling back to model estimates: %v", providerErr)
	}

	// 2-3. Prompt build and model call with bounded transport retries.
	prompt := BuildPrompt(req, FormatRoutesContext(providerLegs))
	raw, err := generateWithRetry(ctx, p.retryBackoff, func(ctx context.Context) (string, error) {
		return p.model.GeneratePlan(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}

	// 4. Parse and validate, with at most one repair round-trip.
	plan, vErr := parseAndValidate(raw)
	if vErr != nil {
		var inputErr *InputError
		if errors.As(vErr, &inputErr) {
			return nil, inputErr
		}

		repairPrompt := BuildRepairPrompt(raw, vErr)
		raw, err = generateWithRetry(ctx, p.retryBackoff, func(ctx context.Context) (string, error) {
			return p.model.GeneratePlan(ctx, repairPrompt)
		})
		if err != nil {
			return nil, err
		}

		plan, vErr = parseAndValidate(raw)
		if vErr != nil {
			if errors.As(vErr, &inputErr) {
				return nil, inputErr
			}
			return nil, &GenerationError{Category: FailureInvalidPlan, Err: vErr}
		}
	}

	// 5-6. Provider data is authoritative: it overrides whatever routing the
	// model proposed, and the plan is annotated with its data source.
	if len(providerLegs) > 0 {
		plan.Routes = providerLegs
		plan.Destinations = append([]string(nil), req.Destinations...)
		plan.DataSource = DataSourceProvider
	} else {
		plan.DataSource = DataSourceModel
		if providerErr != nil {
			plan.DataSourceError = providerErr.Error()
		}
	}

	// 7. Memory update.
	mem.RecordTrip(req, plan)

	return plan, nil
}

// fetchProviderRoutes resolves one leg per consecutive (source, destination)
// pair. The first failing leg abandons provider data for the whole request;
// partial merging is deliberately not attempted.
func (p *Planner) fetchProviderRoutes(ctx context.Context, req TripRequest) ([]RouteLeg, error) {
	if p.routes == nil {
		return nil, errNoRoutingKey
	}

	legs := make([]RouteLeg, 0, len(req.Destinations))
	from := req.Source
	for _, to := range req.Destinations {
		options, err := p.routes.GetTransportOptions(ctx, from, to)
		if err != nil {
			return nil, err
		}
		legs = append(legs, RouteLeg{
			LegName:          fmt.Sprintf("%s -> %s", from, to),
			TransportOptions: options,
		})
		from = to
	}
	return legs, nil
}

// parseAndValidate extracts the JSON payload, intercepts sentinel error
// objects before schema validation, and normalizes/validates the rest.
func parseAndValidate(raw string) (*TravelPlan, error) {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	if obj, ok := payload.(map[string]any); ok {
		if msg, ok := obj["error"].(string); ok && msg != "" {
			return nil, &InputError{Message: msg}
		}
	}

	return NormalizeAndValidate(payload)
}
