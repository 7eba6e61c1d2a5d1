package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"yatra/internal/ai"
	"yatra/internal/geo"
	"yatra/internal/trip"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	var routes trip.RouteProvider
	if geoKey := os.Getenv("GEOAPIFY_API_KEY"); geoKey != "" {
		geoProvider, err := geo.NewProvider(geoKey, nil)
		if err != nil {
			log.Fatalf("Failed to initialize geo provider: %v", err)
		}
		routes = geoProvider
	}

	planner := trip.NewPlanner(provider, routes)
	mem := trip.NewMemory()

	req := trip.TripRequest{
		Source:       "Kolkata",
		Destinations: []string{"Digha"},
		Budget:       8000,
	}
	fmt.Printf("Planning: %s -> %v within INR %.0f\n", req.Source, req.Destinations, req.Budget)

	plan, err := planner.Generate(ctx, req, mem)
	if err != nil {
		log.Fatalf("Error generating plan: %v", err)
	}

	out, _ := json.MarshalIndent(plan, "", "  ")
	fmt.Println(string(out))

	responder := trip.NewResponder(provider)
	reply := responder.Respond(ctx, "What is the cheapest way to get there?", mem)
	fmt.Printf("Chat: %s\n", reply)
}
