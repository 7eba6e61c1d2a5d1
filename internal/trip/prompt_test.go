package trip

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBuildPrompt(t *testing.T) {
	req := TripRequest{
		Source:       "Kolkata",
		Destinations: []string{"Digha", "Puri"},
		Budget:       12000,
	}

	prompt := BuildPrompt(req, "")

	for _, want := range []string{
		"Source: Kolkata",
		"Destinations: Digha -> Puri",
		"Budget: INR 12000",
		"Start Date: Not specified (do NOT assume seasons or weather)",
		`{"error": "Enter a valid source"}`,
		`{"error": "Enter a valid destination"}`,
		"ROUTE DATA: Not available",
		"Return ONLY the JSON object.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptWithStartDate(t *testing.T) {
	start := time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)
	req := TripRequest{
		Source:       "Kolkata",
		Destinations: []string{"Digha"},
		Budget:       8000,
		StartDate:    &start,
	}

	prompt := BuildPrompt(req, "")
	if !strings.Contains(prompt, "Start Date: 2026-11-03") {
		t.Error("prompt missing formatted start date")
	}
	if strings.Contains(prompt, "Not specified") {
		t.Error("prompt still carries the no-date marker")
	}
}

func TestBuildPromptWithRoutesContext(t *testing.T) {
	legs := []RouteLeg{{
		LegName: "Kolkata -> Digha",
		TransportOptions: []TransportOption{{
			Mode:                "Driving",
			EstimatedTravelTime: "3 hr 15 min",
			DistanceKm:          185.2,
			AvailableVehicles:   []string{"Car", "Taxi"},
			EstimatedCost:       EstimatedCost{Min: 1852, Max: 2963, Currency: "INR"},
		}},
	}}

	prompt := BuildPrompt(TripRequest{Source: "Kolkata", Destinations: []string{"Digha"}, Budget: 8000},
		FormatRoutesContext(legs))

	if !strings.Contains(prompt, "ROUTE DATA (authoritative, use exactly):") {
		t.Error("prompt missing authoritative route data header")
	}
	if !strings.Contains(prompt, `"Kolkata -> Digha"`) {
		t.Error("prompt missing provider leg name")
	}
	if strings.Contains(prompt, "ROUTE DATA: Not available") {
		t.Error("prompt carries both route data markers")
	}
}

func TestFormatRoutesContextEmpty(t *testing.T) {
	if got := FormatRoutesContext(nil); got != "" {
		t.Errorf("FormatRoutesContext(nil) = %q, want empty", got)
	}
}

func TestBuildRepairPrompt(t *testing.T) {
	prompt := BuildRepairPrompt(`{"oops": true}`, errors.New("budget: must be positive"))

	if !strings.Contains(prompt, "budget: must be positive") {
		t.Error("repair prompt missing the validation error")
	}
	if !strings.Contains(prompt, `{"oops": true}`) {
		t.Error("repair prompt missing the previous response")
	}
	if !strings.Contains(prompt, "Return ONLY the corrected JSON object") {
		t.Error("repair prompt missing the output instruction")
	}
}

func TestBuildChatPrompt(t *testing.T) {
	mem := NewMemory()
	mem.AppendChat("how far is it?", "About 185 km by road.")

	prompt := BuildChatPrompt(mem, "what about by train?")

	for _, want := range []string{
		"Last planned trip:\nnull",
		"user: how far is it?",
		"assistant: About 185 km by road.",
		"what about by train?",
		ReplyInsufficientContext,
		ReplyNotTravelRelated,
		ReplySuggestRedirect,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("chat prompt missing %q", want)
		}
	}
}

func TestBuildChatPromptWithTrip(t *testing.T) {
	mem := NewMemory()
	mem.RecordTrip(TripRequest{Source: "Kolkata", Destinations: []string{"Digha"}, Budget: 8000},
		&TravelPlan{Source: "Kolkata", Destinations: []string{"Digha"}, Budget: 8000})

	prompt := BuildChatPrompt(mem, "anything else?")
	if strings.Contains(prompt, "Last planned trip:\nnull") {
		t.Error("chat prompt still reports no trip")
	}
	if !strings.Contains(prompt, `"source":"Kolkata"`) {
		t.Error("chat prompt missing the recorded trip")
	}
}
