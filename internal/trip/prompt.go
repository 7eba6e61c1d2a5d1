package trip

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Canonical fixed chat replies. The chat prompt instructs the model to emit
// these verbatim so the surrounding surface (and the tests) can match on them.
const (
	ReplyInsufficientContext = "I don't have enough trip information to answer that."
	ReplyNotTravelRelated    = "I am a travel assistant and can only help with travel-related questions.\U0001F972"
	ReplySuggestRedirect     = "Try the Suggest Travel Places panel for ideas near your source."
)

// BuildPrompt renders the trip parameters (and optional authoritative route
// data) into the instruction document for the plan model. Pure function.
func BuildPrompt(req TripRequest, routesContext string) string {
	startDateSection := "Start Date: Not specified (do NOT assume seasons or weather)\n"
	if req.StartDate != nil {
		startDateSection = fmt.Sprintf("Start Date: %s\n", req.StartDate.Format("2006-01-02"))
	}

	routesSection := "ROUTE DATA: Not available (you may estimate travel time and distance).\n"
	if routesContext != "" {
		routesSection = fmt.Sprintf("ROUTE DATA (authoritative, use exactly):\n%s\n", routesContext)
	}

	destinationsLine := strings.Join(req.Destinations, " -> ")

	return fmt.Sprintf(`You are a professional travel planning system.

    Your task is to analyze the trip details below and return a structured travel plan.

    INPUT:
    Source: %s
    Destinations: %s
    %s
    Budget: INR %v
    %s

    VALIDATION RULES:
    - Source and destinations must be valid real-world place names.
    - Source and destinations must be in same country.
    - Budget must be a numeric value.
    - If source is invalid, return ONLY:
    {"error": "Enter a valid source"}
    - If destination is invalid, return ONLY:
    {"error": "Enter a valid destination"}

    TRAVEL RULES:
    - For a single destination, include ONE route with MULTIPLE transport options.
    - For multiple destinations, include ONE route per leg with MULTIPLE transport options.
    - Travel time is mandatory for every transport option.
    - Cost estimates must be realistic and within the given budget.
    - Exclude any route exceeding the budget.
    - If start date is provided, you MAY consider seasonal pricing.
    - If start date is not provided, assume average pricing.
    - If ROUTE DATA is provided, use those values exactly for time, distance, and vehicles.

JSON FORMAT:
{
  "source": "string",
  "destinations": ["string"],
  "budget": "number",
  "routes": [
    {
      "leg_name": "string",
      "transport_options": [
        {
          "mode": "string",
          "estimated_travel_time": "string",
          "distance_km": "number",
          "available_vehicles": ["string"],
          "estimated_cost": {
            "min": "number",
            "max": "number",
            "currency": "INR"
          },
          "route_summary": "string"
        }
      ]
    }
  ],
  "best_route_recommendation": "string",
  "detailed_travel_plan": {
    "day_1": "string",
    "day_2": "string",
    "day_3": "string"
  }
}

CONTENT RULES:
1. Single destination: ONE route with MULTIPLE transport options
2. Multiple destinations: ONE route per leg with MULTIPLE transport options
3. Clearly mention travel time for each transport option
4. Include cost estimates per transport option
5. List commonly available vehicles
6. Provide a realistic, detailed day-wise travel plan
7. Keep all suggestions within the given budget

Return ONLY the JSON object.
`, req.Source, destinationsLine, startDateSection, req.Budget, routesSection)
}

// BuildRepairPrompt embeds the model's invalid output and the specific
// validation error for the single repair round-trip.
func BuildRepairPrompt(invalidOutput string, cause error) string {
	return fmt.Sprintf(`Your previous response was not a valid travel plan JSON object.

ERROR:
%s

PREVIOUS RESPONSE:
%s

Correct the response so it is a single JSON object matching the required travel plan schema exactly. Return ONLY the corrected JSON object. Do not include explanations or markdown fences.
`, cause.Error(), invalidOutput)
}

// FormatRoutesContext renders provider legs as the authoritative ROUTE DATA
// block. Returns "" when no provider data exists.
func FormatRoutesContext(legs []RouteLeg) string {
	if len(legs) == 0 {
		return ""
	}
	b, err := json.MarshalIndent(legs, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// BuildChatPrompt renders the memory-grounded chat instruction document.
func BuildChatPrompt(mem *Memory, userInput string) string {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	lastTrip := "null"
	if mem.LastTrip != nil {
		if b, err := json.Marshal(mem.LastTrip); err == nil {
			lastTrip = string(b)
		}
	}

	var history strings.Builder
	for _, turn := range mem.ChatHistory {
		history.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Text))
	}

	return fmt.Sprintf(`You are a STRICT travel assistant chatbot.

ROLE:
- You ONLY answer questions related to travel, journeys, routes, transportation, budgets, or trip planning.
- You MUST rely ONLY on the information available in memory.
- You MUST NOT invent, assume, or hallucinate details.

MEMORY CONTEXT:
Last planned trip:
%s

Conversation history:
%s

USER QUESTION:
%s

RESPONSE RULES:
- If the question is related to travel AND can be answered using the memory context: Answer clearly and concisely.
- If the question asks to suggest places to visit: Reply exactly:
      "%s"
- If the question is travel-related BUT memory does not contain enough information: Reply exactly:
      "%s"
- If the question is NOT related to travel or journeys: Reply exactly:
      "%s"

- Do NOT ask follow-up questions.
- Do NOT provide general knowledge.
- Do NOT explain your reasoning.
- Keep the response short and helpful.
`, lastTrip, history.String(), userInput, ReplySuggestRedirect, ReplyInsufficientContext, ReplyNotTravelRelated)
}
