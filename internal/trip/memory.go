package trip

import (
	"sync"
)

// ChatTurn is one (role, text) pair in the conversation log.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// TripSummary is the plain summary of the most recent request kept in memory
// for the chat responder to ground its answers on.
type TripSummary struct {
	Source       string   `json:"source"`
	Destinations []string `json:"destinations"`
	Budget       float64  `json:"budget"`
	StartDate    *string  `json:"start_date"`
}

// Memory is the session-scoped state shared between the planner and the chat
// responder. The planner is the only writer of LastTrip and GeneratedTrips;
// the responder is the only writer of ChatHistory. One Memory belongs to
// exactly one session, but concurrent requests may carry the same session id,
// so mutation goes through mu.
type Memory struct {
	mu sync.Mutex

	LastTrip       *TripSummary
	GeneratedTrips []*TravelPlan
	ChatHistory    []ChatTurn
	Preferences    map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		Preferences: map[string]string{},
	}
}

// RecordTrip overwrites the last-trip summary and appends the plan to the
// generated-trips log.
func (m *Memory) RecordTrip(req TripRequest, plan *TravelPlan) {
	var startDate *string
	if req.StartDate != nil {
		s := req.StartDate.Format("2006-01-02")
		startDate = &s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastTrip = &TripSummary{
		Source:       req.Source,
		Destinations: append([]string(nil), req.Destinations...),
		Budget:       req.Budget,
		StartDate:    startDate,
	}
	m.GeneratedTrips = append(m.GeneratedTrips, plan)
}

// AppendChat records a completed user/assistant exchange, in order.
func (m *Memory) AppendChat(userText, assistantText string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatHistory = append(m.ChatHistory,
		ChatTurn{Role: "user", Text: userText},
		ChatTurn{Role: "assistant", Text: assistantText},
	)
}

// Sessions hands out one independent Memory per session id.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*Memory
}

func NewSessions() *Sessions {
	return &Sessions{byID: map[string]*Memory{}}
}

// Get returns the Memory for the session, creating it on first use.
func (s *Sessions) Get(id string) *Memory {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		m = NewMemory()
		s.byID[id] = m
	}
	return m
}
