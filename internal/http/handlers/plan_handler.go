// README: Travel plan generation handler.
package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"yatra/internal/geo"
	"yatra/internal/modules/aiquota"
	"yatra/internal/trip"
)

// domesticCountryCode limits planning to one country, matching the product's
// India-only scope.
const domesticCountryCode = "in"

const internationalBlockMessage = "Sorry, we don't support international travels. We encourage you to visit our beautiful India."

// Geocoder resolves a place name for the domestic-travel guard.
// *geo.Provider satisfies it.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (geo.Point, error)
}

// PlanHandler exposes the plan-generation pipeline over HTTP.
type PlanHandler struct {
	planner  *trip.Planner
	sessions *trip.Sessions
	quota    *aiquota.Service // nil disables the quota guard
	geocoder Geocoder         // nil disables the domestic-travel guard
}

func NewPlanHandler(planner *trip.Planner, sessions *trip.Sessions, quota *aiquota.Service, geocoder Geocoder) *PlanHandler {
	return &PlanHandler{
		planner:  planner,
		sessions: sessions,
		quota:    quota,
		geocoder: geocoder,
	}
}

type planReq struct {
	SessionID    string   `json:"session_id"`
	Source       string   `json:"source"`
	Destinations []string `json:"destinations"`
	Budget       float64  `json:"budget"`
	StartDate    string   `json:"start_date"`
}

// Generate handles POST /api/trips/plan.
func (h *PlanHandler) Generate(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	if !isValidSessionID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}

	tripReq := trip.TripRequest{
		Source: strings.TrimSpace(req.Source),
		Budget: req.Budget,
	}
	for _, d := range req.Destinations {
		if d = strings.TrimSpace(d); d != "" {
			tripReq.Destinations = append(tripReq.Destinations, d)
		}
	}
	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		tripReq.StartDate = &t
	}
	if err := tripReq.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 120*time.Second)
	defer cancel()

	if h.quota != nil {
		if err := h.quota.UseCredit(ctx, req.SessionID); err != nil {
			writePlanError(c, err)
			return
		}
	}

	if blocked, msg := h.checkDomestic(ctx, tripReq); blocked {
		writeError(c, http.StatusBadRequest, msg)
		return
	}

	mem := h.sessions.Get(req.SessionID)
	plan, err := h.planner.Generate(ctx, tripReq, mem)
	if err != nil {
		writePlanError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, plan)
}

// checkDomestic geocodes every place and rejects trips that leave the
// supported country. A geocoding failure skips the guard: provider problems
// must never block plan generation.
func (h *PlanHandler) checkDomestic(ctx context.Context, req trip.TripRequest) (bool, string) {
	if h.geocoder == nil {
		return false, ""
	}

	places := append([]string{req.Source}, req.Destinations...)
	for _, place := range places {
		point, err := h.geocoder.Geocode(ctx, place)
		if err != nil {
			log.Printf("domestic check skipped, geocode %q: %v", place, err)
			return false, ""
		}
		if code := strings.ToLower(point.CountryCode); code != "" && code != domesticCountryCode {
			return true, internationalBlockMessage
		}
	}
	return false, ""
}
