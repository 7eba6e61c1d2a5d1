// README: Memory-grounded follow-up chat handler.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"yatra/internal/modules/aiquota"
	"yatra/internal/trip"
)

// ChatHandler exposes the trip follow-up chat over HTTP.
type ChatHandler struct {
	responder *trip.Responder
	sessions  *trip.Sessions
	quota     *aiquota.Service // nil disables the quota guard
}

func NewChatHandler(responder *trip.Responder, sessions *trip.Sessions, quota *aiquota.Service) *ChatHandler {
	return &ChatHandler{
		responder: responder,
		sessions:  sessions,
		quota:     quota,
	}
}

type chatReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Chat handles POST /api/trips/chat. The responder degrades model failures
// to a textual reply, so this endpoint only fails on bad input.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Message = strings.TrimSpace(req.Message)
	if !isValidSessionID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	if h.quota != nil {
		if err := h.quota.UseCredit(ctx, req.SessionID); err != nil {
			writePlanError(c, err)
			return
		}
	}

	mem := h.sessions.Get(req.SessionID)
	reply := h.responder.Respond(ctx, req.Message, mem)

	writeJSON(c, http.StatusOK, map[string]any{"reply": reply})
}
