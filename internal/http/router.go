// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/geo"
	"yatra/internal/http/handlers"
	"yatra/internal/http/middleware"
	"yatra/internal/modules/aiquota"
	"yatra/internal/trip"
)

// RouterDeps carries everything the HTTP surface needs. Quota and Geocoder
// are optional.
type RouterDeps struct {
	Planner   *trip.Planner
	Responder *trip.Responder
	Sessions  *trip.Sessions
	Quota     *aiquota.Service
	Geocoder  *geo.Provider
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	planHandler := handlers.NewPlanHandler(deps.Planner, deps.Sessions, deps.Quota, geocoderOrNil(deps.Geocoder))
	r.POST("/api/trips/plan", planHandler.Generate)

	chatHandler := handlers.NewChatHandler(deps.Responder, deps.Sessions, deps.Quota)
	r.POST("/api/trips/chat", chatHandler.Chat)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}

// geocoderOrNil avoids storing a typed-nil *geo.Provider in the handler's
// interface field.
func geocoderOrNil(p *geo.Provider) handlers.Geocoder {
	if p == nil {
		return nil
	}
	return p
}
