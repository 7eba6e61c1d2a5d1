// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"yatra/internal/ai"
	"yatra/internal/config"
	"yatra/internal/geo"
	httptransport "yatra/internal/http"
	"yatra/internal/infra"
	"yatra/internal/modules/aiquota"
	"yatra/internal/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aiProvider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer aiProvider.Close()

	// Routing is optional: without a Geoapify key the planner degrades to
	// model estimates.
	var geoProvider *geo.Provider
	if cfg.Geo.GeoapifyKey != "" {
		var cache *geo.Cache
		if cfg.Redis.Addr != "" {
			cache = geo.NewCache(infra.NewRedis(cfg.Redis.Addr))
		}
		geoProvider, err = geo.NewProvider(cfg.Geo.GeoapifyKey, cache)
		if err != nil {
			log.Fatalf("geoapify init: %v", err)
		}
	} else {
		log.Printf("GEOAPIFY_API_KEY not set; routing degrades to model estimates")
	}

	// The quota guard is optional: without a DSN every call is allowed.
	var quotaSvc *aiquota.Service
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		quotaSvc = aiquota.NewService(aiquota.NewStore(dbPool))
	}

	sessions := trip.NewSessions()
	planner := trip.NewPlanner(aiProvider, routeProviderOrNil(geoProvider))
	responder := trip.NewResponder(aiProvider)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:   planner,
		Responder: responder,
		Sessions:  sessions,
		Quota:     quotaSvc,
		Geocoder:  geoProvider,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// routeProviderOrNil avoids storing a typed-nil *geo.Provider in the
// planner's interface field.
func routeProviderOrNil(p *geo.Provider) trip.RouteProvider {
	if p == nil {
		return nil
	}
	return p
}
