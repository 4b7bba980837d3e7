package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/dpup/prefab"

	api "github.com/dpup/strem/server/api/v1"
	"github.com/dpup/strem/server/internal/cache"
	"github.com/dpup/strem/server/internal/config"
	"github.com/dpup/strem/server/internal/lib/crossing"
	"github.com/dpup/strem/server/internal/lib/routing"
	"github.com/dpup/strem/server/internal/services"
)

func main() {
	ctx := context.Background()

	// Load configuration using Prefab's config system
	appConfig := loadConfig()

	counter := crossing.NewCounter()
	matcher := routing.NewRouteMatcher(counter, appConfig.Intersections.Workers)

	// Result cache is optional; a zero TTL turns it off
	var resultCache *cache.Cache
	if appConfig.Intersections.CacheTTL > 0 {
		resultCache = cache.NewCache(cache.WithMaxEntries(appConfig.Intersections.CacheMaxEntries))
		resultCache.StartPeriodicCleanup(ctx, appConfig.Intersections.CacheCleanupInterval)
	}

	intersectionService := services.NewIntersectionService(counter, matcher, resultCache, &appConfig.Intersections)
	if err := intersectionService.LoadSurveyRoutes(ctx); err != nil {
		log.Fatalf("Failed to load survey routes: %v", err)
	}

	log.Printf("Intersection API server starting")
	log.Printf("Survey routes registered: %d", len(matcher.Routes()))
	log.Printf("Max points per polyline: %d, result cache TTL: %v",
		appConfig.Intersections.MaxPoints, appConfig.Intersections.CacheTTL)

	// Create Prefab server with GRPC reflection enabled
	// Server configuration (port, etc.) will be loaded from prefab.yaml/env vars
	server := prefab.New(
		prefab.WithGRPCReflection(),
		prefab.WithHTTPHandlerFunc("/", homepageHandler),
	)

	// Register gRPC services using Prefab's service registrar
	api.RegisterIntersectionServiceServer(server.ServiceRegistrar(), intersectionService)

	// Register gateway handlers using Prefab's gateway args
	if err := api.RegisterIntersectionServiceHandlerFromEndpoint(server.GatewayArgs()); err != nil {
		log.Fatalf("Failed to register Intersection service gateway: %v", err)
	}

	// Start the server (blocks until shutdown)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// loadConfig loads configuration using Prefab's config system
// Configuration is loaded from prefab.yaml and environment variables with PF__ prefix
func loadConfig() *config.Config {
	appConfig := config.DefaultConfig()

	if err := prefab.Config.Unmarshal("intersections", &appConfig.Intersections); err != nil {
		log.Fatalf("Failed to unmarshal intersections section: %v", err)
	}

	if err := appConfig.Intersections.Validate(); err != nil {
		log.Fatalf("Invalid intersections configuration: %v", err)
	}

	return appConfig
}

// homepageHandler serves a plain-text usage summary at the server root
func homepageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	usage := `strem intersection API

Counts segment-pair intersections between a track and a survey route.

Endpoints:
  POST /api/v1/crossings/count   {"track": [[x,y],...], "survey_route": [[x,y],...], "include_crossings": false}
  POST /api/v1/crossings/match   {"track": [[x,y],...]}
  GET  /api/v1/crossings/routes
  GET  /api/v1/crossings/routes/{id}
  DELETE /api/v1/crossings/routes/{id}

gRPC:
  strem.v1.IntersectionService/CountIntersections
  strem.v1.IntersectionService/MatchTrack
  strem.v1.IntersectionService/ListSurveyRoutes
  strem.v1.IntersectionService/GetSurveyRoute
  strem.v1.IntersectionService/RemoveSurveyRoute

Example:
  curl -X POST -d '{"track": [[0,0],[2,2]], "survey_route": [[0,2],[2,0]]}' /api/v1/crossings/count
`

	if _, err := fmt.Fprint(w, usage); err != nil {
		slog.Error("Failed to write homepage", "error", err)
	}
}
