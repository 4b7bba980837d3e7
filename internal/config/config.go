package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dpup/strem/server/internal/lib/geo"
	"github.com/dpup/strem/server/internal/lib/routing"
)

// Config represents the complete server configuration.
// Server settings (port, TLS) are owned by prefab and read from prefab.yaml.
type Config struct {
	Intersections IntersectionsConfig `yaml:"intersections" koanf:"intersections"`
}

// IntersectionsConfig holds intersection counting settings
type IntersectionsConfig struct {
	MaxPoints            int           `yaml:"max_points" koanf:"max_points"`
	Workers              int           `yaml:"workers" koanf:"workers"`
	CacheTTL             time.Duration `yaml:"cache_ttl" koanf:"cache_ttl"`
	CacheCleanupInterval time.Duration `yaml:"cache_cleanup_interval" koanf:"cache_cleanup_interval"`
	CacheMaxEntries      int           `yaml:"cache_max_entries" koanf:"cache_max_entries"`
	SurveyRoutes         []SurveyRoute `yaml:"survey_routes" koanf:"survey_routes"`
}

// SurveyRoute is a survey route preloaded from configuration
type SurveyRoute struct {
	ID     string      `yaml:"id" koanf:"id"`
	Name   string      `yaml:"name" koanf:"name"`
	Points [][]float64 `yaml:"points" koanf:"points"`
}

// ToRoute converts the configured coordinates into a routing.Route
func (s SurveyRoute) ToRoute() (routing.Route, error) {
	line, err := geo.PolylineFromRows(s.Points)
	if err != nil {
		return routing.Route{}, fmt.Errorf("survey route %q: %w", s.ID, err)
	}
	return routing.Route{ID: s.ID, Name: s.Name, Polyline: line}, nil
}

// Validate checks limits and survey route definitions
func (c *IntersectionsConfig) Validate() error {
	if c.MaxPoints < 0 {
		return errors.New("max_points must not be negative")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if c.CacheTTL < 0 {
		return errors.New("cache_ttl must not be negative")
	}
	if c.CacheTTL > 0 && c.CacheCleanupInterval <= 0 {
		return errors.New("cache_cleanup_interval must be positive when caching is enabled")
	}
	if c.CacheMaxEntries < 0 {
		return errors.New("cache_max_entries must not be negative")
	}

	seen := make(map[string]bool, len(c.SurveyRoutes))
	for i, route := range c.SurveyRoutes {
		if route.ID == "" {
			return fmt.Errorf("survey_routes[%d]: id is required", i)
		}
		if seen[route.ID] {
			return fmt.Errorf("survey_routes[%d]: duplicate id %q", i, route.ID)
		}
		seen[route.ID] = true

		if _, err := route.ToRoute(); err != nil {
			return err
		}
		if c.MaxPoints > 0 && len(route.Points) > c.MaxPoints {
			return fmt.Errorf("survey route %q has %d points, limit is %d", route.ID, len(route.Points), c.MaxPoints)
		}
	}

	return nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Intersections: IntersectionsConfig{
			MaxPoints:            100000,
			Workers:              0, // GOMAXPROCS
			CacheTTL:             10 * time.Minute,
			CacheCleanupInterval: 5 * time.Minute,
			CacheMaxEntries:      10000,
		},
	}
}
