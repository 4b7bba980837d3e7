package cache

import (
	"fmt"
	"time"

	"github.com/dpup/strem/server/internal/lib/crossing"
)

// CountResult is the cached outcome of one intersection count
type CountResult struct {
	Count     int                 `json:"count"`
	Crossings []crossing.Crossing `json:"crossings,omitempty"`
}

// SetCount caches a count result under a crossing.Key content hash
func (c *Cache) SetCount(contentKey string, result CountResult, ttl time.Duration) error {
	key := fmt.Sprintf("count:%s", contentKey)
	return c.Set(key, result, ttl, "count")
}

// GetCount retrieves a cached count result by content hash
func (c *Cache) GetCount(contentKey string) (CountResult, bool, error) {
	key := fmt.Sprintf("count:%s", contentKey)

	var result CountResult
	found, err := c.Get(key, &result)
	if err != nil {
		// Drop entries that no longer decode so the next request recomputes
		c.Delete(key)
		return CountResult{}, false, err
	}

	return result, found, nil
}
