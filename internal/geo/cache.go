// README: Redis-backed cache for geocode and route lookups.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	geocodeKeyPrefix = "geo:geocode:%s"
	routeKeyPrefix   = "geo:route:%s|%s|%s"
	// Geocodes and road distances are effectively static; a day keeps the
	// provider quota low without staleness concerns.
	cacheTTL = 24 * time.Hour
)

// Cache memoizes provider responses in Redis. A nil *Cache is valid and
// always misses, so callers never branch on its presence. Cache errors are
// logged and treated as misses; they must not fail the lookup.
type Cache struct {
	redis *redis.Client
}

func NewCache(redis *redis.Client) *Cache {
	return &Cache{redis: redis}
}

type cachedRoute struct {
	DistanceM float64 `json:"distance_m"`
	TimeS     float64 `json:"time_s"`
}

func (c *Cache) GetGeocode(ctx context.Context, place string) (Point, bool) {
	var p Point
	if !c.get(ctx, geocodeKey(place), &p) {
		return Point{}, false
	}
	return p, true
}

func (c *Cache) PutGeocode(ctx context.Context, place string, p Point) {
	c.put(ctx, geocodeKey(place), p)
}

func (c *Cache) GetRoute(ctx context.Context, srcKey, dstKey, mode string) (float64, float64, bool) {
	var r cachedRoute
	if !c.get(ctx, routeKey(srcKey, dstKey, mode), &r) {
		return 0, 0, false
	}
	return r.DistanceM, r.TimeS, true
}

func (c *Cache) PutRoute(ctx context.Context, srcKey, dstKey, mode string, distanceM, timeS float64) {
	c.put(ctx, routeKey(srcKey, dstKey, mode), cachedRoute{DistanceM: distanceM, TimeS: timeS})
}

func (c *Cache) get(ctx context.Context, key string, out any) bool {
	if c == nil || c.redis == nil {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("geo cache get %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Cache) put(ctx context.Context, key string, v any) {
	if c == nil || c.redis == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, b, cacheTTL).Err(); err != nil {
		log.Printf("geo cache set %s: %v", key, err)
	}
}

func geocodeKey(place string) string {
	return fmt.Sprintf(geocodeKeyPrefix, place)
}

func routeKey(srcKey, dstKey, mode string) string {
	return fmt.Sprintf(routeKeyPrefix, srcKey, dstKey, mode)
}
