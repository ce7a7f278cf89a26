package advanced

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/osuushi/clearance/dbg"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"
)

// Radii are rounded to this many decimal places (micrometres) for cache keys.
const radiusKeyPlaces = 6

// referenceCache memoizes reference sample sets by curve radius. Cached slices
// are shared between callers and must never be modified.
type referenceCache struct {
	mu      sync.Mutex
	entries *lru.Cache
	build   func(radiusM float64) []Point
}

func newReferenceCache(size int, build func(radiusM float64) []Point) *referenceCache {
	return &referenceCache{
		entries: lru.New(size),
		build:   build,
	}
}

// The radius a reference set is built and cached for.
func referenceRadius(radiusM float64) float64 {
	return scalar.Round(radiusM, radiusKeyPlaces)
}

func (c *referenceCache) get(radiusM float64, log logrus.FieldLogger) []Point {
	key := referenceRadius(radiusM)

	c.mu.Lock()
	defer c.mu.Unlock()

	fields := logrus.Fields{"radius_m": key, "set": dbg.Name(key)}
	if cached, ok := c.entries.Get(key); ok {
		log.WithFields(fields).Debug("reference set cache hit")
		return cached.([]Point)
	}

	samples := c.build(key)
	c.entries.OnEvicted = func(evicted lru.Key, _ interface{}) {
		log.WithField("set", dbg.Name(evicted)).Debug("evicted reference set")
	}
	c.entries.Add(key, samples)
	fields["samples"] = len(samples)
	log.WithFields(fields).Debug("built reference set")
	return samples
}

func (c *referenceCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}
