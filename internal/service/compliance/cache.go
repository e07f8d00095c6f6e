package compliance

import (
	"sync"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
)

// resultCache memoizes evaluation output keyed by a content hash of the
// input occurrence set and the active thresholds. Keying by content rather
// than by any lifecycle means upstream CRUD needs no explicit invalidation
// hook: changed input hashes to a different key, unchanged input hits.
type resultCache struct {
	mu      sync.RWMutex
	entries map[uint64][]compliance.Violation
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[uint64][]compliance.Violation)}
}

type cacheKey struct {
	Occurrences []compliance.Occurrence
	Thresholds  config.ComplianceConfig
}

// keyFor hashes the evaluation input. A zero key and false are returned
// when hashing fails; callers then skip the cache and evaluate directly.
func (c *resultCache) keyFor(occs []compliance.Occurrence, cfg config.ComplianceConfig) (uint64, bool) {
	key, err := hashstructure.Hash(cacheKey{Occurrences: occs, Thresholds: cfg}, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, false
	}
	return key, true
}

func (c *resultCache) get(key uint64) ([]compliance.Violation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *resultCache) put(key uint64, violations []compliance.Violation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Unbounded growth is prevented by dropping the map wholesale once it
	// gets large; stale content keys are never hit again anyway.
	if len(c.entries) > 4096 {
		c.entries = make(map[uint64][]compliance.Violation)
	}
	c.entries[key] = violations
}
