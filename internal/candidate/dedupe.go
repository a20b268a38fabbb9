package candidate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/maypok86/otter"
)

// DefaultDedupeCapacity is the number of distinct normalized forms a Deduper
// remembers when no capacity is configured.
const DefaultDedupeCapacity = 10_000

// Deduper suppresses candidates whose normalized form was already seen in
// the session, e.g. the same test produced by two strategies or two
// temperatures. Memory is bounded: once capacity is exceeded the least
// valuable entries are evicted and may be admitted again.
type Deduper struct {
	mu   sync.Mutex
	seen otter.Cache[string, struct{}]
}

// NewDeduper creates a Deduper remembering up to capacity forms. A
// non-positive capacity uses DefaultDedupeCapacity.
func NewDeduper(capacity int) (*Deduper, error) {
	if capacity <= 0 {
		capacity = DefaultDedupeCapacity
	}

	cache, err := otter.MustBuilder[string, struct{}](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create dedupe cache: %w", err)
	}

	return &Deduper{seen: cache}, nil
}

// Admit reports whether c is the first candidate with its normalized form.
func (d *Deduper) Admit(c Candidate) bool {
	key := digest(c.Normalized)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen.Has(key) {
		return false
	}
	d.seen.Set(key, struct{}{})
	return true
}

// Filter returns the candidates Admit accepts, in their original order.
func (d *Deduper) Filter(candidates []Candidate) []Candidate {
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if d.Admit(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

// Close releases the underlying cache.
func (d *Deduper) Close() {
	d.seen.Close()
}

func digest(form NormalizedForm) string {
	sum := sha256.Sum256([]byte(form))
	return hex.EncodeToString(sum[:])
}
