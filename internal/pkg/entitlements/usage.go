package entitlements

import "sync/atomic"

// UsageSnapshot is a point-in-time copy of resource consumption counts.
type UsageSnapshot map[ResourceType]int

// Count returns the usage for a resource type, defaulting to zero.
func (s UsageSnapshot) Count(rt ResourceType) int {
	return s[rt]
}

// UsageTracker holds the current consumption count per resource type.
// Counts are mutated only through RecordCreated/RecordDeleted/Seed by the
// collaborator that creates or destroys resources; readers always see a
// consistent per-counter value.
type UsageTracker struct {
	counts map[ResourceType]*atomic.Int64
}

// NewUsageTracker creates a tracker with zero counts for all resource types.
func NewUsageTracker() *UsageTracker {
	counts := make(map[ResourceType]*atomic.Int64, len(ResourceTypes))
	for _, rt := range ResourceTypes {
		counts[rt] = &atomic.Int64{}
	}
	return &UsageTracker{counts: counts}
}

// Seed sets the absolute count for a resource type, typically from the
// persistence backend at startup. Negative values clamp to zero.
func (t *UsageTracker) Seed(rt ResourceType, n int) {
	c, ok := t.counts[rt]
	if !ok {
		return
	}
	if n < 0 {
		n = 0
	}
	c.Store(int64(n))
}

// Count returns the current count for a resource type; unknown types are zero.
func (t *UsageTracker) Count(rt ResourceType) int {
	c, ok := t.counts[rt]
	if !ok {
		return 0
	}
	return int(c.Load())
}

// Snapshot returns a copy of all current counts.
func (t *UsageTracker) Snapshot() UsageSnapshot {
	snap := make(UsageSnapshot, len(t.counts))
	for rt, c := range t.counts {
		snap[rt] = int(c.Load())
	}
	return snap
}

// RecordCreated increments the count for a resource type.
func (t *UsageTracker) RecordCreated(rt ResourceType) {
	if c, ok := t.counts[rt]; ok {
		c.Add(1)
	}
}

// RecordDeleted decrements the count for a resource type. A zero count stays
// at zero; this is soft accounting for limit checks, not a ledger.
func (t *UsageTracker) RecordDeleted(rt ResourceType) {
	c, ok := t.counts[rt]
	if !ok {
		return
	}
	for {
		cur := c.Load()
		if cur <= 0 {
			return
		}
		if c.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}
