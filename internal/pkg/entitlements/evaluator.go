package entitlements

// TierSource supplies the account's current tier id. The Account type
// implements it; tests may use a fixed value.
type TierSource interface {
	CurrentTier() TierID
}

// StaticTier is a TierSource with a fixed value.
type StaticTier TierID

// CurrentTier returns the fixed tier id.
func (s StaticTier) CurrentTier() TierID { return TierID(s) }

// Evaluator answers entitlement questions for the current tier.
// Every method is a pure read over the catalog, the usage tracker and the
// tier source; nothing is cached between calls and nothing is mutated, so
// callers may re-evaluate as often as they like.
type Evaluator struct {
	catalog *Catalog
	usage   *UsageTracker
	source  TierSource
}

// NewEvaluator creates an evaluator over the given catalog, usage and tier source.
func NewEvaluator(catalog *Catalog, usage *UsageTracker, source TierSource) *Evaluator {
	return &Evaluator{catalog: catalog, usage: usage, source: source}
}

func (e *Evaluator) current() Tier {
	t, _ := e.catalog.Tier(e.source.CurrentTier())
	return t
}

// IsFeatureEnabled reports whether the current tier enables a feature.
// Unknown keys fail closed to false.
func (e *Evaluator) IsFeatureEnabled(key string) bool {
	f, ok := e.current().feature(key)
	return ok && f.Enabled
}

// RequiredTier returns the lowest tier that enables a feature. The second
// return value is false when no tier enables it, which is a catalog
// authoring gap rather than an error.
func (e *Evaluator) RequiredTier(key string) (TierID, bool) {
	for _, t := range e.catalog.tiers {
		if f, ok := t.feature(key); ok && f.Enabled {
			return t.ID, true
		}
	}
	return "", false
}

// UpgradeTierForFeature returns the RequiresUpgrade annotation recorded on
// the current tier's flag for a feature. The second return value is false
// when the feature is already enabled or carries no upgrade target.
func (e *Evaluator) UpgradeTierForFeature(key string) (TierID, bool) {
	f, ok := e.current().feature(key)
	if !ok || f.Enabled || f.RequiresUpgrade == "" {
		return "", false
	}
	return f.RequiresUpgrade, true
}

// UsagePercent returns how much of the current tier's limit for a resource
// is consumed, in percent. Unlimited resources report zero pressure, a zero
// limit reports 100, and the value is capped at 100 while retaining
// fractional precision.
func (e *Evaluator) UsagePercent(rt ResourceType) float64 {
	limit := e.current().Limits.Limit(rt)
	if limit == Unlimited {
		return 0
	}
	if limit == 0 {
		return 100
	}
	pct := float64(e.usage.Count(rt)) / float64(limit) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// IsUsageLimitExceeded reports whether usage has reached the current tier's
// limit for a resource. Unlimited resources never exceed.
func (e *Evaluator) IsUsageLimitExceeded(rt ResourceType) bool {
	limit := e.current().Limits.Limit(rt)
	if limit == Unlimited {
		return false
	}
	return e.usage.Count(rt) >= limit
}

// LockedFeatures returns all disabled flags on the current tier.
func (e *Evaluator) LockedFeatures() []FeatureFlag {
	cur := e.current()
	locked := make([]FeatureFlag, 0, len(cur.Features))
	for _, f := range cur.Features {
		if !f.Enabled {
			locked = append(locked, f)
		}
	}
	return locked
}
