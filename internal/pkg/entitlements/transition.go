package entitlements

// ReasonCode is a stable, machine-readable denial reason. Codes map 1:1 to
// localizable message keys at the UI boundary; the engine never produces prose.
type ReasonCode string

const (
	ReasonSameTier      ReasonCode = "same_tier"
	ReasonUnknownTier   ReasonCode = "unknown_tier"
	ReasonFeaturesInUse ReasonCode = "features_in_use"
)

// LimitExceededReason returns the denial reason for a resource whose usage
// exceeds the target tier's limit, e.g. "users_exceeds_limit".
func LimitExceededReason(rt ResourceType) ReasonCode {
	return ReasonCode(string(rt) + "_exceeds_limit")
}

// DowngradeVerdict is the outcome of a downgrade check.
type DowngradeVerdict struct {
	CanDowngrade bool         `json:"can_downgrade"`
	Reasons      []ReasonCode `json:"reasons"`
}

// TransitionVerdict is the outcome of a general tier-change check.
// It is recomputed from live usage on every call and never persisted.
type TransitionVerdict struct {
	Allowed   bool         `json:"allowed"`
	IsUpgrade bool         `json:"is_upgrade"`
	Reasons   []ReasonCode `json:"reasons"`
}

// Validator decides whether a change to a target tier is permitted.
// Upgrades and downgrades are evaluated differently: upgrades are never
// blocked by the engine, downgrades must fit the target's limits and
// feature set.
type Validator struct {
	catalog *Catalog
	usage   *UsageTracker
	source  TierSource
}

// NewValidator creates a validator over the given catalog, usage and tier source.
func NewValidator(catalog *Catalog, usage *UsageTracker, source TierSource) *Validator {
	return &Validator{catalog: catalog, usage: usage, source: source}
}

// CanUpgradeTo reports whether the target sits above the current tier in the
// catalog order. Usage and features play no role; payment approval is the
// backend's concern.
func (v *Validator) CanUpgradeTo(target TierID) bool {
	ti := v.catalog.Index(target)
	return ti >= 0 && ti > v.catalog.Index(v.source.CurrentTier())
}

// CanDowngradeTo checks whether current usage and enabled features fit the
// target tier. It is meaningful only for targets below the current tier;
// CanChangeTo is the general entry point.
func (v *Validator) CanDowngradeTo(target TierID) DowngradeVerdict {
	reasons := downgradeReasons(v.catalog, v.usage, v.source.CurrentTier(), target)
	return DowngradeVerdict{CanDowngrade: len(reasons) == 0, Reasons: reasons}
}

// CanChangeTo unifies the upgrade and downgrade paths into a single verdict.
// Same-tier and unknown targets are denied with a structured reason, never
// an error.
func (v *Validator) CanChangeTo(target TierID) TransitionVerdict {
	return validateChange(v.catalog, v.usage, v.source.CurrentTier(), target)
}

// validateChange is the shared transition check. Account.ChangeTier calls it
// with an explicitly snapshotted current tier while holding the write lock.
func validateChange(catalog *Catalog, usage *UsageTracker, current, target TierID) TransitionVerdict {
	ci := catalog.Index(current)
	ti := catalog.Index(target)
	switch {
	case ti < 0:
		return TransitionVerdict{Reasons: []ReasonCode{ReasonUnknownTier}}
	case ti == ci:
		return TransitionVerdict{Reasons: []ReasonCode{ReasonSameTier}}
	case ti > ci:
		return TransitionVerdict{Allowed: true, IsUpgrade: true}
	}

	reasons := downgradeReasons(catalog, usage, current, target)
	return TransitionVerdict{Allowed: len(reasons) == 0, Reasons: reasons}
}

// downgradeReasons collects every obstacle to moving down to the target tier:
// one reason per resource whose usage exceeds the target's finite limit, and
// a single features_in_use when the target drops any currently enabled feature.
func downgradeReasons(catalog *Catalog, usage *UsageTracker, current, target TierID) []ReasonCode {
	cur, okCur := catalog.Tier(current)
	tgt, okTgt := catalog.Tier(target)
	if !okCur || !okTgt {
		return []ReasonCode{ReasonUnknownTier}
	}

	var reasons []ReasonCode
	for _, rt := range ResourceTypes {
		limit := tgt.Limits.Limit(rt)
		if limit == Unlimited {
			continue
		}
		if usage.Count(rt) > limit {
			reasons = append(reasons, LimitExceededReason(rt))
		}
	}

	targetKeys := tgt.enabledKeys()
	for key := range cur.enabledKeys() {
		if _, ok := targetKeys[key]; !ok {
			reasons = append(reasons, ReasonFeaturesInUse)
			break
		}
	}
	return reasons
}
