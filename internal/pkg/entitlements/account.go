package entitlements

import (
	"fmt"
	"sync"
	"time"
)

// Account is the in-process subscription state for the garage running this
// instance. The current tier is the only mutable field; it changes through a
// single guarded assignment so concurrent change requests cannot race into
// an inconsistent intermediate state. All reads are snapshot-based.
type Account struct {
	catalog *Catalog
	usage   *UsageTracker

	mu          sync.RWMutex
	tier        TierID
	renewalDate time.Time
	active      bool
}

// NewAccount creates the account state for a known tier.
func NewAccount(catalog *Catalog, usage *UsageTracker, tier TierID, renewalDate time.Time) (*Account, error) {
	if catalog.Index(tier) < 0 {
		return nil, fmt.Errorf("account: unknown tier %q", tier)
	}
	return &Account{
		catalog:     catalog,
		usage:       usage,
		tier:        tier,
		renewalDate: renewalDate,
		active:      true,
	}, nil
}

// Catalog returns the tier catalog the account was built with.
func (a *Account) Catalog() *Catalog { return a.catalog }

// Usage returns the account's usage tracker.
func (a *Account) Usage() *UsageTracker { return a.usage }

// CurrentTier returns the account's current tier id.
func (a *Account) CurrentTier() TierID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tier
}

// SetRenewal updates the renewal date and active flag reported by Status.
func (a *Account) SetRenewal(renewalDate time.Time, active bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.renewalDate = renewalDate
	a.active = active
}

// ChangeTier validates a tier change against live usage and, if allowed,
// applies it. Validation and assignment happen under one write lock so two
// simultaneous requests serialize cleanly. The verdict is advisory for
// callers; durable commitment belongs to the billing backend.
func (a *Account) ChangeTier(target TierID) TransitionVerdict {
	a.mu.Lock()
	defer a.mu.Unlock()

	verdict := validateChange(a.catalog, a.usage, a.tier, target)
	if verdict.Allowed {
		a.tier = target
	}
	return verdict
}

// SubscriptionStatus is a derived, read-only composite of the account's
// current subscription state, recomputed on each call.
type SubscriptionStatus struct {
	CurrentTier      Tier          `json:"current_tier"`
	Usage            UsageSnapshot `json:"usage"`
	RenewalDate      time.Time     `json:"renewal_date"`
	IsActive         bool          `json:"is_active"`
	DaysUntilRenewal int           `json:"days_until_renewal"`
}

// Status returns the current subscription status.
func (a *Account) Status() SubscriptionStatus {
	a.mu.RLock()
	tier := a.tier
	renewal := a.renewalDate
	active := a.active
	a.mu.RUnlock()

	cur, _ := a.catalog.Tier(tier)
	days := int(time.Until(renewal).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return SubscriptionStatus{
		CurrentTier:      cur,
		Usage:            a.usage.Snapshot(),
		RenewalDate:      renewal,
		IsActive:         active,
		DaysUntilRenewal: days,
	}
}

// TierComparison lists all tiers alongside the current one, with an optional
// advisory recommendation.
type TierComparison struct {
	Tiers             []Tier `json:"tiers"`
	CurrentTierID     TierID `json:"current_tier_id"`
	RecommendedTierID TierID `json:"recommended_tier_id,omitempty"`
}

// Compare builds a tier comparison using the given recommendation policy.
// A nil policy yields no recommendation.
func (a *Account) Compare(policy RecommendPolicy) TierComparison {
	current := a.CurrentTier()
	cmp := TierComparison{
		Tiers:         a.catalog.Tiers(),
		CurrentTierID: current,
	}
	if policy != nil {
		cmp.RecommendedTierID = policy(a.catalog, current, a.usage.Snapshot())
	}
	return cmp
}
