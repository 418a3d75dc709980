package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestEvaluator(tier TierID, usage map[ResourceType]int) *Evaluator {
	tr := NewUsageTracker()
	for rt, n := range usage {
		tr.Seed(rt, n)
	}
	return NewEvaluator(DefaultCatalog(), tr, StaticTier(tier))
}

func TestIsFeatureEnabled(t *testing.T) {
	tests := []struct {
		tier TierID
		key  string
		want bool
	}{
		{TierSolo, FeatureAppointments, true},
		{TierSolo, FeatureInvoicing, true},
		{TierSolo, FeatureSMSReminders, false},
		{TierStarter, FeatureSMSReminders, false},
		{TierStarter, FeatureAPIAccess, false},
		{TierProfessional, FeatureSMSReminders, true},
		{TierProfessional, FeatureAPIAccess, true},
		{TierProfessional, FeatureCustomerPortal, false},
		{TierSolo, "no_such_feature", false},
	}

	for _, tt := range tests {
		e := newTestEvaluator(tt.tier, nil)
		if got := e.IsFeatureEnabled(tt.key); got != tt.want {
			t.Fatalf("IsFeatureEnabled(%q) on %s = %v, want %v", tt.key, tt.tier, got, tt.want)
		}
	}
}

func TestRequiredTier(t *testing.T) {
	e := newTestEvaluator(TierSolo, nil)

	tier, ok := e.RequiredTier(FeatureSMSReminders)
	assert.True(t, ok)
	assert.Equal(t, TierProfessional, tier)

	tier, ok = e.RequiredTier(FeatureAppointments)
	assert.True(t, ok)
	assert.Equal(t, TierSolo, tier)

	// no tier enables the customer portal yet
	_, ok = e.RequiredTier(FeatureCustomerPortal)
	assert.False(t, ok)

	_, ok = e.RequiredTier("no_such_feature")
	assert.False(t, ok)
}

func TestUpgradeTierForFeature(t *testing.T) {
	e := newTestEvaluator(TierSolo, nil)

	tier, ok := e.UpgradeTierForFeature(FeatureInventory)
	assert.True(t, ok)
	assert.Equal(t, TierProfessional, tier)

	// already enabled
	_, ok = e.UpgradeTierForFeature(FeatureInvoicing)
	assert.False(t, ok)

	// disabled but unannotated
	_, ok = e.UpgradeTierForFeature(FeatureCustomerPortal)
	assert.False(t, ok)
}

func TestUsagePercent(t *testing.T) {
	// starter limits: users 5, cars 200, service_bays 5
	e := newTestEvaluator(TierStarter, map[ResourceType]int{
		ResourceUsers: 3,
		ResourceCars:  47,
	})

	assert.InDelta(t, 60.0, e.UsagePercent(ResourceUsers), 1e-9)
	assert.InDelta(t, 23.5, e.UsagePercent(ResourceCars), 1e-9)
	assert.InDelta(t, 0.0, e.UsagePercent(ResourceServiceBays), 1e-9)
}

func TestUsagePercentUnlimitedIsZero(t *testing.T) {
	e := newTestEvaluator(TierProfessional, map[ResourceType]int{
		ResourceCars: 100000,
	})
	assert.Equal(t, 0.0, e.UsagePercent(ResourceCars))
}

func TestUsagePercentCapsAtHundred(t *testing.T) {
	e := newTestEvaluator(TierSolo, map[ResourceType]int{
		ResourceCars: 120, // solo limit is 50
	})
	assert.Equal(t, 100.0, e.UsagePercent(ResourceCars))
}

func TestUsagePercentZeroLimit(t *testing.T) {
	catalog, err := NewCatalog([]Tier{
		{ID: TierSolo, Limits: ResourceLimits{ResourceServiceBays: 0}},
	})
	assert.NoError(t, err)
	e := NewEvaluator(catalog, NewUsageTracker(), StaticTier(TierSolo))
	assert.Equal(t, 100.0, e.UsagePercent(ResourceServiceBays))
}

func TestIsUsageLimitExceeded(t *testing.T) {
	e := newTestEvaluator(TierSolo, map[ResourceType]int{
		ResourceUsers: 1, // at the solo limit
		ResourceCars:  49,
	})
	assert.True(t, e.IsUsageLimitExceeded(ResourceUsers))
	assert.False(t, e.IsUsageLimitExceeded(ResourceCars))

	pro := newTestEvaluator(TierProfessional, map[ResourceType]int{ResourceCars: 100000})
	assert.False(t, pro.IsUsageLimitExceeded(ResourceCars))
}

func TestLockedFeatures(t *testing.T) {
	e := newTestEvaluator(TierSolo, nil)

	locked := e.LockedFeatures()
	keys := make([]string, 0, len(locked))
	for _, f := range locked {
		assert.False(t, f.Enabled)
		keys = append(keys, f.Key)
	}
	assert.ElementsMatch(t, []string{
		FeatureSMSReminders,
		FeatureReports,
		FeatureMultiBay,
		FeatureInventory,
		FeatureAPIAccess,
		FeatureCustomerPortal,
	}, keys)

	pro := newTestEvaluator(TierProfessional, nil)
	lockedPro := pro.LockedFeatures()
	assert.Len(t, lockedPro, 1)
	assert.Equal(t, FeatureCustomerPortal, lockedPro[0].Key)
}

func TestEvaluatorIsReferentiallyTransparent(t *testing.T) {
	e := newTestEvaluator(TierStarter, map[ResourceType]int{ResourceCars: 47})

	for i := 0; i < 3; i++ {
		assert.True(t, e.IsFeatureEnabled(FeatureInvoicing))
		assert.False(t, e.IsFeatureEnabled(FeatureSMSReminders))
		assert.InDelta(t, 23.5, e.UsagePercent(ResourceCars), 1e-9)
	}
}
