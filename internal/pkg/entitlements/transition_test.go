package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestValidator(tier TierID, usage map[ResourceType]int) *Validator {
	tr := NewUsageTracker()
	for rt, n := range usage {
		tr.Seed(rt, n)
	}
	return NewValidator(DefaultCatalog(), tr, StaticTier(tier))
}

func TestCanUpgradeTo(t *testing.T) {
	tests := []struct {
		current TierID
		target  TierID
		want    bool
	}{
		{TierStarter, TierProfessional, true},
		{TierStarter, TierSolo, false},
		{TierStarter, TierStarter, false},
		{TierSolo, TierStarter, true},
		{TierSolo, TierProfessional, true},
		{TierProfessional, TierSolo, false},
		{TierStarter, "platinum", false},
	}

	for _, tt := range tests {
		// heavy usage must never block an upgrade
		v := newTestValidator(tt.current, map[ResourceType]int{
			ResourceUsers: 100,
			ResourceCars:  100000,
		})
		if got := v.CanUpgradeTo(tt.target); got != tt.want {
			t.Fatalf("CanUpgradeTo(%s) from %s = %v, want %v", tt.target, tt.current, got, tt.want)
		}
	}
}

func TestCanDowngradeToBlockedByLimit(t *testing.T) {
	// starter usage {users:3, cars:47, service_bays:2} against solo limits
	// {users:1, cars:50, service_bays:2}: only users exceeds.
	v := newTestValidator(TierStarter, map[ResourceType]int{
		ResourceUsers:       3,
		ResourceCars:        47,
		ResourceServiceBays: 2,
	})

	verdict := v.CanDowngradeTo(TierSolo)
	assert.False(t, verdict.CanDowngrade)
	assert.Equal(t, []ReasonCode{LimitExceededReason(ResourceUsers)}, verdict.Reasons)
}

func TestCanDowngradeToAllowed(t *testing.T) {
	v := newTestValidator(TierStarter, map[ResourceType]int{
		ResourceUsers:       1,
		ResourceCars:        40,
		ResourceServiceBays: 2,
	})

	verdict := v.CanDowngradeTo(TierSolo)
	assert.True(t, verdict.CanDowngrade)
	assert.Empty(t, verdict.Reasons)
}

func TestCanDowngradeToFeaturesInUse(t *testing.T) {
	catalog, err := NewCatalog([]Tier{
		{ID: TierSolo, Features: []FeatureFlag{{Key: FeatureReports}}},
		{ID: TierStarter, Features: []FeatureFlag{{Key: FeatureReports, Enabled: true}}},
	})
	assert.NoError(t, err)

	v := NewValidator(catalog, NewUsageTracker(), StaticTier(TierStarter))
	verdict := v.CanDowngradeTo(TierSolo)
	assert.False(t, verdict.CanDowngrade)
	assert.Equal(t, []ReasonCode{ReasonFeaturesInUse}, verdict.Reasons)
}

func TestCanDowngradeCollectsMultipleReasons(t *testing.T) {
	v := newTestValidator(TierProfessional, map[ResourceType]int{
		ResourceUsers:       8,
		ResourceCars:        500,
		ResourceServiceBays: 6,
	})

	verdict := v.CanDowngradeTo(TierStarter)
	assert.False(t, verdict.CanDowngrade)
	assert.Equal(t, []ReasonCode{
		LimitExceededReason(ResourceUsers),
		LimitExceededReason(ResourceCars),
		LimitExceededReason(ResourceServiceBays),
		ReasonFeaturesInUse,
	}, verdict.Reasons)
}

func TestCanChangeToSameTier(t *testing.T) {
	v := newTestValidator(TierStarter, nil)

	verdict := v.CanChangeTo(TierStarter)
	assert.False(t, verdict.Allowed)
	assert.False(t, verdict.IsUpgrade)
	assert.Equal(t, []ReasonCode{ReasonSameTier}, verdict.Reasons)
}

func TestCanChangeToUnknownTier(t *testing.T) {
	v := newTestValidator(TierStarter, nil)

	verdict := v.CanChangeTo("platinum")
	assert.False(t, verdict.Allowed)
	assert.Equal(t, []ReasonCode{ReasonUnknownTier}, verdict.Reasons)
}

func TestCanChangeToUpgrade(t *testing.T) {
	v := newTestValidator(TierStarter, map[ResourceType]int{ResourceCars: 100000})

	verdict := v.CanChangeTo(TierProfessional)
	assert.True(t, verdict.Allowed)
	assert.True(t, verdict.IsUpgrade)
	assert.Empty(t, verdict.Reasons)
}

func TestCanChangeToDowngrade(t *testing.T) {
	v := newTestValidator(TierStarter, map[ResourceType]int{
		ResourceUsers: 3,
	})

	verdict := v.CanChangeTo(TierSolo)
	assert.False(t, verdict.Allowed)
	assert.False(t, verdict.IsUpgrade)
	assert.Equal(t, []ReasonCode{LimitExceededReason(ResourceUsers)}, verdict.Reasons)
}

func TestBlockedEdgeReopensWhenUsageDrops(t *testing.T) {
	tr := NewUsageTracker()
	tr.Seed(ResourceUsers, 2)
	v := NewValidator(DefaultCatalog(), tr, StaticTier(TierStarter))

	assert.False(t, v.CanChangeTo(TierSolo).Allowed)

	// freeing capacity makes the edge traversable without invalidation
	tr.RecordDeleted(ResourceUsers)
	assert.True(t, v.CanChangeTo(TierSolo).Allowed)
}

func TestLimitExceededReason(t *testing.T) {
	assert.Equal(t, ReasonCode("users_exceeds_limit"), LimitExceededReason(ResourceUsers))
	assert.Equal(t, ReasonCode("service_bays_exceeds_limit"), LimitExceededReason(ResourceServiceBays))
}
