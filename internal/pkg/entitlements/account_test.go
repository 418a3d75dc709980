package entitlements

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(t *testing.T, tier TierID, usage map[ResourceType]int) *Account {
	t.Helper()
	tr := NewUsageTracker()
	for rt, n := range usage {
		tr.Seed(rt, n)
	}
	a, err := NewAccount(DefaultCatalog(), tr, tier, time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	return a
}

func TestNewAccountRejectsUnknownTier(t *testing.T) {
	_, err := NewAccount(DefaultCatalog(), NewUsageTracker(), "platinum", time.Now())
	assert.Error(t, err)
}

func TestChangeTierUpgradeApplies(t *testing.T) {
	a := newTestAccount(t, TierStarter, nil)

	verdict := a.ChangeTier(TierProfessional)
	assert.True(t, verdict.Allowed)
	assert.True(t, verdict.IsUpgrade)
	assert.Equal(t, TierProfessional, a.CurrentTier())
}

func TestChangeTierDeniedLeavesTierUntouched(t *testing.T) {
	a := newTestAccount(t, TierStarter, map[ResourceType]int{ResourceUsers: 3})

	verdict := a.ChangeTier(TierSolo)
	assert.False(t, verdict.Allowed)
	assert.Equal(t, []ReasonCode{LimitExceededReason(ResourceUsers)}, verdict.Reasons)
	assert.Equal(t, TierStarter, a.CurrentTier())
}

func TestChangeTierSameTierDenied(t *testing.T) {
	a := newTestAccount(t, TierStarter, nil)

	verdict := a.ChangeTier(TierStarter)
	assert.False(t, verdict.Allowed)
	assert.Equal(t, []ReasonCode{ReasonSameTier}, verdict.Reasons)
}

func TestChangeTierConcurrentRequestsSerialize(t *testing.T) {
	a := newTestAccount(t, TierSolo, nil)

	var wg sync.WaitGroup
	allowed := make([]bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			allowed[i] = a.ChangeTier(TierStarter).Allowed
		}(i)
	}
	wg.Wait()

	// exactly one request wins; the rest see same_tier
	wins := 0
	for _, ok := range allowed {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, TierStarter, a.CurrentTier())
}

func TestStatus(t *testing.T) {
	renewal := time.Now().Add(10*24*time.Hour + time.Hour)
	tr := NewUsageTracker()
	tr.Seed(ResourceCars, 47)
	a, err := NewAccount(DefaultCatalog(), tr, TierStarter, renewal)
	require.NoError(t, err)

	st := a.Status()
	assert.Equal(t, TierStarter, st.CurrentTier.ID)
	assert.Equal(t, 47, st.Usage.Count(ResourceCars))
	assert.True(t, st.IsActive)
	assert.Equal(t, 10, st.DaysUntilRenewal)
}

func TestStatusPastRenewalClampsDays(t *testing.T) {
	a := newTestAccount(t, TierSolo, nil)
	a.SetRenewal(time.Now().Add(-48*time.Hour), false)

	st := a.Status()
	assert.Equal(t, 0, st.DaysUntilRenewal)
	assert.False(t, st.IsActive)
}

func TestCompare(t *testing.T) {
	a := newTestAccount(t, TierStarter, map[ResourceType]int{ResourceUsers: 7})

	cmp := a.Compare(DefaultRecommendPolicy)
	assert.Len(t, cmp.Tiers, 3)
	assert.Equal(t, TierStarter, cmp.CurrentTierID)
	assert.Equal(t, TierProfessional, cmp.RecommendedTierID)

	noPolicy := a.Compare(nil)
	assert.Equal(t, TierID(""), noPolicy.RecommendedTierID)
}
