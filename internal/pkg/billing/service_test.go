package billing

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehub/GarageHub/app/models"
	"github.com/garagehub/GarageHub/internal/pkg/cache"
	"github.com/garagehub/GarageHub/internal/pkg/entitlements"
	"github.com/garagehub/GarageHub/internal/pkg/metrics/counter"
)

// memoryStore is an in-memory SubscriptionStore for tests.
type memoryStore struct {
	sub       models.AccountSubscription
	saveCalls int
}

func newMemoryStore(tier string) *memoryStore {
	return &memoryStore{
		sub: models.AccountSubscription{
			ID:          1,
			CurrentTier: tier,
			RenewalDate: time.Now().AddDate(0, 1, 0),
			IsActive:    true,
		},
	}
}

func (m *memoryStore) Load(defaultTier string) (*models.AccountSubscription, error) {
	if m.sub.CurrentTier == "" {
		m.sub.CurrentTier = defaultTier
	}
	sub := m.sub
	return &sub, nil
}

func (m *memoryStore) SaveTier(tier string) error {
	m.sub.CurrentTier = tier
	m.saveCalls++
	return nil
}

func (m *memoryStore) SaveRenewal(renewalDate time.Time, active bool) error {
	m.sub.RenewalDate = renewalDate
	m.sub.IsActive = active
	return nil
}

func TestNewServiceSeedsUsageFromCounts(t *testing.T) {
	svc, err := NewService(newMemoryStore("starter"), ResourceCounts{Users: 3, Cars: 47, ServiceBays: 2})
	require.NoError(t, err)

	assert.Equal(t, entitlements.TierStarter, svc.Account().CurrentTier())
	assert.Equal(t, 3, svc.Usage().Count(entitlements.ResourceUsers))
	assert.Equal(t, 47, svc.Usage().Count(entitlements.ResourceCars))
	assert.Equal(t, 2, svc.Usage().Count(entitlements.ResourceServiceBays))
}

func TestNewServiceFallsBackToSoloOnUnknownTier(t *testing.T) {
	svc, err := NewService(newMemoryStore("enterprise"), ResourceCounts{})
	require.NoError(t, err)

	assert.Equal(t, entitlements.TierSolo, svc.Account().CurrentTier())
}

func TestNewServiceRollsLapsedRenewalForward(t *testing.T) {
	store := newMemoryStore("starter")
	store.sub.RenewalDate = time.Now().AddDate(0, -2, -3)

	svc, err := NewService(store, ResourceCounts{Users: 1})
	require.NoError(t, err)

	assert.True(t, store.sub.RenewalDate.After(time.Now()))

	status := svc.Status()
	assert.True(t, status.IsActive)
	assert.True(t, status.RenewalDate.After(time.Now()))
}

func TestValidateChangeDoesNotApply(t *testing.T) {
	store := newMemoryStore("solo")
	svc, err := NewService(store, ResourceCounts{Users: 1})
	require.NoError(t, err)

	verdict := svc.ValidateChange("starter")
	assert.True(t, verdict.Allowed)
	assert.True(t, verdict.IsUpgrade)

	assert.Equal(t, entitlements.TierSolo, svc.Account().CurrentTier())
	assert.Equal(t, 0, store.saveCalls)
}

func TestChangeTierBlockedByUsageIsNotPersisted(t *testing.T) {
	store := newMemoryStore("starter")
	svc, err := NewService(store, ResourceCounts{Users: 3, Cars: 47, ServiceBays: 2})
	require.NoError(t, err)

	verdict, err := svc.ChangeTier("solo")
	require.NoError(t, err)

	assert.False(t, verdict.Allowed)
	assert.Equal(t, []entitlements.ReasonCode{entitlements.LimitExceededReason(entitlements.ResourceUsers)}, verdict.Reasons)
	assert.Equal(t, "starter", store.sub.CurrentTier)
	assert.Equal(t, 0, store.saveCalls)
}

func TestChangeTierUpgradePersists(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	store := newMemoryStore("solo")
	svc, err := NewService(store, ResourceCounts{Users: 1, Cars: 10, ServiceBays: 1})
	require.NoError(t, err)

	verdict, err := svc.ChangeTier("professional")
	require.NoError(t, err)

	assert.True(t, verdict.Allowed)
	assert.True(t, verdict.IsUpgrade)
	assert.Equal(t, entitlements.TierProfessional, svc.Account().CurrentTier())
	assert.Equal(t, "professional", store.sub.CurrentTier)
	assert.Equal(t, 1, store.saveCalls)

	counts, err := counter.TierChangeCounts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["solo:professional"])
}

func TestChangeTierUnknownTarget(t *testing.T) {
	svc, err := NewService(newMemoryStore("solo"), ResourceCounts{})
	require.NoError(t, err)

	verdict, err := svc.ChangeTier("enterprise")
	require.NoError(t, err)

	assert.False(t, verdict.Allowed)
	assert.Equal(t, []entitlements.ReasonCode{entitlements.ReasonUnknownTier}, verdict.Reasons)
}
