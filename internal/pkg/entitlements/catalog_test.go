package entitlements

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	_, err := NewCatalog([]Tier{
		{ID: TierSolo, Name: "Solo"},
		{ID: TierSolo, Name: "Solo again"},
	})
	if err == nil {
		t.Fatal("expected duplicate tier id to be rejected")
	}
}

func TestNewCatalogRejectsEmptyID(t *testing.T) {
	_, err := NewCatalog([]Tier{{ID: "  ", Name: "Nameless"}})
	if err == nil {
		t.Fatal("expected empty tier id to be rejected")
	}
}

func TestNewCatalogRejectsEmptyCatalog(t *testing.T) {
	_, err := NewCatalog(nil)
	if err == nil {
		t.Fatal("expected empty catalog to be rejected")
	}
}

func TestNewCatalogRejectsNegativeLimit(t *testing.T) {
	_, err := NewCatalog([]Tier{
		{ID: TierSolo, Limits: ResourceLimits{ResourceCars: -7}},
	})
	if err == nil {
		t.Fatal("expected negative limit to be rejected")
	}
}

func TestNewCatalogRejectsNonMonotonicFeatures(t *testing.T) {
	_, err := NewCatalog([]Tier{
		{ID: TierSolo, Features: []FeatureFlag{{Key: FeatureInvoicing, Enabled: true}}},
		{ID: TierStarter, Features: []FeatureFlag{{Key: FeatureInvoicing, Enabled: false}}},
	})
	if err == nil {
		t.Fatal("expected feature disabled on higher tier to be rejected")
	}
}

func TestNewCatalogRejectsStaleUpgradeAnnotation(t *testing.T) {
	// requires_upgrade points at a tier that does not enable the feature
	_, err := NewCatalog([]Tier{
		{ID: TierSolo, Features: []FeatureFlag{{Key: FeatureReports, RequiresUpgrade: TierStarter}}},
		{ID: TierStarter, Features: []FeatureFlag{{Key: FeatureReports}}},
	})
	if err == nil {
		t.Fatal("expected stale requires_upgrade annotation to be rejected")
	}
}

func TestCatalogOrderAndLookup(t *testing.T) {
	c := DefaultCatalog()

	tiers := c.Tiers()
	require.Len(t, tiers, 3)
	assert.Equal(t, TierSolo, tiers[0].ID)
	assert.Equal(t, TierStarter, tiers[1].ID)
	assert.Equal(t, TierProfessional, tiers[2].ID)

	assert.Equal(t, 0, c.Index(TierSolo))
	assert.Equal(t, 2, c.Index(TierProfessional))
	assert.Equal(t, -1, c.Index("platinum"))

	starter, ok := c.Tier(TierStarter)
	require.True(t, ok)
	assert.Equal(t, "Starter", starter.Name)
	assert.Equal(t, 5, starter.Limits.Limit(ResourceUsers))

	_, ok = c.Tier("platinum")
	assert.False(t, ok)
}

func TestCatalogProfessionalIsUnlimited(t *testing.T) {
	c := DefaultCatalog()
	pro, ok := c.Tier(TierProfessional)
	require.True(t, ok)
	for _, rt := range ResourceTypes {
		assert.Equal(t, Unlimited, pro.Limits.Limit(rt), "resource %s", rt)
	}
}

func TestCatalogJSONRoundTrip(t *testing.T) {
	orig := DefaultCatalog()

	data, err := json.Marshal(orig.Tiers())
	require.NoError(t, err)

	var tiers []Tier
	require.NoError(t, json.Unmarshal(data, &tiers))

	reloaded, err := NewCatalog(tiers)
	require.NoError(t, err)
	assert.Equal(t, orig.Tiers(), reloaded.Tiers())
}
