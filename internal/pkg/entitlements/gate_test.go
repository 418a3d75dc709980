package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(tier TierID) *Gate {
	return NewGate(NewEvaluator(DefaultCatalog(), NewUsageTracker(), StaticTier(tier)))
}

func TestGateEnabledFeature(t *testing.T) {
	g := newTestGate(TierSolo)

	v := g.Evaluate(FeatureAppointments)
	assert.True(t, v.Enabled)
	assert.False(t, v.Locked)
	assert.Equal(t, TierID(""), v.RequiredTier)
	assert.False(t, v.CanUpgrade)

	select {
	case ev := <-g.Blocked():
		t.Fatalf("unexpected blocked event %+v for enabled feature", ev)
	default:
	}
}

func TestGateLockedFeatureEmitsBlockedEvent(t *testing.T) {
	g := newTestGate(TierSolo)

	v := g.Evaluate(FeatureReports)
	assert.False(t, v.Enabled)
	assert.True(t, v.Locked)
	assert.Equal(t, TierProfessional, v.RequiredTier)
	assert.True(t, v.CanUpgrade)

	select {
	case ev := <-g.Blocked():
		assert.Equal(t, FeatureReports, ev.FeatureKey)
		assert.Equal(t, TierProfessional, ev.RequiredTier)
	default:
		t.Fatal("expected a blocked event")
	}
}

func TestGateUnknownFeatureFailsClosed(t *testing.T) {
	g := newTestGate(TierProfessional)

	v := g.Evaluate("no_such_feature")
	assert.False(t, v.Enabled)
	assert.True(t, v.Locked)
	assert.Equal(t, TierID(""), v.RequiredTier)
	assert.False(t, v.CanUpgrade)
}

func TestGateEvaluateIsIdempotent(t *testing.T) {
	g := newTestGate(TierSolo)

	first := g.Evaluate(FeatureInventory)
	second := g.Evaluate(FeatureInventory)
	require.Equal(t, first, second)
}

func TestGateDropsEventsWhenChannelFull(t *testing.T) {
	g := newTestGate(TierSolo)

	// overflow the buffer without a consumer; Evaluate must not block
	for i := 0; i < blockedBuffer+10; i++ {
		v := g.Evaluate(FeatureAPIAccess)
		assert.True(t, v.Locked)
	}
	assert.Len(t, g.Blocked(), blockedBuffer)
}
