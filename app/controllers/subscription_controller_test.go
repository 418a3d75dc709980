package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehub/GarageHub/app/models"
	"github.com/garagehub/GarageHub/internal/pkg/billing"
	"github.com/garagehub/GarageHub/internal/pkg/cache"
)

// stubStore is an in-memory subscription store for controller tests.
type stubStore struct {
	sub models.AccountSubscription
}

func (s *stubStore) Load(defaultTier string) (*models.AccountSubscription, error) {
	if s.sub.CurrentTier == "" {
		s.sub.CurrentTier = defaultTier
	}
	sub := s.sub
	return &sub, nil
}

func (s *stubStore) SaveTier(tier string) error {
	s.sub.CurrentTier = tier
	return nil
}

func (s *stubStore) SaveRenewal(renewalDate time.Time, active bool) error {
	s.sub.RenewalDate = renewalDate
	s.sub.IsActive = active
	return nil
}

func setupSubscriptionTest(t *testing.T, tier string, counts billing.ResourceCounts) *fiber.App {
	t.Helper()

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	svc, err := billing.NewService(&stubStore{sub: models.AccountSubscription{
		CurrentTier: tier,
		RenewalDate: time.Now().AddDate(0, 1, 0),
		IsActive:    true,
	}}, counts)
	require.NoError(t, err)
	billing.SetService(svc)

	app := fiber.New()
	app.Get("/api/v1/entitlements/:feature", HandleGetEntitlement)
	app.Get("/api/v1/entitlements", HandleListEntitlements)
	app.Get("/api/v1/tiers", HandleListTiers)
	app.Get("/api/v1/tiers/compare", HandleCompareTiers)
	app.Post("/api/v1/tiers/:target/validate", HandleValidateTierChange)
	app.Post("/api/v1/tiers/:target/change", HandleChangeTier)
	app.Get("/api/v1/subscription", HandleGetSubscription)
	return app
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHandleGetEntitlement(t *testing.T) {
	app := setupSubscriptionTest(t, "starter", billing.ResourceCounts{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/entitlements/invoicing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["enabled"])

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/entitlements/sms_reminders", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp.Body)
	assert.Equal(t, false, body["enabled"])
	assert.Equal(t, "professional", body["required_tier"])
	assert.Equal(t, true, body["can_upgrade"])
}

func TestHandleGetEntitlementUnknownFeature(t *testing.T) {
	app := setupSubscriptionTest(t, "professional", billing.ResourceCounts{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/entitlements/time_travel", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, false, body["enabled"])
	assert.Nil(t, body["required_tier"])
}

func TestHandleListTiers(t *testing.T) {
	app := setupSubscriptionTest(t, "solo", billing.ResourceCounts{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/tiers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	tiers := body["tiers"].([]interface{})
	require.Len(t, tiers, 3)
	first := tiers[0].(map[string]interface{})
	assert.Equal(t, "solo", first["id"])
}

func TestHandleCompareTiersRecommendation(t *testing.T) {
	app := setupSubscriptionTest(t, "starter", billing.ResourceCounts{Users: 6})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/tiers/compare", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "starter", body["current_tier_id"])
	assert.Equal(t, "professional", body["recommended_tier_id"])
}

func TestHandleValidateTierChangeBlocked(t *testing.T) {
	app := setupSubscriptionTest(t, "starter", billing.ResourceCounts{Users: 3, Cars: 47, ServiceBays: 2})

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/tiers/solo/validate", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, false, body["allowed"])
	reasons := body["reasons"].([]interface{})
	require.Len(t, reasons, 1)
	assert.Equal(t, "users_exceeds_limit", reasons[0])
}

func TestHandleChangeTierBlockedReturnsConflict(t *testing.T) {
	app := setupSubscriptionTest(t, "starter", billing.ResourceCounts{Users: 3})

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/tiers/solo/change", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestHandleChangeTierUpgrade(t *testing.T) {
	app := setupSubscriptionTest(t, "solo", billing.ResourceCounts{Users: 1})

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/tiers/starter/change", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["allowed"])
	assert.Equal(t, true, body["is_upgrade"])

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/subscription", nil))
	require.NoError(t, err)
	body = decodeBody(t, resp.Body)
	current := body["current_tier"].(map[string]interface{})
	assert.Equal(t, "starter", current["id"])
}

func TestHandleGetSubscriptionUsagePercent(t *testing.T) {
	app := setupSubscriptionTest(t, "starter", billing.ResourceCounts{Users: 3, Cars: 47, ServiceBays: 2})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/subscription", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)

	percent := body["usage_percent"].(map[string]interface{})
	assert.InDelta(t, 60.0, percent["users"].(float64), 0.001)
	assert.InDelta(t, 23.5, percent["cars"].(float64), 0.001)
	assert.Equal(t, true, body["is_active"])
}
