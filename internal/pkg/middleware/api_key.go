package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/garagehub/GarageHub/internal/pkg/billing"
	"github.com/garagehub/GarageHub/internal/pkg/entitlements"
	"github.com/garagehub/GarageHub/internal/pkg/env"
	"github.com/garagehub/GarageHub/internal/pkg/usercontext"
)

// APIKeyAuthMiddleware authenticates requests carrying the instance API key
// header. API access itself is a gated feature, so the key is only honored
// on tiers that include it.
func APIKeyAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		verdict := billing.GetService().CheckFeature(entitlements.FeatureAPIAccess)
		if !verdict.Enabled {
			resp := fiber.Map{
				"error":   "feature_locked",
				"feature": entitlements.FeatureAPIAccess,
			}
			if verdict.RequiredTier != "" {
				resp["required_tier"] = verdict.RequiredTier
				resp["can_upgrade"] = verdict.CanUpgrade
			}
			return c.Status(fiber.StatusForbidden).JSON(resp)
		}

		apiKey := extractAPIKeyFromHeader(c)
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing API key"})
		}

		configured := env.GetEnv("API_KEY", "")
		if configured == "" || !apiKeysEqual(apiKey, configured) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid API key"})
		}

		userCtx := usercontext.UserContext{
			Username:   "api",
			IsLoggedIn: true,
			IsOwner:    false,
			Tier:       string(billing.GetService().Account().CurrentTier()),
		}
		c.Locals(usercontext.KeyUserContext, userCtx)
		c.Locals(usercontext.KeyFromProtected, true)
		c.Locals(usercontext.KeyUsername, userCtx.Username)
		c.Locals(usercontext.KeyIsOwner, false)

		return c.Next()
	}
}

// apiKeysEqual compares keys in constant time over their digests.
func apiKeysEqual(a, b string) bool {
	da := sha256.Sum256([]byte(a))
	db := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(da[:], db[:]) == 1
}

func extractAPIKeyFromHeader(c *fiber.Ctx) string {
	apiKey := strings.TrimSpace(c.Get("X-API-Key"))
	if apiKey != "" {
		return apiKey
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
