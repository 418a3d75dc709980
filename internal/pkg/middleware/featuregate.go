package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/garagehub/GarageHub/internal/pkg/billing"
)

// RequireFeature rejects the request with 403 when the given feature is not
// enabled on the current tier. The response carries the tier that would
// unlock the feature so clients can render an upgrade prompt.
func RequireFeature(featureKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		verdict := billing.GetService().CheckFeature(featureKey)
		if verdict.Enabled {
			return c.Next()
		}

		resp := fiber.Map{
			"error":   "feature_locked",
			"feature": featureKey,
		}
		if verdict.RequiredTier != "" {
			resp["required_tier"] = verdict.RequiredTier
			resp["can_upgrade"] = verdict.CanUpgrade
		}
		return c.Status(fiber.StatusForbidden).JSON(resp)
	}
}
