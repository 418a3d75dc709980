package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/garagehub/GarageHub/internal/pkg/billing"
	"github.com/garagehub/GarageHub/internal/pkg/entitlements"
)

// HandleGetEntitlement reports whether a feature is available on the current
// tier. Unknown feature keys are reported as disabled.
func HandleGetEntitlement(c *fiber.Ctx) error {
	featureKey := c.Params("feature")
	verdict := billing.GetService().CheckFeature(featureKey)

	resp := fiber.Map{
		"feature": featureKey,
		"enabled": verdict.Enabled,
	}
	if verdict.RequiredTier != "" {
		resp["required_tier"] = verdict.RequiredTier
		resp["can_upgrade"] = verdict.CanUpgrade
	}
	return c.JSON(resp)
}

// HandleListEntitlements returns the features that are locked on the current
// tier together with the tier that would unlock each of them.
func HandleListEntitlements(c *fiber.Ctx) error {
	eval := billing.GetService().Evaluator()

	locked := eval.LockedFeatures()
	out := make([]fiber.Map, 0, len(locked))
	for _, f := range locked {
		out = append(out, fiber.Map{
			"feature":       f.Key,
			"required_tier": f.RequiresUpgrade,
		})
	}
	return c.JSON(fiber.Map{"locked_features": out})
}

// HandleListTiers returns the full tier catalog in ascending order.
func HandleListTiers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tiers": billing.GetService().Account().Catalog().Tiers(),
	})
}

// HandleCompareTiers returns the catalog annotated with the current tier and
// an advisory recommendation.
func HandleCompareTiers(c *fiber.Ctx) error {
	return c.JSON(billing.GetService().Compare())
}

// HandleValidateTierChange dry-runs a tier change against live usage.
func HandleValidateTierChange(c *fiber.Ctx) error {
	verdict := billing.GetService().ValidateChange(c.Params("target"))
	return c.JSON(verdict)
}

// HandleChangeTier applies a tier change. A blocked change returns the
// verdict with the denial reasons; nothing is persisted in that case.
func HandleChangeTier(c *fiber.Ctx) error {
	verdict, err := billing.GetService().ChangeTier(c.Params("target"))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to persist tier change")
	}
	if !verdict.Allowed {
		return c.Status(fiber.StatusConflict).JSON(verdict)
	}
	return c.JSON(verdict)
}

// HandleGetSubscription returns the current subscription status including
// live usage and per-resource utilization.
func HandleGetSubscription(c *fiber.Ctx) error {
	svc := billing.GetService()
	status := svc.Status()

	utilization := make(map[string]float64, len(entitlements.ResourceTypes))
	for _, rt := range entitlements.ResourceTypes {
		utilization[string(rt)] = svc.Evaluator().UsagePercent(rt)
	}

	return c.JSON(fiber.Map{
		"current_tier":       status.CurrentTier,
		"usage":              status.Usage,
		"usage_percent":      utilization,
		"renewal_date":       status.RenewalDate,
		"is_active":          status.IsActive,
		"days_until_renewal": status.DaysUntilRenewal,
	})
}
