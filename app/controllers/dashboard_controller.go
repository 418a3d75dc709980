package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/garagehub/GarageHub/internal/pkg/billing"
	"github.com/garagehub/GarageHub/internal/pkg/entitlements"
	"github.com/garagehub/GarageHub/internal/pkg/jobqueue"
	"github.com/garagehub/GarageHub/internal/pkg/metrics/counter"
	"github.com/garagehub/GarageHub/internal/pkg/statistics"
)

// HandleDashboardStats returns the owner dashboard: cached garage counters,
// per-resource utilization and the accumulated blocked-feature counters.
func HandleDashboardStats(c *fiber.Ctx) error {
	stats := statistics.GetStatisticsData()
	svc := billing.GetService()

	utilization := make(map[string]float64, len(entitlements.ResourceTypes))
	for _, rt := range entitlements.ResourceTypes {
		utilization[string(rt)] = svc.Evaluator().UsagePercent(rt)
	}

	blocked, err := counter.FeatureBlockedCounts()
	if err != nil {
		log.Printf("[Dashboard] blocked counters unavailable: %v", err)
		blocked = map[string]int64{}
	}

	tierChanges, err := counter.TierChangeCounts()
	if err != nil {
		log.Printf("[Dashboard] tier change counters unavailable: %v", err)
		tierChanges = map[string]int64{}
	}

	reminderJobs, err := jobqueue.GetManager().GetQueue().GetJobStats(c.Context())
	if err != nil {
		log.Printf("[Dashboard] reminder job stats unavailable: %v", err)
		reminderJobs = map[jobqueue.JobStatus]int64{}
	}

	return c.JSON(fiber.Map{
		"today_appointments": stats.TodayAppointments,
		"total_customers":    stats.TotalCustomers,
		"total_vehicles":     stats.TotalVehicles,
		"usage_percent":      utilization,
		"blocked_features":   blocked,
		"tier_changes":       tierChanges,
		"reminder_jobs":      reminderJobs,
		"current_tier":       svc.Account().CurrentTier(),
	})
}

// HandleResetCounters drains the accumulated entitlement counters. Used by
// owners to start a fresh observation window after a plan change.
func HandleResetCounters(c *fiber.Ctx) error {
	if err := counter.Reset(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to reset counters")
	}
	return c.JSON(fiber.Map{"message": "counters reset"})
}
