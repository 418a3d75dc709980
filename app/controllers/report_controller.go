package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/garagehub/GarageHub/app/models"
	"github.com/garagehub/GarageHub/internal/pkg/database"
)

type revenueRow struct {
	Month        string `json:"month"`
	InvoiceCount int64  `json:"invoice_count"`
	RevenueCents int64  `json:"revenue_cents"`
}

// HandleRevenueReport aggregates paid invoice revenue by month.
func HandleRevenueReport(c *fiber.Ctx) error {
	var rows []revenueRow
	err := database.GetDB().
		Model(&models.Invoice{}).
		Select("DATE_FORMAT(issued_at, '%Y-%m') AS month, COUNT(*) AS invoice_count, SUM(total_cents) AS revenue_cents").
		Where("status = ? AND issued_at IS NOT NULL", models.InvoiceStatusPaid).
		Group("month").
		Order("month DESC").
		Limit(24).
		Scan(&rows).Error
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to build revenue report")
	}

	return c.JSON(fiber.Map{"months": rows})
}
