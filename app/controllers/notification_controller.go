package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/garagehub/GarageHub/app/models"
	"github.com/garagehub/GarageHub/internal/pkg/database"
	"github.com/garagehub/GarageHub/internal/pkg/usercontext"
)

// HandleListNotifications returns the current user's notifications, unread
// first.
func HandleListNotifications(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	var notifications []models.Notification
	err := database.GetDB().
		Where("user_id = ?", userCtx.UserID).
		Order("is_read ASC, created_at DESC").
		Limit(100).
		Find(&notifications).Error
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load notifications")
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}

// HandleMarkNotificationRead marks one of the current user's notifications as read.
func HandleMarkNotificationRead(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid notification id")
	}

	db := database.GetDB()
	var notification models.Notification
	if err := db.Where("id = ? AND user_id = ?", id, userCtx.UserID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Notification not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load notification")
	}

	if err := notification.MarkAsRead(db); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update notification")
	}

	return c.JSON(notification)
}
