package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/garagehub/GarageHub/app/models"
	"github.com/garagehub/GarageHub/app/repository"
	"github.com/garagehub/GarageHub/internal/pkg/billing"
	"github.com/garagehub/GarageHub/internal/pkg/entitlements"
)

// HandleListServiceBays returns all service bays.
func HandleListServiceBays(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetServiceBayRepository()
	bays, err := repo.List()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load service bays")
	}
	return c.JSON(fiber.Map{"service_bays": bays})
}

// HandleCreateServiceBay creates a service bay. Active bays are limited per
// tier, so an active bay can only be added below the limit.
func HandleCreateServiceBay(c *fiber.Ctx) error {
	var bay models.ServiceBay
	if err := c.BodyParser(&bay); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	bay.ID = 0

	svc := billing.GetService()
	if bay.IsActive && svc.Evaluator().IsUsageLimitExceeded(entitlements.ResourceServiceBays) {
		return limitReached(c, entitlements.ResourceServiceBays)
	}

	repo := repository.GetGlobalFactory().GetServiceBayRepository()
	if err := repo.Create(&bay); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create service bay")
	}

	if bay.IsActive {
		svc.Usage().RecordCreated(entitlements.ResourceServiceBays)
	}

	return c.Status(fiber.StatusCreated).JSON(bay)
}

// HandleUpdateServiceBay updates a service bay, tracking activation changes
// against the limit.
func HandleUpdateServiceBay(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid service bay id")
	}

	repo := repository.GetGlobalFactory().GetServiceBayRepository()
	bay, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Service bay not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load service bay")
	}

	wasActive := bay.IsActive

	var in models.ServiceBay
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	bay.Name = in.Name
	bay.Description = in.Description
	bay.IsActive = in.IsActive

	svc := billing.GetService()
	if !wasActive && bay.IsActive && svc.Evaluator().IsUsageLimitExceeded(entitlements.ResourceServiceBays) {
		return limitReached(c, entitlements.ResourceServiceBays)
	}

	if err := repo.Update(bay); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update service bay")
	}

	if wasActive && !bay.IsActive {
		svc.Usage().RecordDeleted(entitlements.ResourceServiceBays)
	} else if !wasActive && bay.IsActive {
		svc.Usage().RecordCreated(entitlements.ResourceServiceBays)
	}

	return c.JSON(bay)
}

// HandleDeleteServiceBay removes a service bay.
func HandleDeleteServiceBay(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid service bay id")
	}

	repo := repository.GetGlobalFactory().GetServiceBayRepository()
	bay, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Service bay not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load service bay")
	}

	if err := repo.Delete(bay.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete service bay")
	}

	if bay.IsActive {
		billing.GetService().Usage().RecordDeleted(entitlements.ResourceServiceBays)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
