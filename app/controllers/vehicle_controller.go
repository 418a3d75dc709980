package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagehub/GarageHub/app/models"
	"github.com/garagehub/GarageHub/app/repository"
	"github.com/garagehub/GarageHub/internal/pkg/billing"
	"github.com/garagehub/GarageHub/internal/pkg/entitlements"
	"github.com/garagehub/GarageHub/internal/pkg/statistics"
)

// HandleListVehicles returns vehicles, optionally scoped to a customer.
func HandleListVehicles(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetVehicleRepository()

	if customerID, err := c.ParamsInt("customer_id", 0); err == nil && customerID > 0 {
		vehicles, err := repo.GetByCustomerID(uint(customerID))
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load vehicles")
		}
		return c.JSON(fiber.Map{"vehicles": vehicles})
	}

	offset, limit := parsePagination(c)
	vehicles, err := repo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load vehicles")
	}
	return c.JSON(fiber.Map{"vehicles": vehicles})
}

// HandleGetVehicle returns a single vehicle by UUID.
func HandleGetVehicle(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetVehicleRepository()
	vehicle, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Vehicle not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load vehicle")
	}
	return c.JSON(vehicle)
}

// HandleCreateVehicle registers a vehicle. Registration is refused once the
// tier's car limit is reached.
func HandleCreateVehicle(c *fiber.Ctx) error {
	svc := billing.GetService()
	if svc.Evaluator().IsUsageLimitExceeded(entitlements.ResourceCars) {
		return limitReached(c, entitlements.ResourceCars)
	}

	var vehicle models.Vehicle
	if err := c.BodyParser(&vehicle); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	vehicle.ID = 0
	vehicle.UUID = uuid.New().String()

	repo := repository.GetGlobalFactory().GetVehicleRepository()
	if _, err := repo.GetByLicensePlate(vehicle.LicensePlate); err == nil {
		return jsonError(c, fiber.StatusConflict, "conflict", "License plate already registered")
	}

	if err := repo.Create(&vehicle); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create vehicle")
	}

	svc.Usage().RecordCreated(entitlements.ResourceCars)
	statistics.ResetCacheUpdateTimer()

	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// HandleUpdateVehicle updates an existing vehicle.
func HandleUpdateVehicle(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetVehicleRepository()
	vehicle, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Vehicle not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load vehicle")
	}

	var in models.Vehicle
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	vehicle.LicensePlate = in.LicensePlate
	vehicle.Make = in.Make
	vehicle.Model = in.Model
	vehicle.ModelYear = in.ModelYear
	vehicle.VIN = in.VIN
	vehicle.Mileage = in.Mileage
	if in.CustomerID != 0 {
		vehicle.CustomerID = in.CustomerID
	}

	if err := repo.Update(vehicle); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update vehicle")
	}
	return c.JSON(vehicle)
}

// HandleDeleteVehicle removes a vehicle and frees a car slot.
func HandleDeleteVehicle(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetVehicleRepository()
	vehicle, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Vehicle not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load vehicle")
	}

	if err := repo.Delete(vehicle.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete vehicle")
	}

	billing.GetService().Usage().RecordDeleted(entitlements.ResourceCars)
	statistics.ResetCacheUpdateTimer()

	return c.SendStatus(fiber.StatusNoContent)
}
