package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagehub/GarageHub/app/models"
	"github.com/garagehub/GarageHub/app/repository"
	"github.com/garagehub/GarageHub/internal/pkg/statistics"
)

// HandleListCustomers returns customers, optionally filtered by a search query.
func HandleListCustomers(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetCustomerRepository()

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		customers, err := repo.Search(q)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to search customers")
		}
		return c.JSON(fiber.Map{"customers": customers})
	}

	offset, limit := parsePagination(c)
	customers, err := repo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load customers")
	}
	return c.JSON(fiber.Map{"customers": customers})
}

// HandleGetCustomer returns a single customer by UUID.
func HandleGetCustomer(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetCustomerRepository()
	customer, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Customer not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load customer")
	}
	return c.JSON(customer)
}

// HandleCreateCustomer creates a customer.
func HandleCreateCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	customer.ID = 0
	customer.UUID = uuid.New().String()

	repo := repository.GetGlobalFactory().GetCustomerRepository()
	if err := repo.Create(&customer); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create customer")
	}

	statistics.ResetCacheUpdateTimer()

	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleUpdateCustomer updates an existing customer.
func HandleUpdateCustomer(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetCustomerRepository()
	customer, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Customer not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load customer")
	}

	var in models.Customer
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	customer.Name = in.Name
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Notes = in.Notes

	if err := repo.Update(customer); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update customer")
	}
	return c.JSON(customer)
}

// HandleDeleteCustomer removes a customer.
func HandleDeleteCustomer(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetCustomerRepository()
	customer, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Customer not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load customer")
	}

	if err := repo.Delete(customer.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete customer")
	}

	statistics.ResetCacheUpdateTimer()

	return c.SendStatus(fiber.StatusNoContent)
}
