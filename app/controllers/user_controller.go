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

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	Password *string `json:"password"`
}

// HandleListUsers returns the staff accounts.
func HandleListUsers(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	repo := repository.GetGlobalFactory().GetUserRepository()
	users, err := repo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load users")
	}
	return c.JSON(fiber.Map{"users": users})
}

// HandleCreateUser creates a staff account. Each active account occupies a
// seat, so creation is refused once the tier's user limit is reached.
func HandleCreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	svc := billing.GetService()
	if svc.Evaluator().IsUsageLimitExceeded(entitlements.ResourceUsers) {
		return limitReached(c, entitlements.ResourceUsers)
	}

	role := req.Role
	if role == "" {
		role = models.ROLE_STAFF
	}
	user, err := models.CreateUser(req.Name, req.Email, req.Password, role)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if err := repo.Create(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create user")
	}

	svc.Usage().RecordCreated(entitlements.ResourceUsers)

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleUpdateUser updates a staff account. Reactivating a disabled account
// takes a seat again, so it runs through the same limit check as creation.
func HandleUpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid user id")
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	wasActive := user.IsActive()

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to set password")
		}
	}

	if err := user.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	svc := billing.GetService()
	if !wasActive && user.IsActive() && svc.Evaluator().IsUsageLimitExceeded(entitlements.ResourceUsers) {
		return limitReached(c, entitlements.ResourceUsers)
	}

	if err := repo.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update user")
	}

	if wasActive && !user.IsActive() {
		svc.Usage().RecordDeleted(entitlements.ResourceUsers)
	} else if !wasActive && user.IsActive() {
		svc.Usage().RecordCreated(entitlements.ResourceUsers)
	}

	return c.JSON(user)
}

// HandleDeleteUser removes a staff account and frees its seat.
func HandleDeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid user id")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	if err := repo.Delete(user.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete user")
	}

	if user.IsActive() {
		billing.GetService().Usage().RecordDeleted(entitlements.ResourceUsers)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// limitReached renders the standard response for a full resource limit.
func limitReached(c *fiber.Ctx, rt entitlements.ResourceType) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":    "limit_reached",
		"resource": rt,
	})
}
