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

// HandleListAppointments returns appointments, newest first.
func HandleListAppointments(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetAppointmentRepository()

	if c.Query("upcoming") == "true" {
		appointments, err := repo.ListUpcoming(defaultPageSize)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load appointments")
		}
		return c.JSON(fiber.Map{"appointments": appointments})
	}

	offset, limit := parsePagination(c)
	appointments, err := repo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load appointments")
	}
	return c.JSON(fiber.Map{"appointments": appointments})
}

// HandleGetAppointment returns a single appointment by UUID.
func HandleGetAppointment(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetAppointmentRepository()
	appointment, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Appointment not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load appointment")
	}
	return c.JSON(appointment)
}

// HandleCreateAppointment schedules an appointment. Reminder flags and bay
// assignment are feature-gated per tier.
func HandleCreateAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	appointment.ID = 0
	appointment.UUID = uuid.New().String()
	if appointment.Status == "" {
		appointment.Status = models.AppointmentStatusScheduled
	}
	if appointment.DurationMinutes == 0 {
		appointment.DurationMinutes = 60
	}

	if err := checkAppointmentFeatures(c, &appointment); err != nil {
		return err
	}

	if err := appointment.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	repo := repository.GetGlobalFactory().GetAppointmentRepository()
	if err := repo.Create(&appointment); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create appointment")
	}

	statistics.ResetCacheUpdateTimer()

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// HandleUpdateAppointment updates an appointment with the same feature checks
// as creation.
func HandleUpdateAppointment(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetAppointmentRepository()
	appointment, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Appointment not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load appointment")
	}

	var in models.Appointment
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	appointment.ScheduledAt = in.ScheduledAt
	appointment.DurationMinutes = in.DurationMinutes
	appointment.Status = in.Status
	appointment.Notes = in.Notes
	appointment.SMSReminder = in.SMSReminder
	appointment.EmailReminder = in.EmailReminder
	appointment.ServiceBayID = in.ServiceBayID

	if err := checkAppointmentFeatures(c, appointment); err != nil {
		return err
	}

	if err := appointment.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := repo.Update(appointment); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update appointment")
	}
	return c.JSON(appointment)
}

// HandleDeleteAppointment cancels and removes an appointment.
func HandleDeleteAppointment(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetAppointmentRepository()
	appointment, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Appointment not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load appointment")
	}

	if err := repo.Delete(appointment.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete appointment")
	}

	statistics.ResetCacheUpdateTimer()

	return c.SendStatus(fiber.StatusNoContent)
}

// checkAppointmentFeatures enforces the gated parts of an appointment:
// SMS reminders, email reminders and explicit bay assignment.
func checkAppointmentFeatures(c *fiber.Ctx, appointment *models.Appointment) error {
	svc := billing.GetService()

	if appointment.SMSReminder {
		if verdict := svc.CheckFeature(entitlements.FeatureSMSReminders); !verdict.Enabled {
			return featureLocked(c, entitlements.FeatureSMSReminders, verdict)
		}
	}
	if appointment.EmailReminder {
		if verdict := svc.CheckFeature(entitlements.FeatureEmailReminders); !verdict.Enabled {
			return featureLocked(c, entitlements.FeatureEmailReminders, verdict)
		}
	}
	if appointment.ServiceBayID != nil {
		if verdict := svc.CheckFeature(entitlements.FeatureMultiBay); !verdict.Enabled {
			return featureLocked(c, entitlements.FeatureMultiBay, verdict)
		}
	}
	return nil
}

// featureLocked renders the standard response for a locked feature.
func featureLocked(c *fiber.Ctx, featureKey string, verdict entitlements.Verdict) error {
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
