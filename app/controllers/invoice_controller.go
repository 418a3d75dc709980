package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagehub/GarageHub/app/models"
	"github.com/garagehub/GarageHub/app/repository"
)

// HandleListInvoices returns invoices, newest first.
func HandleListInvoices(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	invoices, err := repo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load invoices")
	}
	return c.JSON(fiber.Map{"invoices": invoices})
}

// HandleGetInvoice returns a single invoice by UUID, with items.
func HandleGetInvoice(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	invoice, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Invoice not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load invoice")
	}
	return c.JSON(invoice)
}

// HandleCreateInvoice creates a draft invoice from its items. The total is
// always computed server-side.
func HandleCreateInvoice(c *fiber.Ctx) error {
	var invoice models.Invoice
	if err := c.BodyParser(&invoice); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	invoice.ID = 0
	invoice.UUID = uuid.New().String()
	if invoice.Status == "" {
		invoice.Status = models.InvoiceStatusDraft
	}
	if invoice.Number == "" {
		invoice.Number = nextInvoiceNumber()
	}
	invoice.ComputeTotal()

	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	if err := repo.Create(&invoice); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create invoice")
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// HandleUpdateInvoiceStatus moves an invoice through its lifecycle.
func HandleUpdateInvoiceStatus(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	invoice, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Invoice not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load invoice")
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	switch in.Status {
	case models.InvoiceStatusSent:
		now := time.Now()
		invoice.IssuedAt = &now
		if invoice.DueAt == nil {
			due := now.AddDate(0, 0, 14)
			invoice.DueAt = &due
		}
	case models.InvoiceStatusPaid, models.InvoiceStatusVoid, models.InvoiceStatusDraft:
	default:
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Unknown invoice status")
	}
	invoice.Status = in.Status

	if err := repo.Update(invoice); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update invoice")
	}
	return c.JSON(invoice)
}

// HandleDeleteInvoice removes a draft invoice. Issued invoices can only be
// voided, not deleted.
func HandleDeleteInvoice(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	invoice, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Invoice not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load invoice")
	}

	if invoice.Status != models.InvoiceStatusDraft {
		return jsonError(c, fiber.StatusConflict, "conflict", "Only draft invoices can be deleted")
	}

	if err := repo.Delete(invoice.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete invoice")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// nextInvoiceNumber builds a time-based invoice number. Uniqueness is
// enforced by the database index.
func nextInvoiceNumber() string {
	return fmt.Sprintf("INV-%s", time.Now().Format("20060102-150405"))
}
