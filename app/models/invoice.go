package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
	InvoiceStatusVoid  = "void"
)

// Invoice is a customer invoice built from line items. Access to invoicing
// is feature-gated per tier.
type Invoice struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UUID       string         `gorm:"type:char(36);uniqueIndex" json:"uuid"`
	Number     string         `gorm:"type:varchar(50);uniqueIndex" json:"number" validate:"required"`
	CustomerID uint           `gorm:"index" json:"customer_id"`
	Customer   Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	VehicleID  *uint          `gorm:"index" json:"vehicle_id"`
	Status     string         `gorm:"type:varchar(50);default:'draft'" json:"status" validate:"oneof=draft sent paid void"`
	Currency   string         `gorm:"type:varchar(3);default:'EUR'" json:"currency"`
	TotalCents int64          `json:"total_cents"`
	IssuedAt   *time.Time     `gorm:"type:timestamp;default:null" json:"issued_at"`
	DueAt      *time.Time     `gorm:"type:timestamp;default:null" json:"due_at"`
	Items      []InvoiceItem  `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// InvoiceItem is a single billed position on an invoice.
type InvoiceItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	InvoiceID      uint      `gorm:"index" json:"invoice_id"`
	Description    string    `gorm:"type:varchar(255)" json:"description" validate:"required,max=255"`
	Quantity       int       `gorm:"default:1" json:"quantity" validate:"min=1"`
	UnitPriceCents int64     `json:"unit_price_cents" validate:"min=0"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Total returns the line total for an item.
func (it InvoiceItem) Total() int64 {
	return int64(it.Quantity) * it.UnitPriceCents
}

// ComputeTotal recalculates the invoice total from its items.
func (i *Invoice) ComputeTotal() {
	var total int64
	for _, it := range i.Items {
		total += it.Total()
	}
	i.TotalCents = total
}
