package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	AppointmentStatusScheduled  = "scheduled"
	AppointmentStatusInProgress = "in_progress"
	AppointmentStatusDone       = "done"
	AppointmentStatusCancelled  = "cancelled"
)

// Appointment is a scheduled workshop visit for a vehicle. Reminder flags
// are only honored when the matching feature is enabled on the current tier.
type Appointment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UUID            string         `gorm:"type:char(36);uniqueIndex" json:"uuid"`
	VehicleID       uint           `gorm:"index" json:"vehicle_id"`
	Vehicle         Vehicle        `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	CustomerID      uint           `gorm:"index" json:"customer_id"`
	Customer        Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ServiceBayID    *uint          `gorm:"index" json:"service_bay_id"`
	ServiceBay      *ServiceBay    `gorm:"foreignKey:ServiceBayID" json:"service_bay,omitempty"`
	ScheduledAt     time.Time      `json:"scheduled_at" validate:"required"`
	DurationMinutes int            `gorm:"default:60" json:"duration_minutes" validate:"min=15,max=480"`
	Status          string         `gorm:"type:varchar(50);default:'scheduled'" json:"status" validate:"oneof=scheduled in_progress done cancelled"`
	Notes           string         `gorm:"type:text" json:"notes"`
	SMSReminder     bool           `gorm:"default:false" json:"sms_reminder"`
	EmailReminder   bool           `gorm:"default:false" json:"email_reminder"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Appointment) Validate() error {
	v := validator.New()

	return v.Struct(a)
}
