package models

import (
	"time"

	"gorm.io/gorm"
)

// Vehicle is a customer car on file. Registered vehicles count against the
// cars resource limit of the subscription tier.
type Vehicle struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         string         `gorm:"type:char(36);uniqueIndex" json:"uuid"`
	CustomerID   uint           `gorm:"index" json:"customer_id"`
	Customer     Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	LicensePlate string         `gorm:"type:varchar(20);uniqueIndex" json:"license_plate" validate:"required,min=2,max=20"`
	Make         string         `gorm:"type:varchar(100)" json:"make" validate:"required,max=100"`
	Model        string         `gorm:"type:varchar(100)" json:"model" validate:"required,max=100"`
	ModelYear    int            `json:"model_year" validate:"omitempty,min=1900,max=2100"`
	VIN          string         `gorm:"type:varchar(17);index" json:"vin" validate:"omitempty,len=17"`
	Mileage      int            `json:"mileage" validate:"min=0"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
