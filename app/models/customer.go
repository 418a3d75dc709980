package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a vehicle owner the garage does work for.
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UUID      string         `gorm:"type:char(36);uniqueIndex" json:"uuid"`
	Name      string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Email     string         `gorm:"type:varchar(200);index" json:"email" validate:"omitempty,email"`
	Phone     string         `gorm:"type:varchar(50)" json:"phone"`
	Notes     string         `gorm:"type:text" json:"notes"`
	Vehicles  []Vehicle      `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
