package models

import (
	"time"

	"gorm.io/gorm"
)

// AccountSubscription is the single durable subscription record for the
// garage running this instance. The billing backend owns it; the
// entitlement engine only reads the tier at startup and writes it back
// after a validated change.
type AccountSubscription struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CurrentTier string    `gorm:"type:varchar(50);not null;default:'solo'" json:"current_tier"`
	RenewalDate time.Time `json:"renewal_date"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetOrCreateAccountSubscription returns the account row, creating it with
// the given default tier on first run.
func GetOrCreateAccountSubscription(db *gorm.DB, defaultTier string) (*AccountSubscription, error) {
	var sub AccountSubscription
	if err := db.First(&sub).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			sub = AccountSubscription{
				CurrentTier: defaultTier,
				RenewalDate: time.Now().AddDate(0, 1, 0),
				IsActive:    true,
			}
			if err := db.Create(&sub).Error; err != nil {
				return nil, err
			}
			return &sub, nil
		}
		return nil, err
	}
	return &sub, nil
}
