package billing

import (
	"time"

	"gorm.io/gorm"

	"github.com/garagehub/GarageHub/app/models"
)

// SubscriptionStore persists the durable account subscription record. The
// in-process engine state is rebuilt from it on startup and written back
// after every validated tier change.
type SubscriptionStore interface {
	Load(defaultTier string) (*models.AccountSubscription, error)
	SaveTier(tier string) error
	SaveRenewal(renewalDate time.Time, active bool) error
}

type gormSubscriptionStore struct {
	db *gorm.DB
}

// NewSubscriptionStore creates a subscription store backed by GORM.
func NewSubscriptionStore(db *gorm.DB) SubscriptionStore {
	return &gormSubscriptionStore{db: db}
}

func (s *gormSubscriptionStore) Load(defaultTier string) (*models.AccountSubscription, error) {
	return models.GetOrCreateAccountSubscription(s.db, defaultTier)
}

func (s *gormSubscriptionStore) SaveTier(tier string) error {
	sub, err := models.GetOrCreateAccountSubscription(s.db, tier)
	if err != nil {
		return err
	}
	return s.db.Model(sub).Update("current_tier", tier).Error
}

func (s *gormSubscriptionStore) SaveRenewal(renewalDate time.Time, active bool) error {
	sub, err := models.GetOrCreateAccountSubscription(s.db, string(normalizeTier("")))
	if err != nil {
		return err
	}
	return s.db.Model(sub).Updates(map[string]interface{}{
		"renewal_date": renewalDate,
		"is_active":    active,
	}).Error
}
