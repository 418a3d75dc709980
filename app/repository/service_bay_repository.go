package repository

import (
	"gorm.io/gorm"

	"github.com/garagehub/GarageHub/app/models"
)

// serviceBayRepository implements ServiceBayRepository interface
type serviceBayRepository struct {
	db *gorm.DB
}

// NewServiceBayRepository creates a new service bay repository instance
func NewServiceBayRepository(db *gorm.DB) ServiceBayRepository {
	return &serviceBayRepository{db: db}
}

// Create creates a new service bay in the database
func (r *serviceBayRepository) Create(bay *models.ServiceBay) error {
	return r.db.Create(bay).Error
}

// GetByID retrieves a service bay by its ID
func (r *serviceBayRepository) GetByID(id uint) (*models.ServiceBay, error) {
	var bay models.ServiceBay
	err := r.db.First(&bay, id).Error
	if err != nil {
		return nil, err
	}
	return &bay, nil
}

// Update updates an existing service bay in the database
func (r *serviceBayRepository) Update(bay *models.ServiceBay) error {
	return r.db.Save(bay).Error
}

// Delete soft-deletes a service bay by its ID
func (r *serviceBayRepository) Delete(id uint) error {
	return r.db.Delete(&models.ServiceBay{}, id).Error
}

// List retrieves all service bays
func (r *serviceBayRepository) List() ([]models.ServiceBay, error) {
	var bays []models.ServiceBay
	err := r.db.Order("name ASC").Find(&bays).Error
	return bays, err
}

// CountActive returns the number of active service bays. This is the
// number counted against the service_bays resource limit.
func (r *serviceBayRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.ServiceBay{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
