package repository

import (
	"gorm.io/gorm"

	"github.com/garagehub/GarageHub/app/models"
)

// vehicleRepository implements VehicleRepository interface
type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository instance
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

// Create creates a new vehicle in the database
func (r *vehicleRepository) Create(vehicle *models.Vehicle) error {
	return r.db.Create(vehicle).Error
}

// GetByID retrieves a vehicle by its ID
func (r *vehicleRepository) GetByID(id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.Preload("Customer").First(&vehicle, id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetByUUID retrieves a vehicle by its UUID
func (r *vehicleRepository) GetByUUID(uuid string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.Preload("Customer").Where("uuid = ?", uuid).First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetByLicensePlate retrieves a vehicle by its license plate
func (r *vehicleRepository) GetByLicensePlate(plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.Where("license_plate = ?", plate).First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetByCustomerID retrieves all vehicles belonging to a customer
func (r *vehicleRepository) GetByCustomerID(customerID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&vehicles).Error
	return vehicles, err
}

// Update updates an existing vehicle in the database
func (r *vehicleRepository) Update(vehicle *models.Vehicle) error {
	return r.db.Save(vehicle).Error
}

// Delete soft-deletes a vehicle by its ID
func (r *vehicleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Vehicle{}, id).Error
}

// List retrieves vehicles with pagination
func (r *vehicleRepository) List(offset, limit int) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.Preload("Customer").Offset(offset).Limit(limit).Order("created_at DESC").Find(&vehicles).Error
	return vehicles, err
}

// Count returns the number of registered vehicles. This is the number
// counted against the cars resource limit.
func (r *vehicleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Vehicle{}).Count(&count).Error
	return count, err
}
