package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/garagehub/GarageHub/app/models"
)

// appointmentRepository implements AppointmentRepository interface
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository instance
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create creates a new appointment in the database
func (r *appointmentRepository) Create(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

// GetByID retrieves an appointment by its ID
func (r *appointmentRepository) GetByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.Preload("Vehicle").Preload("Customer").First(&appointment, id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// GetByUUID retrieves an appointment by its UUID
func (r *appointmentRepository) GetByUUID(uuid string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.Preload("Vehicle").Preload("Customer").Where("uuid = ?", uuid).First(&appointment).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// GetByVehicleID retrieves all appointments for a vehicle
func (r *appointmentRepository) GetByVehicleID(vehicleID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("vehicle_id = ?", vehicleID).Order("scheduled_at DESC").Find(&appointments).Error
	return appointments, err
}

// ListUpcoming retrieves the next scheduled appointments ordered by start time
func (r *appointmentRepository) ListUpcoming(limit int) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Preload("Vehicle").Preload("Customer").
		Where("status = ? AND scheduled_at >= ?", models.AppointmentStatusScheduled, time.Now()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&appointments).Error
	return appointments, err
}

// Update updates an existing appointment in the database
func (r *appointmentRepository) Update(appointment *models.Appointment) error {
	return r.db.Save(appointment).Error
}

// Delete soft-deletes an appointment by its ID
func (r *appointmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Appointment{}, id).Error
}

// List retrieves appointments with pagination
func (r *appointmentRepository) List(offset, limit int) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Preload("Vehicle").Preload("Customer").
		Offset(offset).Limit(limit).
		Order("scheduled_at DESC").
		Find(&appointments).Error
	return appointments, err
}

// Count returns the total number of appointments
func (r *appointmentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Appointment{}).Count(&count).Error
	return count, err
}
