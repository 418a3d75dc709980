package repository

import (
	"gorm.io/gorm"

	"github.com/garagehub/GarageHub/app/models"
)

// UserRepository defines the interface for staff-user database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	CountActive() (int64, error)
}

// CustomerRepository defines the interface for customer database operations
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	GetByUUID(uuid string) (*models.Customer, error)
	Update(customer *models.Customer) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Customer, error)
	Search(query string) ([]models.Customer, error)
	Count() (int64, error)
}

// VehicleRepository defines the interface for vehicle database operations
type VehicleRepository interface {
	Create(vehicle *models.Vehicle) error
	GetByID(id uint) (*models.Vehicle, error)
	GetByUUID(uuid string) (*models.Vehicle, error)
	GetByLicensePlate(plate string) (*models.Vehicle, error)
	GetByCustomerID(customerID uint) ([]models.Vehicle, error)
	Update(vehicle *models.Vehicle) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Vehicle, error)
	Count() (int64, error)
}

// ServiceBayRepository defines the interface for service bay operations
type ServiceBayRepository interface {
	Create(bay *models.ServiceBay) error
	GetByID(id uint) (*models.ServiceBay, error)
	Update(bay *models.ServiceBay) error
	Delete(id uint) error
	List() ([]models.ServiceBay, error)
	CountActive() (int64, error)
}

// AppointmentRepository defines the interface for appointment operations
type AppointmentRepository interface {
	Create(appointment *models.Appointment) error
	GetByID(id uint) (*models.Appointment, error)
	GetByUUID(uuid string) (*models.Appointment, error)
	GetByVehicleID(vehicleID uint) ([]models.Appointment, error)
	ListUpcoming(limit int) ([]models.Appointment, error)
	Update(appointment *models.Appointment) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Appointment, error)
	Count() (int64, error)
}

// InvoiceRepository defines the interface for invoice operations
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	GetByID(id uint) (*models.Invoice, error)
	GetByUUID(uuid string) (*models.Invoice, error)
	GetByNumber(number string) (*models.Invoice, error)
	Update(invoice *models.Invoice) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Invoice, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Customer    CustomerRepository
	Vehicle     VehicleRepository
	ServiceBay  ServiceBayRepository
	Appointment AppointmentRepository
	Invoice     InvoiceRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Customer:    NewCustomerRepository(db),
		Vehicle:     NewVehicleRepository(db),
		ServiceBay:  NewServiceBayRepository(db),
		Appointment: NewAppointmentRepository(db),
		Invoice:     NewInvoiceRepository(db),
	}
}
