package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/garagehub/GarageHub/app/controllers"
	"github.com/garagehub/GarageHub/app/repository"
	"github.com/garagehub/GarageHub/internal/pkg/middleware"
)

// APIServer implements the external integration surface. All routes except
// ping require the instance API key, which is only honored on tiers that
// include the api_access feature.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ping": "pong",
	})
}

// GetUpcomingAppointments returns the next scheduled appointments for
// external calendar integrations.
func (s *APIServer) GetUpcomingAppointments(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetAppointmentRepository()
	appointments, err := repo.ListUpcoming(50)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_server_error",
			"message": "Failed to load appointments",
		})
	}
	return c.JSON(fiber.Map{"appointments": appointments})
}

// GetVehicle returns vehicle metadata by UUID. Delegates to the existing
// controller for a consistent response shape.
func (s *APIServer) GetVehicle(c *fiber.Ctx) error {
	return controllers.HandleGetVehicle(c)
}

// GetSubscription exposes the subscription status to integrations.
func (s *APIServer) GetSubscription(c *fiber.Ctx) error {
	return controllers.HandleGetSubscription(c)
}

// RegisterHandlers attaches the v1 integration routes to the given router.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	ext := router.Group("/ext", middleware.APIKeyAuthMiddleware())
	ext.Get("/appointments/upcoming", s.GetUpcomingAppointments)
	ext.Get("/vehicles/:uuid", s.GetVehicle)
	ext.Get("/subscription", s.GetSubscription)
}
