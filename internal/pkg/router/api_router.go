package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/garagehub/GarageHub/app/controllers"
	apiv1 "github.com/garagehub/GarageHub/internal/api/v1"
	"github.com/garagehub/GarageHub/internal/pkg/constants"
	"github.com/garagehub/GarageHub/internal/pkg/entitlements"
	"github.com/garagehub/GarageHub/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.APIRoute, limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer()
	apiv1.RegisterHandlers(v1, apiServer)

	// Session-authenticated staff surface
	auth := v1.Group("", middleware.RequireAPISessionAuth)

	// Entitlement and subscription surface
	auth.Get("/entitlements", controllers.HandleListEntitlements)
	auth.Get("/entitlements/:feature", controllers.HandleGetEntitlement)
	auth.Get("/tiers", controllers.HandleListTiers)
	auth.Get("/tiers/compare", controllers.HandleCompareTiers)
	auth.Post("/tiers/:target/validate", controllers.HandleValidateTierChange)
	auth.Post("/tiers/:target/change", middleware.RequireAPIOwner, controllers.HandleChangeTier)
	auth.Get("/subscription", controllers.HandleGetSubscription)

	// Staff accounts (owner-managed)
	auth.Get("/users", middleware.RequireAPIOwner, controllers.HandleListUsers)
	auth.Post("/users", middleware.RequireAPIOwner, controllers.HandleCreateUser)
	auth.Put("/users/:id", middleware.RequireAPIOwner, controllers.HandleUpdateUser)
	auth.Delete("/users/:id", middleware.RequireAPIOwner, controllers.HandleDeleteUser)

	// Customers and their vehicles
	auth.Get("/customers", controllers.HandleListCustomers)
	auth.Post("/customers", controllers.HandleCreateCustomer)
	auth.Get("/customers/:uuid", controllers.HandleGetCustomer)
	auth.Put("/customers/:uuid", controllers.HandleUpdateCustomer)
	auth.Delete("/customers/:uuid", controllers.HandleDeleteCustomer)
	auth.Get("/customers/:customer_id/vehicles", controllers.HandleListVehicles)

	// Vehicles
	auth.Get("/vehicles", controllers.HandleListVehicles)
	auth.Post("/vehicles", controllers.HandleCreateVehicle)
	auth.Get("/vehicles/:uuid", controllers.HandleGetVehicle)
	auth.Put("/vehicles/:uuid", controllers.HandleUpdateVehicle)
	auth.Delete("/vehicles/:uuid", controllers.HandleDeleteVehicle)

	// Appointments
	auth.Get("/appointments", controllers.HandleListAppointments)
	auth.Post("/appointments", controllers.HandleCreateAppointment)
	auth.Get("/appointments/:uuid", controllers.HandleGetAppointment)
	auth.Put("/appointments/:uuid", controllers.HandleUpdateAppointment)
	auth.Delete("/appointments/:uuid", controllers.HandleDeleteAppointment)

	// Service bays (owner-managed)
	auth.Get("/service-bays", controllers.HandleListServiceBays)
	auth.Post("/service-bays", middleware.RequireAPIOwner, controllers.HandleCreateServiceBay)
	auth.Put("/service-bays/:id", middleware.RequireAPIOwner, controllers.HandleUpdateServiceBay)
	auth.Delete("/service-bays/:id", middleware.RequireAPIOwner, controllers.HandleDeleteServiceBay)

	// Invoicing (feature-gated)
	invoices := auth.Group("/invoices", middleware.RequireFeature(entitlements.FeatureInvoicing))
	invoices.Get("/", controllers.HandleListInvoices)
	invoices.Post("/", controllers.HandleCreateInvoice)
	invoices.Get("/:uuid", controllers.HandleGetInvoice)
	invoices.Put("/:uuid/status", controllers.HandleUpdateInvoiceStatus)
	invoices.Delete("/:uuid", controllers.HandleDeleteInvoice)

	// Reports (feature-gated, owner only)
	reports := auth.Group("/reports", middleware.RequireAPIOwner, middleware.RequireFeature(entitlements.FeatureReports))
	reports.Get("/revenue", controllers.HandleRevenueReport)

	// Owner dashboard
	auth.Get("/dashboard", middleware.RequireAPIOwner, controllers.HandleDashboardStats)
	auth.Post("/dashboard/counters/reset", middleware.RequireAPIOwner, controllers.HandleResetCounters)

	// Notifications
	auth.Get("/notifications", controllers.HandleListNotifications)
	auth.Post("/notifications/:id/read", controllers.HandleMarkNotificationRead)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
