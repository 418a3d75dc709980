package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/garagehub/GarageHub/app/controllers"
	"github.com/garagehub/GarageHub/internal/pkg/constants"
	"github.com/garagehub/GarageHub/internal/pkg/middleware"
	"github.com/garagehub/GarageHub/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	app.Post(constants.LoginRoute, controllers.HandleAuthLogin)
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
