package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/supremebiotech/pestcontrol-crm/controllers"
	"github.com/supremebiotech/pestcontrol-crm/middleware"
)

// SetupPropertyRoutes configures property registration and management
func SetupPropertyRoutes(app *fiber.App) {
	property := app.Group("/properties", middleware.Protected())
	property.Get("/", controllers.GetProperties)
	property.Post("/", controllers.CreateProperty)
	property.Get("/:id", controllers.GetProperty)
	property.Patch("/:id", controllers.UpdateProperty)
	property.Delete("/:id", controllers.DeleteProperty)
}
