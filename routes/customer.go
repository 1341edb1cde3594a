package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/supremebiotech/pestcontrol-crm/controllers"
	"github.com/supremebiotech/pestcontrol-crm/middleware"
)

// SetupCustomerRoutes configures the account area
func SetupCustomerRoutes(app *fiber.App) {
	customer := app.Group("/customer", middleware.Protected())
	customer.Get("/home", controllers.GetHome)
	customer.Get("/profile", controllers.GetProfile)
	customer.Patch("/profile", controllers.UpdateProfile)
	customer.Post("/profile/password", controllers.ChangePassword)
}
