package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/supremebiotech/pestcontrol-crm/controllers"
	"github.com/supremebiotech/pestcontrol-crm/middleware"
)

// SetupServiceRoutes configures booking, status and payment routes
func SetupServiceRoutes(app *fiber.App) {
	service := app.Group("/services", middleware.Protected())
	service.Get("/", controllers.GetServices)
	service.Post("/", controllers.BookInspection)
	service.Get("/pending-payment", controllers.GetPendingPayments)
	service.Get("/:id", controllers.GetService)
	service.Patch("/:id/status", controllers.UpdateServiceStatus)
	service.Get("/:id/payment-instructions", controllers.GetPaymentInstructions)
	service.Post("/:id/payment-proof", controllers.SubmitPaymentProof)
}
