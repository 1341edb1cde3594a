package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/supremebiotech/pestcontrol-crm/cron"
	"github.com/supremebiotech/pestcontrol-crm/db"
	"github.com/supremebiotech/pestcontrol-crm/redis"
	"github.com/supremebiotech/pestcontrol-crm/routes"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 6 * 1024 * 1024, // payment proofs are capped at 5 MB
	})
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "Supreme Biotech Solutions",
			"message": "Pest-control services for homes and businesses",
		})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupCustomerRoutes(app)
	routes.SetupPropertyRoutes(app)
	routes.SetupServiceRoutes(app)

	log.Fatal(app.Listen(":8000"))
}
