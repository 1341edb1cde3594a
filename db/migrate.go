package db

import (
	"fmt"
	"log"

	"github.com/supremebiotech/pestcontrol-crm/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called. Unique indexes on
	// customer email/phone and (customer_id, property_name) are the
	// schema-level backstop for the application's check-then-act
	// uniqueness validation.
	err := DB.AutoMigrate(
		&models.Customer{},
		&models.Property{},
		&models.Service{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
