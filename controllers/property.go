package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/supremebiotech/pestcontrol-crm/db"
	"github.com/supremebiotech/pestcontrol-crm/models"
	"github.com/supremebiotech/pestcontrol-crm/utils"
	"github.com/supremebiotech/pestcontrol-crm/validation"
)

type PropertyInput struct {
	PropertyName string `json:"property_name" form:"property_name"`
	StreetNumber string `json:"street_number" form:"street_number"`
	Street       string `json:"street" form:"street"`
	City         string `json:"city" form:"city"`
	Province     string `json:"province" form:"province"`
	Country      string `json:"country" form:"country"`
	ZipCode      string `json:"zip_code" form:"zip_code"`
	PropertyType string `json:"property_type" form:"property_type"`
	FloorArea    string `json:"floor_area" form:"floor_area"`
}

func (in *PropertyInput) form() validation.Form {
	return validation.Form{
		"property_name": in.PropertyName,
		"street_number": in.StreetNumber,
		"street":        in.Street,
		"city":          in.City,
		"province":      in.Province,
		"country":       in.Country,
		"zip_code":      in.ZipCode,
		"property_type": in.PropertyType,
		"floor_area":    in.FloorArea,
	}
}

// propertyNameTaken checks name uniqueness within one customer's records
// only. excludeID skips the property being edited so re-submitting its own
// current name passes.
func propertyNameTaken(customerID, excludeID uint) func(string) (bool, error) {
	return func(value string) (bool, error) {
		var count int64
		q := db.DB.Model(&models.Property{}).
			Where("customer_id = ? AND property_name = ?", customerID, value)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		err := q.Count(&count).Error
		return count > 0, err
	}
}

const msgPropertyNameTaken = "Property name already registered. Please replace property name"

func propertyRules(nameTaken func(string) (bool, error)) validation.RuleSet {
	return validation.RuleSet{
		validation.Required("property_name"),
		validation.Unique("property_name", msgPropertyNameTaken, nameTaken),
		validation.Required("street_number"),
		validation.Required("street"),
		validation.Required("city"),
		validation.Required("province"),
		validation.Required("country"),
		validation.Required("zip_code"),
		validation.Required("property_type"),
		propertyTypeRule("property_type"),
		validation.Required("floor_area"),
		validation.PositiveDecimal("floor_area", "Floor area"),
	}
}

func propertyTypeRule(field string) validation.Rule {
	return func(f validation.Form, e validation.Errors) error {
		if v := f.Get(field); v != "" && !models.ValidPropertyType(models.PropertyType(v)) {
			e.Add(field, "Please select a valid property type")
		}
		return nil
	}
}

// GetProperties lists the caller's properties
func GetProperties(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)

	var properties []models.Property
	if err := db.DB.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch properties",
			Error:   err.Error(),
		})
	}
	return c.JSON(properties)
}

// GetProperty returns one of the caller's properties. A property belonging
// to another customer yields the same 404 as a nonexistent ID.
func GetProperty(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)
	id := c.Params("id")

	var property models.Property
	if err := db.DB.Where("id = ? AND customer_id = ?", id, customerID).First(&property).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}
	return c.JSON(property)
}

// CreateProperty registers a new property for the caller
func CreateProperty(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)

	input := new(PropertyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	form := input.form()
	errs, err := propertyRules(propertyNameTaken(customerID, 0)).Apply(form)
	if err != nil {
		log.Printf("Property validation lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred. Please try again.",
			Error:   err.Error(),
		})
	}
	if !errs.Ok() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ValidationResponse{
			Message: "Please correct the highlighted fields",
			Errors:  errs,
		})
	}

	floorArea, _ := strconv.ParseFloat(form.Get("floor_area"), 64)
	property := models.Property{
		CustomerID:   customerID,
		PropertyName: form.Get("property_name"),
		StreetNumber: form.Get("street_number"),
		Street:       form.Get("street"),
		City:         form.Get("city"),
		Province:     form.Get("province"),
		Country:      form.Get("country"),
		ZipCode:      form.Get("zip_code"),
		PropertyType: models.PropertyType(form.Get("property_type")),
		FloorArea:    floorArea,
	}

	if err := db.DB.Create(&property).Error; err != nil {
		log.Printf("Error creating property: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred. Please try again.",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

// UpdateProperty edits one of the caller's properties
func UpdateProperty(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)
	id := c.Params("id")

	var property models.Property
	if err := db.DB.Where("id = ? AND customer_id = ?", id, customerID).First(&property).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	input := new(PropertyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	form := input.form()
	errs, err := propertyRules(propertyNameTaken(customerID, property.ID)).Apply(form)
	if err != nil {
		log.Printf("Property validation lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred. Please try again.",
			Error:   err.Error(),
		})
	}
	if !errs.Ok() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ValidationResponse{
			Message: "Please correct the highlighted fields",
			Errors:  errs,
		})
	}

	floorArea, _ := strconv.ParseFloat(form.Get("floor_area"), 64)
	property.PropertyName = form.Get("property_name")
	property.StreetNumber = form.Get("street_number")
	property.Street = form.Get("street")
	property.City = form.Get("city")
	property.Province = form.Get("province")
	property.Country = form.Get("country")
	property.ZipCode = form.Get("zip_code")
	property.PropertyType = models.PropertyType(form.Get("property_type"))
	property.FloorArea = floorArea

	if err := db.DB.Save(&property).Error; err != nil {
		log.Printf("Error updating property %d: %v", property.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred. Please try again.",
			Error:   err.Error(),
		})
	}

	return c.JSON(property)
}

// DeleteProperty removes one of the caller's properties along with every
// service booked against it.
func DeleteProperty(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)
	id := c.Params("id")

	var property models.Property
	if err := db.DB.Where("id = ? AND customer_id = ?", id, customerID).First(&property).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", property.ID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
	if err != nil {
		log.Printf("Error deleting property %d: %v", property.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred. Please try again.",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Property deleted successfully",
	})
}
