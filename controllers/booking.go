package controllers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/supremebiotech/pestcontrol-crm/db"
	"github.com/supremebiotech/pestcontrol-crm/models"
	"github.com/supremebiotech/pestcontrol-crm/utils"
	"github.com/supremebiotech/pestcontrol-crm/validation"
)

type BookingInput struct {
	PropertyID            string `json:"property_id" form:"property_id"`
	PreferredService      string `json:"preferred_service" form:"preferred_service"`
	PreferredServiceOther string `json:"preferred_service_other" form:"preferred_service_other"`
	PestProblem           string `json:"pest_problem" form:"pest_problem"`
	PestProblemOther      string `json:"pest_problem_other" form:"pest_problem_other"`
	PreferredDate         string `json:"preferred_date" form:"preferred_date"`
	TimeSlot              string `json:"time_slot" form:"time_slot"`
}

// BookInspection creates a new inspection request for one of the caller's
// properties.
func BookInspection(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	form := validation.Form{
		"property_id":             input.PropertyID,
		"preferred_service":       input.PreferredService,
		"preferred_service_other": input.PreferredServiceOther,
		"pest_problem":            input.PestProblem,
		"pest_problem_other":      input.PestProblemOther,
		"preferred_date":          input.PreferredDate,
		"time_slot":               input.TimeSlot,
	}

	owned := func(propertyID uint) (bool, error) {
		var count int64
		err := db.DB.Model(&models.Property{}).
			Where("id = ? AND customer_id = ?", propertyID, customerID).
			Count(&count).Error
		return count > 0, err
	}

	errs, err := bookingRules(owned).Apply(form)
	if err != nil {
		log.Printf("Booking validation lookup failed: %v", err)
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

	propertyID, _ := strconv.ParseUint(form.Get("property_id"), 10, 64)
	preferredDate, _ := parsePreferredDate(form.Get("preferred_date"))

	service := models.Service{
		CustomerID: customerID,
		PropertyID: uint(propertyID),
		PreferredService: validation.EffectiveChoice(
			form.Get("preferred_service"), form.Get("preferred_service_other"), otherChoice),
		PestProblem: validation.EffectiveChoice(
			form.Get("pest_problem"), form.Get("pest_problem_other"), otherChoice),
		PreferredDate: preferredDate,
		TimeSlot:      models.TimeSlot(form.Get("time_slot")),
	}

	if err := db.DB.Create(&service).Error; err != nil {
		log.Printf("Error creating service booking: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred. Please try again.",
			Error:   err.Error(),
		})
	}

	// Confirmation mail is best effort; the booking stands either way.
	go sendBookingConfirmation(service.ID)

	if err := db.DB.Preload("Property").First(&service, service.ID).Error; err != nil {
		log.Printf("Error reloading service %d: %v", service.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

// GetServices lists the caller's bookings, optionally filtered by status
func GetServices(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)

	q := db.DB.Preload("Property").Where("customer_id = ?", customerID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var services []models.Service
	if err := q.Order("created_at DESC").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}
	return c.JSON(services)
}

// GetService returns one of the caller's bookings
func GetService(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)
	id := c.Params("id")

	var service models.Service
	if err := db.DB.Preload("Property").
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	return c.JSON(service)
}

// UpdateServiceStatus applies a workflow transition to a booking
func UpdateServiceStatus(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)
	id := c.Params("id")

	type StatusInput struct {
		Status models.ServiceStatus `json:"status" form:"status"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	var service models.Service
	if err := db.DB.Where("id = ? AND customer_id = ?", id, customerID).First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	if err := service.UpdateStatus(db.DB, input.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid status change",
			Error:   err.Error(),
		})
	}

	return c.JSON(service)
}

// sendBookingConfirmation mails the customer a summary of the new request
func sendBookingConfirmation(serviceID uint) {
	var service models.Service
	if err := db.DB.Preload("Customer").Preload("Property").First(&service, serviceID).Error; err != nil {
		log.Printf("Failed to load service %d for confirmation email: %v", serviceID, err)
		return
	}

	subject := fmt.Sprintf("Booking received - %s", service.ReferenceNumber)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your inspection request.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Property:</strong> %s</li>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Pest Problem:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time Slot:</strong> %s</li>
		</ul>
		<p>Our team will review your request and get back to you with an inspection schedule.</p>
		<p>Best regards,</p>
		<p>Supreme Biotech Solutions</p>
	`, service.Customer.FullName(), service.ReferenceNumber, service.Property.PropertyName,
		service.PreferredService, service.PestProblem,
		service.PreferredDate.Format(preferredDateLayout), service.TimeSlot)

	if err := utils.SendEmail(service.Customer.Email, subject, body); err != nil {
		log.Printf("Failed to send confirmation for service %d: %v", serviceID, err)
	}
}
