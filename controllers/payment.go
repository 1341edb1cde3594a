package controllers

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/supremebiotech/pestcontrol-crm/db"
	"github.com/supremebiotech/pestcontrol-crm/models"
	"github.com/supremebiotech/pestcontrol-crm/utils"
)

const maxProofSize = 5 << 20 // 5 MB

var allowedProofExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// validateProofFile checks a payment-proof upload before it leaves the
// request handler. Only jpg/jpeg/png/pdf up to 5 MB are accepted.
func validateProofFile(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedProofExts[ext] {
		return fmt.Errorf("only jpg, jpeg, png or pdf files are accepted")
	}
	if size > maxProofSize {
		return fmt.Errorf("file must not exceed 5 MB")
	}
	return nil
}

// GetPendingPayments lists the caller's bookings awaiting payment
func GetPendingPayments(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)

	var services []models.Service
	if err := db.DB.Preload("Property").
		Where("customer_id = ? AND status = ?", customerID, models.StatusPendingPayment).
		Order("created_at DESC").
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch pending payments",
			Error:   err.Error(),
		})
	}
	return c.JSON(services)
}

// GetPaymentInstructions returns the remittance details for one booking
func GetPaymentInstructions(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)
	id := c.Params("id")

	var service models.Service
	if err := db.DB.Preload("Property").
		Where("id = ? AND customer_id = ? AND status = ?", id, customerID, models.StatusPendingPayment).
		First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	return c.JSON(fiber.Map{
		"reference_number": service.ReferenceNumber,
		"property":         service.Property.PropertyName,
		"instructions": "Settle the inspection fee via bank transfer or GCash, " +
			"then upload a photo or PDF of your proof of payment. " +
			"Use the reference number as the transfer note.",
	})
}

// SubmitPaymentProof stores a proof-of-payment file and schedules the booking
func SubmitPaymentProof(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)
	id := c.Params("id")

	var service models.Service
	if err := db.DB.Where("id = ? AND customer_id = ?", id, customerID).First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	if service.Status != models.StatusPendingPayment {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "This booking is not awaiting payment",
		})
	}

	file, err := c.FormFile("payment_proof")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ValidationResponse{
			Message: "Please correct the highlighted fields",
			Errors:  map[string]string{"payment_proof": "Proof of payment is required"},
		})
	}

	if err := validateProofFile(file.Filename, file.Size); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ValidationResponse{
			Message: "Please correct the highlighted fields",
			Errors:  map[string]string{"payment_proof": err.Error()},
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open payment proof",
		})
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	publicID := fmt.Sprintf("service_%d_%d%s", service.ID, time.Now().Unix(), ext)

	secureURL, err := utils.UploadToCloudinary(f, publicID, "payment_proofs", ext)
	if err != nil {
		log.Printf("Failed to upload payment proof for service %d: %v", service.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload payment proof",
		})
	}

	service.PaymentProofURL = secureURL
	if err := service.UpdateStatus(db.DB, models.StatusScheduled); err != nil {
		log.Printf("Failed to schedule service %d after payment: %v", service.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred. Please try again.",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":           "Payment proof received. Your inspection is now scheduled.",
		"payment_proof_url": service.PaymentProofURL,
		"status":            service.Status,
	})
}
