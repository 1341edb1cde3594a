package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/supremebiotech/pestcontrol-crm/db"
	"github.com/supremebiotech/pestcontrol-crm/models"
	"github.com/supremebiotech/pestcontrol-crm/utils"
	"github.com/supremebiotech/pestcontrol-crm/validation"
)

// GetHome returns the authenticated dashboard summary
func GetHome(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)

	var propertyCount int64
	if err := db.DB.Model(&models.Property{}).Where("customer_id = ?", customerID).Count(&propertyCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load dashboard",
			Error:   err.Error(),
		})
	}

	statusCounts := map[models.ServiceStatus]int64{}
	rows := []struct {
		Status models.ServiceStatus
		Count  int64
	}{}
	if err := db.DB.Model(&models.Service{}).
		Select("status, count(*) as count").
		Where("customer_id = ?", customerID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load dashboard",
			Error:   err.Error(),
		})
	}
	for _, row := range rows {
		statusCounts[row.Status] = row.Count
	}

	return c.JSON(fiber.Map{
		"customer_name":  c.Locals("customerName"),
		"property_count": propertyCount,
		"services":       statusCounts,
	})
}

type ProfileUpdateInput struct {
	FirstName   string `json:"first_name" form:"first_name"`
	LastName    string `json:"last_name" form:"last_name"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
}

// UpdateProfile edits name and phone. Email is fixed at signup.
func UpdateProfile(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)

	input := new(ProfileUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	form := validation.Form{
		"first_name":   input.FirstName,
		"last_name":    input.LastName,
		"phone_number": input.PhoneNumber,
	}

	rules := validation.RuleSet{
		validation.Required("first_name"),
		validation.Required("last_name"),
		validation.Required("phone_number"),
		validation.Phone("phone_number"),
		validation.Unique("phone_number", "Phone number already registered", customerPhoneTaken(customerID)),
	}

	errs, err := rules.Apply(form)
	if err != nil {
		log.Printf("Profile validation lookup failed: %v", err)
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

	var customer models.Customer
	if db.DB.Where("id = ?", customerID).First(&customer).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Session expired. Please log in again.",
		})
	}

	customer.FirstName = form.Get("first_name")
	customer.LastName = form.Get("last_name")
	customer.PhoneNumber = validation.NormalizePhone(form.Get("phone_number"))

	if err := db.DB.Save(&customer).Error; err != nil {
		log.Printf("Error updating customer %d: %v", customerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred. Please try again.",
			Error:   err.Error(),
		})
	}

	customer.Password = ""
	return c.JSON(customer)
}

type PasswordChangeInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// ChangePassword verifies the current password and stores a new hash.
func ChangePassword(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)

	input := new(PasswordChangeInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	form := validation.Form{
		"current_password": input.CurrentPassword,
		"new_password":     input.NewPassword,
		"confirm_password": input.ConfirmPassword,
	}

	rules := validation.RuleSet{
		validation.Required("current_password"),
		validation.Required("new_password"),
		validation.Required("confirm_password"),
		validation.Match("new_password", "confirm_password", validation.MsgPasswordMatch),
	}

	errs, err := rules.Apply(form)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred. Please try again.",
			Error:   err.Error(),
		})
	}

	var customer models.Customer
	if errs.Ok() {
		if db.DB.Where("id = ?", customerID).First(&customer).RowsAffected == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session expired. Please log in again.",
			})
		}
		if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(input.CurrentPassword)) != nil {
			errs.Add("current_password", "Current password is incorrect")
		}
	}
	if !errs.Ok() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ValidationResponse{
			Message: "Please correct the highlighted fields",
			Errors:  errs,
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Get("new_password")), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	customer.Password = string(hashedPassword)
	if err := db.DB.Save(&customer).Error; err != nil {
		log.Printf("Error changing password for customer %d: %v", customerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred. Please try again.",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Password updated successfully",
	})
}
