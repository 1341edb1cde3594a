package controllers

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/supremebiotech/pestcontrol-crm/db"
	"github.com/supremebiotech/pestcontrol-crm/middleware"
	"github.com/supremebiotech/pestcontrol-crm/models"
	"github.com/supremebiotech/pestcontrol-crm/redis"
	"github.com/supremebiotech/pestcontrol-crm/utils"
	"github.com/supremebiotech/pestcontrol-crm/validation"
)

type SignupInput struct {
	FirstName       string `json:"first_name" form:"first_name"`
	LastName        string `json:"last_name" form:"last_name"`
	Email           string `json:"email" form:"email"`
	PhoneNumber     string `json:"phone_number" form:"phone_number"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// customerEmailTaken reports whether another customer already registered the
// email. Email uniqueness is global; excludeID skips the caller's own row
// when editing.
func customerEmailTaken(excludeID uint) func(string) (bool, error) {
	return func(value string) (bool, error) {
		var count int64
		q := db.DB.Model(&models.Customer{}).Where("email = ?", value)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		err := q.Count(&count).Error
		return count > 0, err
	}
}

// customerPhoneTaken is the phone-number counterpart. The lookup runs on the
// normalized 11-digit form, which is also what gets stored.
func customerPhoneTaken(excludeID uint) func(string) (bool, error) {
	return func(value string) (bool, error) {
		var count int64
		q := db.DB.Model(&models.Customer{}).Where("phone_number = ?", validation.NormalizePhone(value))
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		err := q.Count(&count).Error
		return count > 0, err
	}
}

func signupRules() validation.RuleSet {
	return validation.RuleSet{
		validation.Required("first_name"),
		validation.Required("last_name"),
		validation.Required("email"),
		validation.Email("email"),
		validation.Unique("email", "Email already registered", customerEmailTaken(0)),
		validation.Required("phone_number"),
		validation.Phone("phone_number"),
		validation.Unique("phone_number", "Phone number already registered", customerPhoneTaken(0)),
		validation.Required("password"),
		validation.Required("confirm_password"),
		validation.Match("password", "confirm_password", validation.MsgPasswordMatch),
	}
}

// Register handles customer signup
func Register(c *fiber.Ctx) error {
	input := new(SignupInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	form := validation.Form{
		"first_name":       input.FirstName,
		"last_name":        input.LastName,
		"email":            input.Email,
		"phone_number":     input.PhoneNumber,
		"password":         input.Password,
		"confirm_password": input.ConfirmPassword,
	}

	errs, err := signupRules().Apply(form)
	if err != nil {
		log.Printf("Signup validation lookup failed: %v", err)
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

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Get("password")), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	customer := models.Customer{
		FirstName:   form.Get("first_name"),
		LastName:    form.Get("last_name"),
		Email:       form.Get("email"),
		PhoneNumber: validation.NormalizePhone(form.Get("phone_number")),
		Password:    string(hashedPassword),
	}

	if err := db.DB.Create(&customer).Error; err != nil {
		log.Printf("Error creating customer: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred. Please try again.",
			Error:   err.Error(),
		})
	}

	// Auto-login after registration
	token, refreshToken, err := issueTokenPair(&customer)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"customer": fiber.Map{
			"id":           customer.ID,
			"name":         customer.FullName(),
			"email":        customer.Email,
			"phone_number": customer.PhoneNumber,
		},
	})
}

// Login handles customer authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	// The response never reveals whether the email or the password was wrong.
	var customer models.Customer
	if db.DB.Where("email = ?", input.Email).First(&customer).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	token, refreshToken, err := issueTokenPair(&customer)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"customer": fiber.Map{
			"id":           customer.ID,
			"name":         customer.FullName(),
			"email":        customer.Email,
			"phone_number": customer.PhoneNumber,
		},
	})
}

// Logout revokes the presented token by blacklisting it until its expiry.
func Logout(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No authentication token",
		})
	}

	ttl := 24 * time.Hour
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if exp, ok := claims["exp"].(float64); ok {
			if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
				ttl = remaining
			}
		}
	}

	if err := redis.Client.Set(redis.Ctx, middleware.BlacklistKey(token.Raw), "revoked", ttl).Err(); err != nil {
		log.Printf("Failed to blacklist token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log out",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// GetProfile returns the current customer's account record
func GetProfile(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)

	var customer models.Customer
	if err := db.DB.Where("id = ?", customerID).First(&customer).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Session expired. Please log in again.",
		})
	}

	// Don't send password
	customer.Password = ""

	return c.JSON(customer)
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken" form:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret()), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	newClaims := jwt.MapClaims{
		"id":    claims["id"],
		"email": claims["email"],
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	}

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	tokenString, err := newToken.SignedString([]byte(jwtSecret()))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}

func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return secret
}

// issueTokenPair creates the access and refresh tokens that stand in for a
// browser session.
func issueTokenPair(customer *models.Customer) (string, string, error) {
	claims := jwt.MapClaims{
		"id":    customer.ID,
		"email": customer.Email,
		"name":  customer.FullName(),
		"exp":   time.Now().Add(time.Hour * 24).Unix(), // 24 hour expiration
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtSecret()))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":    customer.ID,
		"email": customer.Email,
		"exp":   time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 day expiration
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(jwtSecret()))
	if err != nil {
		return "", "", err
	}

	return tokenString, refreshTokenString, nil
}
