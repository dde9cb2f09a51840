package authController

import (
	"errors"
	"log"

	"courseplatform/config"
	"courseplatform/database"
	"courseplatform/middleware"
	"courseplatform/models"
	authValidator "courseplatform/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a new user account
func Register(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		db := database.Database.Db

		// Check if email already exists
		if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), cfg.SaltRound)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}

		newUser := models.User{
			Email:    reqData.Email,
			Password: string(hashedPassword),
			Roles:    "USER",
		}

		if err := db.Create(&newUser).Error; err != nil {
			// The unique index on email is the real guarantee; a racing
			// duplicate registration lands here.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
			}
			log.Printf("Error saving user to database: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "User registered successfully.", fiber.Map{
			"id":      newUser.ID,
			"email":   newUser.Email,
			"message": "User registered successfully",
		})
	}
}

// Login authenticates a user and issues a bearer token
func Login(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
		}

		token, err := middleware.GenerateJWT(cfg, &user)
		if err != nil {
			log.Printf("Error generating JWT: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
			"token":     token,
			"email":     user.Email,
			"expiresIn": cfg.JWTExpiry,
		})
	}
}
