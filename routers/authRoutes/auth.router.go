package authRoutes

import (
	"courseplatform/config"
	authController "courseplatform/controllers/auth"
	authValidator "courseplatform/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration and login routes
func SetupAuthRoutes(app *fiber.App, cfg *config.Config) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register(cfg))
	authGroup.Post("/login", authValidator.Login(), authController.Login(cfg))
}
