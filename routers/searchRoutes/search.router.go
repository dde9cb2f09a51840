package searchRoutes

import (
	searchController "courseplatform/controllers/search"

	"github.com/gofiber/fiber/v2"
)

// SetupSearchRoutes sets up the public search route
func SetupSearchRoutes(app *fiber.App) {
	app.Get("/api/search", searchController.Search)
}
