package courseRoutes

import (
	"courseplatform/config"
	controllers "courseplatform/controllers/course"
	"courseplatform/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog, enrollment and progress routes
func SetupCourseRoutes(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api")

	// Catalog browsing is public
	api.Get("/courses", controllers.GetAllCourses)
	api.Get("/courses/:id", controllers.GetCourseDetails)

	// Enrollment
	api.Post("/courses/:id/enroll", middleware.Protected(cfg), controllers.EnrollInCourse)

	// Progress tracking
	api.Post("/subtopics/:id/complete", middleware.Protected(cfg), controllers.MarkSubtopicComplete)
	api.Get("/enrollments/:id/progress", middleware.Protected(cfg), controllers.GetEnrollmentProgress)
}
