package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"courseplatform/config"
	"courseplatform/database"
	"courseplatform/middleware"
	"courseplatform/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *config.Config, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	cfg := &config.Config{JWTKey: "test-secret", JWTExpiry: 3600, SaltRound: bcrypt.MinCost}

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/courses", GetAllCourses)
	api.Get("/courses/:id", GetCourseDetails)
	api.Post("/courses/:id/enroll", middleware.Protected(cfg), EnrollInCourse)
	api.Post("/subtopics/:id/complete", middleware.Protected(cfg), MarkSubtopicComplete)
	api.Get("/enrollments/:id/progress", middleware.Protected(cfg), GetEnrollmentProgress)

	return app, cfg, db
}

// seedCatalog creates a course with 2 topics and 3 subtopics total
func seedCatalog(t *testing.T, db *gorm.DB) models.Course {
	t.Helper()

	course := models.Course{
		ID:          "physics-101",
		Title:       "Physics 101",
		Description: "Introductory mechanics",
		Topics: []models.Topic{
			{
				Slug:  "kinematics",
				Title: "Kinematics",
				Subtopics: []models.Subtopic{
					{Slug: "velocity", Title: "Velocity", Content: "Velocity is the rate of change of position."},
					{Slug: "acceleration", Title: "Acceleration", Content: "Acceleration is the rate of change of velocity."},
				},
			},
			{
				Slug:  "dynamics",
				Title: "Dynamics",
				Subtopics: []models.Subtopic{
					{Slug: "newtons-laws", Title: "Newton's Laws", Content: "Force equals mass times acceleration."},
				},
			},
		},
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Email: email, Password: string(hashed), Roles: "USER"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func bearerToken(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(cfg, user)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, app *fiber.App, method, target, auth string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func decodeBody(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}
