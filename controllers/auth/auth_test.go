package authController

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"courseplatform/config"
	"courseplatform/database"
	authValidator "courseplatform/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	cfg := &config.Config{JWTKey: "test-secret", JWTExpiry: 3600, SaltRound: bcrypt.MinCost}

	app := fiber.New()
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", authValidator.Register(), Register(cfg))
	authGroup.Post("/login", authValidator.Login(), Login(cfg))
	return app
}

type envelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func postJSON(t *testing.T, app *fiber.App, target string, payload map[string]string) (*http.Response, envelope) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	resp, body := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "student@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "student@example.com", body.Data["email"])
	assert.NotZero(t, body.Data["id"])

	resp, body = postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "student@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body.Data["token"])
	assert.Equal(t, "student@example.com", body.Data["email"])
	assert.Equal(t, float64(3600), body.Data["expiresIn"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	resp, _ := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "student@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "student@example.com",
		"password": "another-password",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginBadCredentials(t *testing.T) {
	app := setupApp(t)

	resp, _ := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "student@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "student@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	resp, _ := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "not-an-email",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "student@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
