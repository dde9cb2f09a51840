package searchController

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courseplatform/database"
	"courseplatform/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/api/search", Search)
	return app, db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	course := models.Course{
		ID:          "physics-101",
		Title:       "Physics 101",
		Description: "Introductory mechanics covering motion and forces.",
		Topics: []models.Topic{
			{
				Slug:  "kinematics",
				Title: "Kinematics",
				Subtopics: []models.Subtopic{
					{Slug: "velocity", Title: "Velocity", Content: "Velocity is the rate of change of position with respect to time. " + strings.Repeat("It is a vector quantity with magnitude and direction. ", 5)},
				},
			},
		},
	}
	require.NoError(t, db.Create(&course).Error)

	other := models.Course{ID: "calculus-basics", Title: "Calculus Basics", Description: "Limits and derivatives."}
	require.NoError(t, db.Create(&other).Error)
}

type searchEnvelope struct {
	Status bool `json:"status"`
	Data   struct {
		Query   string         `json:"query"`
		Results []SearchResult `json:"results"`
	} `json:"data"`
}

func doSearch(t *testing.T, app *fiber.App, query string) searchEnvelope {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/search?q="+query, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	var env searchEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestSearchGroupsMatchesByCourse(t *testing.T) {
	app, db := setupApp(t)
	seedCatalog(t, db)

	env := doSearch(t, app, "velocity")

	require.Len(t, env.Data.Results, 1)
	result := env.Data.Results[0]
	assert.Equal(t, "physics-101", result.CourseID)
	assert.Equal(t, "Physics 101", result.CourseTitle)

	// hit on both the subtopic title and its content
	types := make([]string, len(result.Matches))
	for i, m := range result.Matches {
		types[i] = m.Type
	}
	assert.Contains(t, types, "subtopic")
	assert.Contains(t, types, "content")

	for _, m := range result.Matches {
		if m.Type == "subtopic" || m.Type == "content" {
			assert.Equal(t, "velocity", m.SubtopicID)
			assert.Equal(t, "Kinematics", m.TopicTitle)
		}
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	app, db := setupApp(t)
	seedCatalog(t, db)

	env := doSearch(t, app, "PHYSICS")
	require.Len(t, env.Data.Results, 1)
	assert.Equal(t, "physics-101", env.Data.Results[0].CourseID)
}

func TestSearchEmptyQuery(t *testing.T) {
	app, db := setupApp(t)
	seedCatalog(t, db)

	env := doSearch(t, app, "")
	assert.Empty(t, env.Data.Results)
}

func TestSearchNoMatches(t *testing.T) {
	app, db := setupApp(t)
	seedCatalog(t, db)

	env := doSearch(t, app, "thermodynamics")
	assert.Empty(t, env.Data.Results)
}

func TestSearchSnippetTruncation(t *testing.T) {
	app, db := setupApp(t)
	seedCatalog(t, db)

	env := doSearch(t, app, "direction")
	require.Len(t, env.Data.Results, 1)

	var contentMatch *Match
	for i, m := range env.Data.Results[0].Matches {
		if m.Type == "content" {
			contentMatch = &env.Data.Results[0].Matches[i]
		}
	}
	require.NotNil(t, contentMatch)

	// the seeded content is well over 150 chars, so the snippet is windowed
	assert.Contains(t, strings.ToLower(contentMatch.Snippet), "direction")
	assert.True(t, strings.HasPrefix(contentMatch.Snippet, "...") || strings.HasSuffix(contentMatch.Snippet, "..."))
	assert.Less(t, len(contentMatch.Snippet), len("direction")+160)
}
