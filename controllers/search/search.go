package searchController

import (
	"regexp"
	"strings"

	"courseplatform/database"
	"courseplatform/middleware"
	"courseplatform/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Match is a single hit inside a course
type Match struct {
	Type          string `json:"type"` // course, topic, subtopic, content
	TopicTitle    string `json:"topicTitle,omitempty"`
	SubtopicID    string `json:"subtopicId,omitempty"`
	SubtopicTitle string `json:"subtopicTitle,omitempty"`
	Snippet       string `json:"snippet"`
}

// SearchResult groups matches per course
type SearchResult struct {
	CourseID    string  `json:"courseId"`
	CourseTitle string  `json:"courseTitle"`
	Matches     []Match `json:"matches"`
}

// Search runs a case-insensitive scan over the catalog text. Empty or blank
// queries return an empty result list.
func Search(c *fiber.Ctx) error {
	query := c.Query("q")

	results := []SearchResult{}
	if strings.TrimSpace(query) == "" {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Search completed!", fiber.Map{
			"query":   query,
			"results": results,
		})
	}

	pattern, err := regexp.Compile("(?i)" + query)
	if err != nil {
		// queries are plain text first, regex second
		pattern = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	}

	var courses []models.Course
	if err := database.Database.Db.Preload("Topics", func(db *gorm.DB) *gorm.DB {
		return db.Order("topics.id asc")
	}).Preload("Topics.Subtopics", func(db *gorm.DB) *gorm.DB {
		return db.Order("subtopics.id asc")
	}).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to search courses!", nil)
	}

	for _, course := range courses {
		matches := scanCourse(&course, pattern, query)
		if len(matches) > 0 {
			results = append(results, SearchResult{
				CourseID:    course.ID,
				CourseTitle: course.Title,
				Matches:     matches,
			})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Search completed!", fiber.Map{
		"query":   query,
		"results": results,
	})
}

func scanCourse(course *models.Course, pattern *regexp.Regexp, query string) []Match {
	var matches []Match

	if pattern.MatchString(course.Title) {
		matches = append(matches, Match{Type: "course", Snippet: course.Title})
	}
	if pattern.MatchString(course.Description) {
		matches = append(matches, Match{Type: "course", Snippet: truncate(course.Description, query)})
	}

	for _, topic := range course.Topics {
		if pattern.MatchString(topic.Title) {
			matches = append(matches, Match{
				Type:       "topic",
				TopicTitle: topic.Title,
				Snippet:    topic.Title,
			})
		}

		for _, subtopic := range topic.Subtopics {
			if pattern.MatchString(subtopic.Title) {
				matches = append(matches, Match{
					Type:          "subtopic",
					TopicTitle:    topic.Title,
					SubtopicID:    subtopic.Slug,
					SubtopicTitle: subtopic.Title,
					Snippet:       subtopic.Title,
				})
			}

			if pattern.MatchString(subtopic.Content) {
				matches = append(matches, Match{
					Type:          "content",
					TopicTitle:    topic.Title,
					SubtopicID:    subtopic.Slug,
					SubtopicTitle: subtopic.Title,
					Snippet:       truncate(subtopic.Content, query),
				})
			}
		}
	}

	return matches
}

// truncate trims long text to a window around the first occurrence of the
// query: 50 characters before, 100 after.
func truncate(text, query string) string {
	if len(text) <= 150 {
		return text
	}

	index := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if index == -1 {
		return text[:150] + "..."
	}

	start := index - 50
	if start < 0 {
		start = 0
	}
	end := index + len(query) + 100
	if end > len(text) {
		end = len(text)
	}

	snippet := text[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(text) {
		snippet = snippet + "..."
	}

	return snippet
}
