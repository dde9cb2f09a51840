package controllers

import (
	"courseplatform/database"
	"courseplatform/middleware"
	"courseplatform/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseSummary is the list-view shape of a course
type CourseSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TopicCount    int    `json:"topicCount"`
	SubtopicCount int    `json:"subtopicCount"`
}

// orderedTopics preloads the course hierarchy in stable seed order
func orderedTopics(db *gorm.DB) *gorm.DB {
	return db.Preload("Topics", func(db *gorm.DB) *gorm.DB {
		return db.Order("topics.id asc")
	}).Preload("Topics.Subtopics", func(db *gorm.DB) *gorm.DB {
		return db.Order("subtopics.id asc")
	})
}

// GetAllCourses returns course summaries. The catalog is public.
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := orderedTopics(database.Database.Db).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	summaries := make([]CourseSummary, len(courses))
	for i, course := range courses {
		subtopicCount := 0
		for _, topic := range course.Topics {
			subtopicCount += len(topic.Subtopics)
		}
		summaries[i] = CourseSummary{
			ID:            course.ID,
			Title:         course.Title,
			Description:   course.Description,
			TopicCount:    len(course.Topics),
			SubtopicCount: subtopicCount,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": summaries,
	})
}

// GetCourseDetails returns the full course hierarchy
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var course models.Course
	if err := orderedTopics(database.Database.Db).Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", course)
}
