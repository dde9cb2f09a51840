package controllers

import (
	"errors"

	"courseplatform/database"
	"courseplatform/middleware"
	"courseplatform/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse enrolls the authenticated user in a course. At most one
// enrollment exists per (user, course); the unique index enforces this
// against racing requests.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	courseID := c.Params("id")

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Fast path: already enrolled
	var existing models.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	var totalSubtopics int64
	database.Database.Db.Model(&models.Subtopic{}).
		Joins("JOIN topics ON topics.id = subtopics.topic_id").
		Where("topics.course_id = ?", courseID).
		Count(&totalSubtopics)

	enrollment := models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		TotalCount: int(totalSubtopics),
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", fiber.Map{
		"enrollmentId": enrollment.ID,
		"courseId":     course.ID,
		"courseTitle":  course.Title,
		"enrolledAt":   enrollment.EnrolledAt,
	})
}
