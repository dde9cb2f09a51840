package controllers

import (
	"errors"
	"math"
	"strconv"
	"time"

	"courseplatform/database"
	"courseplatform/middleware"
	"courseplatform/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CompletedItem is one completed subtopic in a progress report
type CompletedItem struct {
	SubtopicID    string    `json:"subtopicId"`
	SubtopicTitle string    `json:"subtopicTitle"`
	CompletedAt   time.Time `json:"completedAt"`
}

// MarkSubtopicComplete records completion of a subtopic for the
// authenticated user. The operation is idempotent: a repeated call returns
// the original record with its original timestamp and writes nothing.
// Completion is gated on an enrollment in the owning course.
func MarkSubtopicComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	subtopicSlug := c.Params("id")

	var subtopic models.Subtopic
	if err := db.Where("slug = ?", subtopicSlug).First(&subtopic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subtopic not found!", nil)
	}

	// Resolve the owning course through the topic back-reference
	var topic models.Topic
	if err := db.Where("id = ?", subtopic.TopicID).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subtopic not found!", nil)
	}

	// Enrollment gate
	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, topic.CourseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled in this course to mark progress!", nil)
	}

	// Fast path: already completed
	var existing models.SubtopicProgress
	if err := db.Where("user_id = ? AND subtopic_id = ?", userID, subtopic.ID).First(&existing).Error; err == nil {
		return progressResponse(c, subtopicSlug, &existing)
	}

	progress := models.SubtopicProgress{
		UserID:     userID,
		SubtopicID: subtopic.ID,
		Completed:  true,
	}

	if err := db.Create(&progress).Error; err != nil {
		// A concurrent call won the insert. The unique index on
		// (user_id, subtopic_id) is the idempotence guarantee; collapse
		// to the winner's row instead of surfacing the conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("user_id = ? AND subtopic_id = ?", userID, subtopic.ID).First(&existing).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark subtopic as completed!", nil)
			}
			return progressResponse(c, subtopicSlug, &existing)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark subtopic as completed!", nil)
	}

	updateEnrollmentProgress(userID, topic.CourseID)

	return progressResponse(c, subtopicSlug, &progress)
}

func progressResponse(c *fiber.Ctx, subtopicSlug string, progress *models.SubtopicProgress) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subtopic marked as completed!", fiber.Map{
		"subtopicId":  subtopicSlug,
		"completed":   progress.Completed,
		"completedAt": progress.CompletedAt,
	})
}

// GetEnrollmentProgress computes the aggregate progress view for one of the
// caller's enrollments. Pure read; the cached progress fields on the
// enrollment row are never consulted.
func GetEnrollmentProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	// Strict ownership check: no cross-user progress visibility
	if enrollment.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own progress!", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	totalSubtopics := countCourseSubtopics(db, course.ID)

	items := completedItemsForCourse(db, userID, course.ID)

	completionPercentage := 0.0
	if totalSubtopics > 0 {
		completionPercentage = float64(len(items)) * 100.0 / float64(totalSubtopics)
		// round half-up on the hundredths digit
		completionPercentage = math.Round(completionPercentage*100) / 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollmentId":         enrollment.ID,
		"courseId":             course.ID,
		"courseTitle":          course.Title,
		"totalSubtopics":       totalSubtopics,
		"completedSubtopics":   len(items),
		"completionPercentage": completionPercentage,
		"completedItems":       items,
	})
}

func countCourseSubtopics(db *gorm.DB, courseID string) int {
	var total int64
	db.Model(&models.Subtopic{}).
		Joins("JOIN topics ON topics.id = subtopics.topic_id").
		Where("topics.course_id = ?", courseID).
		Count(&total)
	return int(total)
}

// completedItemsForCourse returns the user's completions that belong to the
// course, ordered by completed_at asc (id asc as tiebreak).
func completedItemsForCourse(db *gorm.DB, userID uint, courseID string) []CompletedItem {
	items := []CompletedItem{}
	db.Table("subtopic_progress").
		Select("subtopics.slug AS subtopic_id, subtopics.title AS subtopic_title, subtopic_progress.completed_at").
		Joins("JOIN subtopics ON subtopics.id = subtopic_progress.subtopic_id").
		Joins("JOIN topics ON topics.id = subtopics.topic_id").
		Where("subtopic_progress.user_id = ? AND topics.course_id = ? AND subtopic_progress.completed = ?", userID, courseID, true).
		Order("subtopic_progress.completed_at asc, subtopic_progress.id asc").
		Scan(&items)
	return items
}

// updateEnrollmentProgress refreshes the denormalized progress cache on the
// enrollment row after a completion. Best effort; the nightly reconciler
// repairs any drift.
func updateEnrollmentProgress(userID uint, courseID string) {
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return
	}

	total := countCourseSubtopics(db, courseID)

	var completed int64
	db.Model(&models.SubtopicProgress{}).
		Joins("JOIN subtopics ON subtopics.id = subtopic_progress.subtopic_id").
		Joins("JOIN topics ON topics.id = subtopics.topic_id").
		Where("subtopic_progress.user_id = ? AND topics.course_id = ?", userID, courseID).
		Count(&completed)

	enrollment.CompletedCount = int(completed)
	enrollment.TotalCount = total
	if total > 0 {
		enrollment.Progress = math.Round(float64(completed)*100.0/float64(total)*100) / 100
	}

	db.Save(&enrollment)
}
