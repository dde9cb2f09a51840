package utils

import (
	"log"
	"math"
	"strconv"
	"time"

	"courseplatform/database"
	"courseplatform/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PROGRESS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// ReconcileEnrollmentProgress re-derives every enrollment's cached progress
// fields from the subtopic_progress table. The cache is refreshed inline
// after each completion, but a crash or racing write can leave it stale;
// this pass repairs the drift. Rows already in sync are left untouched.
func ReconcileEnrollmentProgress() {
	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Find(&enrollments).Error; err != nil {
		logScheduler("Error fetching enrollments: " + err.Error())
		return
	}

	totals := make(map[string]int)
	repaired := 0

	for _, enrollment := range enrollments {
		total, ok := totals[enrollment.CourseID]
		if !ok {
			var n int64
			db.Model(&models.Subtopic{}).
				Joins("JOIN topics ON topics.id = subtopics.topic_id").
				Where("topics.course_id = ?", enrollment.CourseID).
				Count(&n)
			total = int(n)
			totals[enrollment.CourseID] = total
		}

		var completed int64
		db.Model(&models.SubtopicProgress{}).
			Joins("JOIN subtopics ON subtopics.id = subtopic_progress.subtopic_id").
			Joins("JOIN topics ON topics.id = subtopics.topic_id").
			Where("subtopic_progress.user_id = ? AND topics.course_id = ?", enrollment.UserID, enrollment.CourseID).
			Count(&completed)

		progress := 0.0
		if total > 0 {
			progress = math.Round(float64(completed)*100.0/float64(total)*100) / 100
		}

		if enrollment.CompletedCount == int(completed) && enrollment.TotalCount == total && enrollment.Progress == progress {
			continue
		}

		enrollment.CompletedCount = int(completed)
		enrollment.TotalCount = total
		enrollment.Progress = progress
		if err := db.Save(&enrollment).Error; err != nil {
			logScheduler("Error saving enrollment: " + err.Error())
			continue
		}
		repaired++
	}

	if repaired > 0 {
		logScheduler("Progress cache reconciled, repaired rows: " + strconv.Itoa(repaired))
	}
}

// StartProgressScheduler schedules the nightly reconciliation pass
func StartProgressScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("0 3 * * *", ReconcileEnrollmentProgress); err != nil {
		logScheduler("Failed to schedule reconciliation: " + err.Error())
		return c
	}

	c.Start()
	logScheduler("Progress reconciliation scheduled daily at 03:00")
	return c
}
