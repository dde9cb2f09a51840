package models

import "time"

// Enrollment records that a user joined a course. The (user_id, course_id)
// unique index is the real duplicate-enrollment guarantee; the application
// level existence check is only a fast path.
//
// Progress, CompletedCount and TotalCount are a denormalized cache refreshed
// after each completion and reconciled nightly. The progress endpoint never
// reads them; it recomputes from subtopic_progress.
type Enrollment struct {
	ID         uint      `json:"enrollmentId" gorm:"primarykey"`
	UserID     uint      `json:"-" gorm:"uniqueIndex:idx_user_course;index;not null"`
	CourseID   string    `json:"courseId" gorm:"uniqueIndex:idx_user_course;index;not null"`
	EnrolledAt time.Time `json:"enrolledAt" gorm:"autoCreateTime"`

	Progress       float64 `json:"progress" gorm:"default:0"` // cached percentage (0-100)
	CompletedCount int     `json:"completedCount" gorm:"default:0"`
	TotalCount     int     `json:"totalCount" gorm:"default:0"`
}

func (Enrollment) TableName() string { return "enrollments" }
