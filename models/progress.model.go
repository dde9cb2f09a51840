package models

import "time"

// SubtopicProgress is an append-only completion fact. At most one row exists
// per (user_id, subtopic_id), enforced by the unique index; repeated
// mark-complete calls return the original row unchanged. There is no
// uncomplete operation.
type SubtopicProgress struct {
	ID          uint      `json:"-" gorm:"primarykey"`
	UserID      uint      `json:"-" gorm:"uniqueIndex:idx_user_subtopic;index;not null"`
	SubtopicID  uint      `json:"-" gorm:"uniqueIndex:idx_user_subtopic;index;not null"`
	Completed   bool      `json:"completed" gorm:"not null;default:true"`
	CompletedAt time.Time `json:"completedAt" gorm:"autoCreateTime"`
}

func (SubtopicProgress) TableName() string { return "subtopic_progress" }
