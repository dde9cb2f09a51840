package models

import "time"

// Course is the root of the catalog hierarchy. The primary key is a stable
// human-readable slug (e.g. "physics-101"), assigned at seed time and
// immutable afterwards.
type Course struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Topics      []Topic   `json:"topics,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Course) TableName() string { return "courses" }

// Topic belongs to exactly one course. Slug is unique within its course.
type Topic struct {
	ID        uint       `json:"-" gorm:"primarykey"`
	Slug      string     `json:"id" gorm:"uniqueIndex:idx_course_topic;not null"`
	Title     string     `json:"title" gorm:"not null"`
	CourseID  string     `json:"-" gorm:"uniqueIndex:idx_course_topic;index;not null"`
	Subtopics []Subtopic `json:"subtopics,omitempty" gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE"`
}

func (Topic) TableName() string { return "topics" }

// Subtopic belongs to exactly one topic and carries the markdown content.
// Slug is unique within its topic and indexed on its own because the
// mark-complete route addresses subtopics by slug alone.
type Subtopic struct {
	ID      uint   `json:"-" gorm:"primarykey"`
	Slug    string `json:"id" gorm:"uniqueIndex:idx_topic_subtopic;index;not null"`
	Title   string `json:"title" gorm:"not null"`
	Content string `json:"content" gorm:"type:text"`
	TopicID uint   `json:"-" gorm:"uniqueIndex:idx_topic_subtopic;index;not null"`
}

func (Subtopic) TableName() string { return "subtopics" }
