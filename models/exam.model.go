package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ExamActive   = "active"
	ExamInactive = "inactive"
)

// Exam may be associated with exactly one node of the content hierarchy
// (course, class, subject, chapter or topic). Missing start/end bounds mean
// the exam window is unbounded on that side.
type Exam struct {
	gorm.Model
	Title           string     `gorm:"index;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	StartDatetime   *time.Time `json:"start_datetime,omitempty"`
	EndDatetime     *time.Time `json:"end_datetime,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	MaxMarks        float64    `json:"max_marks"`
	MaxQuestions    int        `gorm:"default:0" json:"max_questions"`
	Status          string     `gorm:"size:20;default:'active'" json:"status"`
	CourseID        *uint      `gorm:"index" json:"course_id,omitempty"`
	ClassID         *uint      `gorm:"index" json:"class_id,omitempty"`
	SubjectID       *uint      `gorm:"index" json:"subject_id,omitempty"`
	ChapterID       *uint      `gorm:"index" json:"chapter_id,omitempty"`
	TopicID         *uint      `gorm:"index" json:"topic_id,omitempty"`
	CreatedBy       uint       `json:"created_by"`
}

// ExamQuestion joins an exam to a question with a per-question mark weight.
type ExamQuestion struct {
	gorm.Model
	ExamID     uint    `gorm:"index;not null" json:"exam_id"`
	QuestionID uint    `gorm:"index;not null" json:"question_id"`
	Marks      float64 `json:"marks"`
}
