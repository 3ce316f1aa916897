package models

import (
	"gorm.io/gorm"
)

const (
	DifficultyEasy      = "easy"
	DifficultyModerate  = "moderate"
	DifficultyDifficult = "difficult"
)

// Question may be linked to exactly one level of the content hierarchy
// (topic, chapter, subject or course); the validators enforce exclusivity.
type Question struct {
	gorm.Model
	Content         string `gorm:"type:text;not null" json:"content"`
	ImageURL        string `gorm:"default:''" json:"image_url"`
	DifficultyLevel string `gorm:"size:20;default:'easy'" json:"difficulty_level"`
	TopicID         *uint  `gorm:"index" json:"topic_id,omitempty"`
	ChapterID       *uint  `gorm:"index" json:"chapter_id,omitempty"`
	SubjectID       *uint  `gorm:"index" json:"subject_id,omitempty"`
	CourseID        *uint  `gorm:"index" json:"course_id,omitempty"`
	CreatedBy       uint   `json:"created_by"`

	Answers []Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

// Answer is the authoritative answer option record; IsCorrect here is the
// source of truth when student submissions are evaluated.
type Answer struct {
	gorm.Model
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
	ImageURL   string `gorm:"default:''" json:"image_url"`
	IsCorrect  bool   `gorm:"default:false" json:"is_correct"`
}
