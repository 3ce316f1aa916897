package models

import (
	"gorm.io/gorm"
)

const (
	ContentTypeVideo    = "video"
	ContentTypePDF      = "pdf"
	ContentTypeDocument = "document"
)

// ContentItem is an uploaded study material exposed back as a public URL.
type ContentItem struct {
	gorm.Model
	Title       string `gorm:"index;not null" json:"title"`
	Description string `gorm:"default:''" json:"description"`
	Type        string `gorm:"size:20;not null" json:"type"`
	URL         string `gorm:"not null" json:"url"`
	CourseID    *uint  `gorm:"index" json:"course_id,omitempty"`
	SubjectID   *uint  `gorm:"index" json:"subject_id,omitempty"`
	ChapterID   *uint  `gorm:"index" json:"chapter_id,omitempty"`
	TopicID     *uint  `gorm:"index" json:"topic_id,omitempty"`
	CreatedBy   uint   `json:"created_by"`
}
