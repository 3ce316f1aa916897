package models

import (
	"gorm.io/gorm"
)

const (
	CourseLevelBeginner     = "beginner"
	CourseLevelIntermediate = "intermediate"
	CourseLevelAdvanced     = "advanced"
)

// Content hierarchy: Class -> Stream -> Subject -> Chapter -> Topic.
// Children reference parents by id only; ancestor chains are resolved
// with repeated lookups, never eagerly-loaded object graphs.

type Class struct {
	gorm.Model
	Name        string `gorm:"index;not null" json:"name"`
	Description string `gorm:"default:''" json:"description"`
	CreatedBy   uint   `json:"created_by"`
}

type Stream struct {
	gorm.Model
	Name        string `gorm:"index;not null" json:"name"`
	Description string `gorm:"default:''" json:"description"`
	ClassID     uint   `gorm:"index;not null" json:"class_id"`
	CreatedBy   uint   `json:"created_by"`
}

type Subject struct {
	gorm.Model
	Name        string `gorm:"index;not null" json:"name"`
	Description string `gorm:"default:''" json:"description"`
	Code        string `gorm:"uniqueIndex;not null" json:"code"` // e.g. "MATH101"
	Credits     int    `gorm:"default:0" json:"credits"`
	StreamID    uint   `gorm:"index;not null" json:"stream_id"`
	CreatedBy   uint   `json:"created_by"`
}

type Chapter struct {
	gorm.Model
	Name          string `gorm:"index;not null" json:"name"`
	Description   string `gorm:"default:''" json:"description"`
	ChapterNumber int    `json:"chapter_number"` // ordering within the subject
	IsActive      bool   `gorm:"default:true" json:"is_active"`
	SubjectID     uint   `gorm:"index;not null" json:"subject_id"`
	CreatedBy     uint   `json:"created_by"`
}

type Topic struct {
	gorm.Model
	Name          string `gorm:"index;not null" json:"name"`
	Description   string `gorm:"default:''" json:"description"`
	TopicNumber   int    `json:"topic_number"` // ordering within the chapter
	IsActive      bool   `gorm:"default:true" json:"is_active"`
	EstimatedTime int    `json:"estimated_time"` // minutes
	ChapterID     uint   `gorm:"index;not null" json:"chapter_id"`
	CreatedBy     uint   `json:"created_by"`
}

// Course may sit at any single level of the hierarchy. The business rule
// that at most one of the association ids is set is enforced by the
// validators, not the schema.
type Course struct {
	gorm.Model
	Name        string `gorm:"index;not null" json:"name"`
	Description string `gorm:"default:''" json:"description"`
	Duration    int    `json:"duration"` // hours
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	Level       string `gorm:"default:'beginner'" json:"level"`
	StreamID    *uint  `gorm:"index" json:"stream_id,omitempty"`
	SubjectID   *uint  `gorm:"index" json:"subject_id,omitempty"`
	ChapterID   *uint  `gorm:"index" json:"chapter_id,omitempty"`
	TopicID     *uint  `gorm:"index" json:"topic_id,omitempty"`
	CreatedBy   uint   `json:"created_by"`
}
