package models

import (
	"gorm.io/gorm"
)

type Package struct {
	gorm.Model
	Name        string `gorm:"index;not null" json:"name"`
	Description string `gorm:"default:''" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	CreatedBy   uint   `json:"created_by"`
}

// PackageCourse is the junction table between packages and courses.
type PackageCourse struct {
	gorm.Model
	PackageID uint `gorm:"index;not null" json:"package_id"`
	CourseID  uint `gorm:"index;not null" json:"course_id"`
}
