package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// SubscriptionPlan is immutable once purchased against: edited copies do not
// retroactively change existing entitlements.
type SubscriptionPlan struct {
	gorm.Model
	Name         string  `gorm:"index;not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	DurationDays int     `gorm:"not null" json:"duration_days"`
	Price        float64 `json:"price"`
	MaxExams     int     `gorm:"default:1" json:"max_exams"` // maximum attempts per exam
	Features     string  `gorm:"type:text" json:"features"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
}

// SubscriptionPlanPackage links a plan to a set of content packages. The
// package ids are stored as a serialized JSON array.
type SubscriptionPlanPackage struct {
	gorm.Model
	SubscriptionID uint           `gorm:"index;not null" json:"subscription_id"`
	PackageIDs     datatypes.JSON `json:"package_ids"`
}

// UserSubscription is one user's entitlement instance. A user may accumulate
// many rows over time; attempt counting uses the most recently created active
// one. Rows are never deleted, only flipped to expired or cancelled.
type UserSubscription struct {
	gorm.Model
	UserID                     uint      `gorm:"index;not null" json:"user_id"`
	SubscriptionPlanPackagesID uint      `gorm:"index;not null" json:"subscription_plan_packages_id"`
	StartDate                  time.Time `json:"start_date"`
	EndDate                    time.Time `gorm:"index" json:"end_date"`
	Status                     string    `gorm:"size:20;default:'active';index" json:"status"`
	ReminderSent               bool      `gorm:"default:false" json:"reminder_sent"`
}

// ExamAttempt is the per-(entitlement, exam) remaining-attempts ledger.
// Created lazily on first session creation or first attempt-count query.
type ExamAttempt struct {
	gorm.Model
	UserSubscriptionID uint `gorm:"index;not null" json:"user_subscription_id"`
	ExamID             uint `gorm:"index;not null" json:"exam_id"`
	RemainingAttempts  int  `gorm:"default:1" json:"remaining_attempts"`
}
