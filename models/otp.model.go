package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OTPPurposeRegistration  = "registration"
	OTPPurposeLogin         = "login"
	OTPPurposePasswordReset = "password_reset"
)

type OTP struct {
	gorm.Model
	Email      string    `gorm:"size:100;index" json:"email"`
	Code       string    `gorm:"size:6;not null" json:"code"`
	Purpose    string    `gorm:"size:20;not null" json:"purpose"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
}

// IsExpired reports whether the OTP is past its expiry time.
func (o *OTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}
