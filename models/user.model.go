package models

import (
	"time"

	"gorm.io/gorm"
)

// Role hierarchy: student < teacher < admin < superadmin
const (
	RoleStudent    = "student"
	RoleTeacher    = "teacher"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	gorm.Model
	Username     string     `gorm:"unique;not null" json:"username"`
	Email        string     `gorm:"unique;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         string     `gorm:"default:'student'" json:"role"`
	FullName     string     `gorm:"default:''" json:"full_name"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// RoleRank maps a role to its position in the hierarchy. Unknown roles rank lowest.
func RoleRank(role string) int {
	switch role {
	case RoleSuperAdmin:
		return 4
	case RoleAdmin:
		return 3
	case RoleTeacher:
		return 2
	case RoleStudent:
		return 1
	}
	return 0
}
