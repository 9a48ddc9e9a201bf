package models

import (
	"time"

	"gorm.io/gorm"
)

// StaffUser is an office worker who operates the registration desk.
type StaffUser struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
}

type APIKey struct {
	gorm.Model
	StaffUserID uint       `json:"staff_user_id"`
	StaffUser   StaffUser  `json:"staff_user"`
	Key         string     `json:"key" gorm:"uniqueIndex"`
	Name        string     `json:"name"`
	ExpiresAt   *time.Time `json:"expires_at"`
	LastUsedAt  *time.Time `json:"last_used_at"`
}
