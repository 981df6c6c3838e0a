package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name            string     `gorm:"default:''" json:"name"`
	Username        string     `gorm:"unique;not null" json:"username"`
	Email           string     `gorm:"unique;not null" json:"email"`
	Role            string     `gorm:"default:'STUDENT'" json:"role"` // STUDENT, TEACHER, ADMIN
	Password        string     `gorm:"not null" json:"-"`
	Bio             string     `gorm:"type:text;default:''" json:"bio"`
	AvatarURL       string     `gorm:"default:''" json:"avatar_url"`
	IsEmailVerified bool       `gorm:"default:false" json:"is_email_verified"`
	LastLogin       *time.Time `json:"last_login"`
	IsBlocked       bool       `gorm:"default:false" json:"is_blocked"`
	IsDeleted       bool       `gorm:"default:false" json:"-"`
}
