package models

import "gorm.io/gorm"

// Review is one rating + comment per enrollment
type Review struct {
	gorm.Model
	EnrollmentID uint   `gorm:"uniqueIndex;not null" json:"enrollment_id"`
	UserID       uint   `gorm:"index;not null" json:"user_id"`
	CourseID     uint   `gorm:"index;not null" json:"course_id"`
	Rating       int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment      string `gorm:"type:text;default:''" json:"comment"`
	IsDeleted    bool   `gorm:"default:false" json:"-"`
}
