package course

import (
	"time"

	"gorm.io/gorm"
)

const (
	CertificatePending  = "PENDING"
	CertificateApproved = "APPROVED"
	CertificateRejected = "REJECTED"
)

// CertificateRequest is a student's request for a completion certificate
type CertificateRequest struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	CourseID     uint      `json:"course_id" gorm:"index;not null"`
	EnrollmentID uint      `json:"enrollment_id" gorm:"index;not null"`
	Status       string    `json:"status" gorm:"default:'PENDING'"`
	RequestedAt  time.Time `json:"requested_at"`
	ReviewedBy   *uint     `json:"reviewed_by"`
	IsDeleted    bool      `gorm:"default:false" json:"-"`
}

// Certificate is issued when an admin approves a request
type Certificate struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	CourseID     uint      `json:"course_id" gorm:"index;not null"`
	EnrollmentID uint      `json:"enrollment_id" gorm:"index;not null"`
	SerialNumber string    `json:"serial_number" gorm:"uniqueIndex;not null"`
	IssuedAt     time.Time `json:"issued_at"`
	IsDeleted    bool      `gorm:"default:false" json:"-"`
}
