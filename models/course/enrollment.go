package course

import (
	"time"

	"gorm.io/gorm"
)

// Payment statuses
const (
	PaymentPending    = "PENDING"
	PaymentSuccessful = "SUCCESSFUL"
)

// PlaceholderSession fills the payment session id between row creation
// and the gateway round-trip.
const PlaceholderSession = "PENDING"

// Enrollment tracks a student's registration in a course. The composite
// unique index is the guard against double enrollment.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_student_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_student_course;not null"`
	Progress    int        `json:"progress" gorm:"default:0"` // percentage 0-100, recomputed
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false" json:"-"`

	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// Payment is one row per enrollment attempt. OrderID is our correlation
// id sent to the gateway; SessionID starts as a placeholder and is
// replaced once the Snap session exists.
type Payment struct {
	gorm.Model
	EnrollmentID   uint       `json:"enrollment_id" gorm:"index;not null"`
	UserID         uint       `json:"user_id" gorm:"index;not null"`
	CourseID       uint       `json:"course_id" gorm:"index;not null"`
	OrderID        string     `json:"order_id" gorm:"uniqueIndex;not null"`
	SessionID      string     `json:"session_id"`
	RedirectURL    string     `json:"redirect_url"`
	Amount         float64    `json:"amount"`
	DiscountAmount float64    `json:"discount_amount" gorm:"default:0"`
	PromotionID    *uint      `json:"promotion_id" gorm:"index"`
	Status         string     `json:"status" gorm:"default:'PENDING'"` // PENDING, SUCCESSFUL
	PaidAt         *time.Time `json:"paid_at"`
	IsDeleted      bool       `gorm:"default:false" json:"-"`
}
