package course

import "gorm.io/gorm"

// Content types
const (
	ContentVideo    = "VIDEO"
	ContentDocument = "DOCUMENT"
	ContentQuiz     = "QUIZ"
)

// CourseContent represents a single learnable unit within a module
type CourseContent struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	ContentType string `json:"content_type" gorm:"default:'VIDEO'"` // VIDEO, DOCUMENT, QUIZ
	VideoURL    string `json:"video_url"`                           // For VIDEO type
	DocumentURL string `json:"document_url"`                        // For DOCUMENT type
	Duration    int    `json:"duration" gorm:"default:0"`           // video length, minutes
	TimeLimit   int    `json:"time_limit" gorm:"default:0"`         // quiz time limit, minutes; 0 = none
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}

// ContentProgress marks a content item completed for an enrollment.
// Row existence is the completion state; the enrollment percentage is
// always recomputed from these rows.
type ContentProgress struct {
	gorm.Model
	EnrollmentID uint `json:"enrollment_id" gorm:"uniqueIndex:idx_enrollment_content;not null"`
	ContentID    uint `json:"content_id" gorm:"uniqueIndex:idx_enrollment_content;not null"`
	UserID       uint `json:"user_id" gorm:"index;not null"`
	CourseID     uint `json:"course_id" gorm:"index;not null"`
}
