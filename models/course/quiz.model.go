package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question belongs to a QUIZ content item
type Question struct {
	gorm.Model
	ContentID  uint   `json:"content_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"type:text;not null"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`

	Options []AnswerOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

// AnswerOption carries the correctness flag. The flag is zeroed in every
// student-facing response before grading.
type AnswerOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}

// QuizAttempt is an immutable scored submission. Answers holds the
// submitted (question_id, answer_option_id) pairs as JSON.
type QuizAttempt struct {
	gorm.Model
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	EnrollmentID   uint           `json:"enrollment_id" gorm:"index;not null"`
	ContentID      uint           `json:"content_id" gorm:"index;not null"`
	Answers        datatypes.JSON `json:"answers"`
	CorrectCount   int            `json:"correct_count"`
	TotalQuestions int            `json:"total_questions"`
	Score          float64        `json:"score"` // 0-100, two decimals
}
