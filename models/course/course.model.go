package course

import "gorm.io/gorm"

// Course represents a marketplace course owned by a teacher
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price" gorm:"default:0;check:price >= 0"`
	CategoryID   uint    `json:"category_id" gorm:"index"`
	TeacherID    uint    `json:"teacher_id" gorm:"index;not null"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Status       string  `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `gorm:"default:false" json:"-"`
}
