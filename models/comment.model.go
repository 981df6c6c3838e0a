package models

import "gorm.io/gorm"

// Comment is a threaded discussion entry under a content item. ParentID
// is nil for root comments.
type Comment struct {
	gorm.Model
	ContentID uint   `gorm:"index;not null" json:"content_id"`
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	ParentID  *uint  `gorm:"index" json:"parent_id"`
	Text      string `gorm:"type:text;not null" json:"text"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
