package models

import "gorm.io/gorm"

// LoginTracking records every successful login for the account history view
type LoginTracking struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
