package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	NotificationTypeFeatureBlocked = "feature_blocked"
	NotificationTypeSystem         = "system"
)

// Notification is a per-user message, e.g. a record of a blocked feature
// access drained from the gate's side channel.
type Notification struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"index" json:"user_id"`
	User         User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type         string         `gorm:"type:varchar(50)" json:"type" validate:"oneof=feature_blocked system"`
	Content      string         `gorm:"type:text" json:"content"`
	IsRead       bool           `gorm:"default:false" json:"is_read"`
	ReferenceKey string         `gorm:"type:varchar(100)" json:"reference_key"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarkAsRead marks a notification as read
func (n *Notification) MarkAsRead(db *gorm.DB) error {
	n.IsRead = true
	return db.Model(n).Update("is_read", true).Error
}

// CreateNotification persists a new notification
func CreateNotification(db *gorm.DB, userID uint, notificationType string, content string, referenceKey string) error {
	notification := Notification{
		UserID:       userID,
		Type:         notificationType,
		Content:      content,
		ReferenceKey: referenceKey,
		IsRead:       false,
	}

	return db.Create(&notification).Error
}
