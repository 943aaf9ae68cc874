package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationRule stores a user's reminder delivery preference for one
// channel. Delivery itself is handled by an external collaborator; the core
// only stores the rules and hands them to the notify interface.
type NotificationRule struct {
	gorm.Model

	UserID   uint           `gorm:"not null;uniqueIndex:idx_user_channel"`
	Channel  string         `gorm:"not null;uniqueIndex:idx_user_channel"` // "email", "push", "webhook"
	IsActive bool           `gorm:"default:true"`
	Config   datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
