package models

import (
	"time"

	"github.com/google/uuid"
)

// Assistant is non-billable staff with session-management permissions only.
type Assistant struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Phone     string
	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
