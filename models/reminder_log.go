package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog records each schedule digest sent to a practitioner.
type ReminderLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	PractitionerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Message      string `gorm:"type:text"`
	Channel      string `gorm:"type:varchar(10)"` // "sms" or "whatsapp"
	Status       string `gorm:"type:varchar(10)"` // "sent" or "failed"
	ErrorMessage string
	SentAt       time.Time
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
