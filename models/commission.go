package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SessionTypeCommission maps a session type to an additional deduction rate.
// A missing row means no additional deduction for that type.
type SessionTypeCommission struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	SessionType string          `gorm:"type:varchar(20);uniqueIndex;not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(5,2);default:0"`
}

func (c *SessionTypeCommission) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// PaymentMethodCommission maps a payment method to an additional deduction rate.
type PaymentMethodCommission struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	PaymentMethod string          `gorm:"type:varchar(20);uniqueIndex;not null"`
	Rate          decimal.Decimal `gorm:"type:decimal(5,2);default:0"`
}

func (c *PaymentMethodCommission) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
