package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Practitioner is the billable psychologist profile, one per account.
type Practitioner struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Phone               string
	HourlyRate          decimal.Decimal `gorm:"type:decimal(10,2);default:0"`
	CommissionRate      decimal.Decimal `gorm:"type:decimal(5,2);default:50.00"`
	ExtraCommissionRate decimal.Decimal `gorm:"type:decimal(5,2);default:0.00"` // admin-adjustable
	IsActive            bool            `gorm:"default:true"`
	CreatedAt           time.Time

	User     User      `gorm:"foreignKey:UserID"`
	Sessions []Session `gorm:"foreignKey:PractitionerID;constraint:OnDelete:CASCADE"`
}
