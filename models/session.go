package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	SessionTypeOnline     = "online"
	SessionTypeFaceToFace = "face_to_face"

	PaymentMethodCash         = "cash"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodDebitCard    = "debit_card"
	PaymentMethodBankTransfer = "bank_transfer"

	SessionStatusPlanned  = "planned"
	SessionStatusDone     = "done"
	SessionStatusCanceled = "canceled"
)

func ValidSessionType(t string) bool {
	return t == SessionTypeOnline || t == SessionTypeFaceToFace
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

func ValidSessionStatus(s string) bool {
	return s == SessionStatusPlanned || s == SessionStatusDone || s == SessionStatusCanceled
}

type Session struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	PractitionerID uuid.UUID `gorm:"type:uuid;index;not null"`

	ClientName string          `gorm:"not null"`
	Date       time.Time       `gorm:"index;not null"`
	Duration   int             `gorm:"default:60"` // minutes
	Price      decimal.Decimal `gorm:"type:decimal(10,2);default:0"`

	SessionType   string `gorm:"type:varchar(20);default:'face_to_face'"`
	PaymentMethod string `gorm:"type:varchar(20);default:'cash'"`

	// Per-session override on top of the practitioner's base rate.
	ExtraCommissionRate decimal.Decimal `gorm:"type:decimal(5,2);default:0.00"`

	Notes  string `gorm:"type:text"`
	Status string `gorm:"type:varchar(10);default:'planned'"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Practitioner Practitioner `gorm:"foreignKey:PractitionerID;constraint:OnDelete:CASCADE"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// ByDateDesc is the default listing order for sessions.
func ByDateDesc(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC")
}
