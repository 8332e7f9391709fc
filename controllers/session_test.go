package controllers

import (
	"testing"
	"time"

	"clinicpro-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInput() SessionInput {
	return SessionInput{
		ClientName:     "Ayşe K.",
		PractitionerID: uuid.New(),
		Date:           time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local),
		Duration:       "50",
		Price:          "1200.00",
		SessionType:    models.SessionTypeOnline,
		PaymentMethod:  models.PaymentMethodCreditCard,
		Status:         models.SessionStatusPlanned,
	}
}

func TestApplySessionInput_Valid(t *testing.T) {
	input := baseInput()
	input.ExtraCommissionRate = "7.50"

	var session models.Session
	msg, ok := applySessionInput(&session, &input, true, true)
	require.True(t, ok, msg)

	assert.Equal(t, "Ayşe K.", session.ClientName)
	assert.Equal(t, 50, session.Duration)
	assert.Equal(t, "1200", session.Price.String())
	assert.Equal(t, models.SessionTypeOnline, session.SessionType)
	assert.Equal(t, models.PaymentMethodCreditCard, session.PaymentMethod)
	assert.Equal(t, models.SessionStatusPlanned, session.Status)
	assert.Equal(t, "7.5", session.ExtraCommissionRate.String())
}

func TestApplySessionInput_Defaults(t *testing.T) {
	input := baseInput()
	input.Duration = ""
	input.Price = ""
	input.SessionType = ""
	input.PaymentMethod = ""
	input.Status = ""

	var session models.Session
	msg, ok := applySessionInput(&session, &input, true, true)
	require.True(t, ok, msg)

	assert.Equal(t, 60, session.Duration)
	assert.True(t, session.Price.IsZero())
	assert.Equal(t, models.SessionTypeFaceToFace, session.SessionType)
	assert.Equal(t, models.PaymentMethodCash, session.PaymentMethod)
	assert.Equal(t, models.SessionStatusPlanned, session.Status)
}

func TestApplySessionInput_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SessionInput)
		want   string
	}{
		{"bad duration", func(in *SessionInput) { in.Duration = "ninety" }, "Invalid duration format"},
		{"zero duration", func(in *SessionInput) { in.Duration = "0" }, "Invalid duration format"},
		{"bad price", func(in *SessionInput) { in.Price = "12,50" }, "Invalid price format"},
		{"negative price", func(in *SessionInput) { in.Price = "-100" }, "Price cannot be negative"},
		{"bad session type", func(in *SessionInput) { in.SessionType = "phone" }, "Invalid session type"},
		{"bad payment method", func(in *SessionInput) { in.PaymentMethod = "crypto" }, "Invalid payment method"},
		{"bad status", func(in *SessionInput) { in.Status = "maybe" }, "Invalid status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			tt.mutate(&input)

			original := models.Session{ClientName: "untouched"}
			session := original
			msg, ok := applySessionInput(&session, &input, true, true)

			assert.False(t, ok)
			assert.Equal(t, tt.want, msg)
			// No partial write on rejection
			assert.Equal(t, original.ClientName, session.ClientName)
		})
	}
}

func TestApplySessionInput_AssistantCannotSetExtraRate(t *testing.T) {
	input := baseInput()
	input.ExtraCommissionRate = "25.00"

	var created models.Session
	msg, ok := applySessionInput(&created, &input, false, true)
	require.True(t, ok, msg)
	assert.True(t, created.ExtraCommissionRate.IsZero())

	// On update the stored rate survives whatever the assistant submits
	existing := models.Session{ExtraCommissionRate: decimal.RequireFromString("12.00")}
	msg, ok = applySessionInput(&existing, &input, false, false)
	require.True(t, ok, msg)
	assert.Equal(t, "12", existing.ExtraCommissionRate.String())
}

func TestApplySessionInput_InvalidExtraRateCoercedToZero(t *testing.T) {
	input := baseInput()
	input.ExtraCommissionRate = "not-a-rate"

	var session models.Session
	msg, ok := applySessionInput(&session, &input, true, true)
	require.True(t, ok, msg)
	assert.True(t, session.ExtraCommissionRate.IsZero())
}
