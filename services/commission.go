// services/commission.go
package services

import (
	"fmt"

	"clinicpro-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

// RateSnapshot is a read-only copy of the two commission lookup tables,
// loaded once per request and passed into the calculator so the math stays
// a pure function of its inputs. A key with no entry means rate zero.
type RateSnapshot struct {
	SessionType   map[string]decimal.Decimal
	PaymentMethod map[string]decimal.Decimal
}

// LoadRateSnapshot reads both lookup tables.
func LoadRateSnapshot(db *gorm.DB) (RateSnapshot, error) {
	snapshot := RateSnapshot{
		SessionType:   make(map[string]decimal.Decimal),
		PaymentMethod: make(map[string]decimal.Decimal),
	}

	var typeRows []models.SessionTypeCommission
	if err := db.Find(&typeRows).Error; err != nil {
		return snapshot, err
	}
	for _, row := range typeRows {
		snapshot.SessionType[row.SessionType] = row.Rate
	}

	var methodRows []models.PaymentMethodCommission
	if err := db.Find(&methodRows).Error; err != nil {
		return snapshot, err
	}
	for _, row := range methodRows {
		snapshot.PaymentMethod[row.PaymentMethod] = row.Rate
	}

	return snapshot, nil
}

func (r RateSnapshot) sessionTypeRate(sessionType string) decimal.Decimal {
	if rate, ok := r.SessionType[sessionType]; ok {
		return rate
	}
	return decimal.Zero
}

func (r RateSnapshot) paymentMethodRate(method string) decimal.Decimal {
	if rate, ok := r.PaymentMethod[method]; ok {
		return rate
	}
	return decimal.Zero
}

func slice(price, rate decimal.Decimal) decimal.Decimal {
	return price.Mul(rate).Div(oneHundred)
}

// CommissionAmount computes the total deduction for a session: the sum of
// the practitioner base rate, the per-session extra rate, the session-type
// rate and the payment-method rate, each applied to the price independently.
// Sessions that are not done, or have no price, deduct nothing. The session
// must have its Practitioner preloaded.
//
// The four rates are not capped; a configuration summing past 100% produces
// a deduction above the price.
func CommissionAmount(s *models.Session, rates RateSnapshot) decimal.Decimal {
	if s.Status != models.SessionStatusDone || !s.Price.IsPositive() {
		return decimal.Zero
	}

	total := slice(s.Price, s.Practitioner.CommissionRate)
	total = total.Add(slice(s.Price, s.ExtraCommissionRate))
	total = total.Add(slice(s.Price, rates.sessionTypeRate(s.SessionType)))
	total = total.Add(slice(s.Price, rates.paymentMethodRate(s.PaymentMethod)))
	return total
}

// NetAmount is the practitioner's earning after deductions. Zero unless the
// session is done.
func NetAmount(s *models.Session, rates RateSnapshot) decimal.Decimal {
	if s.Status != models.SessionStatusDone {
		return decimal.Zero
	}
	return s.Price.Sub(CommissionAmount(s, rates))
}

// CommissionBreakdown returns one human-readable line per contributing rate,
// in fixed order: practitioner (always, even at 0%), session extra, session
// type, payment method (each only when above zero). Empty when the session
// is not done or has no price.
func CommissionBreakdown(s *models.Session, rates RateSnapshot) []string {
	if s.Status != models.SessionStatusDone || !s.Price.IsPositive() {
		return []string{}
	}

	breakdown := []string{breakdownLine("Practitioner deduction", s.Practitioner.CommissionRate, s.Price)}

	if s.ExtraCommissionRate.IsPositive() {
		breakdown = append(breakdown, breakdownLine("Session extra deduction", s.ExtraCommissionRate, s.Price))
	}
	if rate := rates.sessionTypeRate(s.SessionType); rate.IsPositive() {
		breakdown = append(breakdown, breakdownLine("Session type deduction", rate, s.Price))
	}
	if rate := rates.paymentMethodRate(s.PaymentMethod); rate.IsPositive() {
		breakdown = append(breakdown, breakdownLine("Payment method deduction", rate, s.Price))
	}
	return breakdown
}

func breakdownLine(label string, rate, price decimal.Decimal) string {
	return fmt.Sprintf("%s (%%%s): ₺%s", label, rate.StringFixed(2), slice(price, rate).StringFixed(2))
}

// TotalCommissionRate sums the four rates as a percentage. Unlike the amount
// calculation it does not depend on status or price, so it can be shown for
// planned sessions as an estimate.
func TotalCommissionRate(s *models.Session, rates RateSnapshot) decimal.Decimal {
	total := s.Practitioner.CommissionRate
	total = total.Add(s.ExtraCommissionRate)
	total = total.Add(rates.sessionTypeRate(s.SessionType))
	total = total.Add(rates.paymentMethodRate(s.PaymentMethod))
	return total
}

// SessionSummary is the reduction every dashboard reports: Count covers all
// sessions in the slice, the money fields only the done ones.
type SessionSummary struct {
	Count      int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
	Commission decimal.Decimal `json:"commission"`
	Net        decimal.Decimal `json:"net"`
}

// SummarizeSessions folds the per-session calculator output over a session
// collection. All reporting goes through here so there is a single formula.
func SummarizeSessions(sessions []models.Session, rates RateSnapshot) SessionSummary {
	summary := SessionSummary{
		Revenue:    decimal.Zero,
		Commission: decimal.Zero,
		Net:        decimal.Zero,
	}
	for i := range sessions {
		s := &sessions[i]
		summary.Count++
		if s.Status != models.SessionStatusDone {
			continue
		}
		summary.Revenue = summary.Revenue.Add(s.Price)
		summary.Commission = summary.Commission.Add(CommissionAmount(s, rates))
	}
	summary.Net = summary.Revenue.Sub(summary.Commission)
	return summary
}
