package services

import (
	"strings"
	"testing"

	"clinicpro-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func makeSession(status, price, practitionerRate, extraRate, sessionType, paymentMethod string) *models.Session {
	return &models.Session{
		ClientName:          "Test Client",
		Status:              status,
		Price:               dec(price),
		ExtraCommissionRate: dec(extraRate),
		SessionType:         sessionType,
		PaymentMethod:       paymentMethod,
		Practitioner: models.Practitioner{
			CommissionRate: dec(practitionerRate),
		},
	}
}

func makeRates(typeRates, methodRates map[string]string) RateSnapshot {
	snapshot := RateSnapshot{
		SessionType:   make(map[string]decimal.Decimal),
		PaymentMethod: make(map[string]decimal.Decimal),
	}
	for k, v := range typeRates {
		snapshot.SessionType[k] = dec(v)
	}
	for k, v := range methodRates {
		snapshot.PaymentMethod[k] = dec(v)
	}
	return snapshot
}

func TestCommissionAmount_FullyConfigured(t *testing.T) {
	s := makeSession(models.SessionStatusDone, "1000.00", "50.00", "10.00",
		models.SessionTypeOnline, models.PaymentMethodCreditCard)
	rates := makeRates(
		map[string]string{models.SessionTypeOnline: "5.00"},
		map[string]string{models.PaymentMethodCreditCard: "2.00"},
	)

	// 500 + 100 + 50 + 20
	assert.True(t, dec("670.00").Equal(CommissionAmount(s, rates)),
		"got %s", CommissionAmount(s, rates))
	assert.True(t, dec("330.00").Equal(NetAmount(s, rates)))

	breakdown := CommissionBreakdown(s, rates)
	require.Len(t, breakdown, 4)
	assert.Equal(t, "Practitioner deduction (%50.00): ₺500.00", breakdown[0])
	assert.Equal(t, "Session extra deduction (%10.00): ₺100.00", breakdown[1])
	assert.Equal(t, "Session type deduction (%5.00): ₺50.00", breakdown[2])
	assert.Equal(t, "Payment method deduction (%2.00): ₺20.00", breakdown[3])
}

func TestCommissionAmount_MissingTypeRateMeansZero(t *testing.T) {
	s := makeSession(models.SessionStatusDone, "1000.00", "50.00", "10.00",
		models.SessionTypeOnline, models.PaymentMethodCreditCard)
	rates := makeRates(
		nil, // no session type rows configured
		map[string]string{models.PaymentMethodCreditCard: "2.00"},
	)

	// 500 + 100 + 0 + 20
	assert.True(t, dec("620.00").Equal(CommissionAmount(s, rates)))
	assert.True(t, dec("380.00").Equal(NetAmount(s, rates)))

	breakdown := CommissionBreakdown(s, rates)
	require.Len(t, breakdown, 3)
	assert.Contains(t, breakdown[0], "Practitioner deduction")
	assert.Contains(t, breakdown[1], "Session extra deduction")
	assert.Contains(t, breakdown[2], "Payment method deduction")
}

func TestCommissionAmount_NotDoneDeductsNothing(t *testing.T) {
	for _, status := range []string{models.SessionStatusPlanned, models.SessionStatusCanceled} {
		s := makeSession(status, "1000.00", "50.00", "10.00",
			models.SessionTypeOnline, models.PaymentMethodCash)
		rates := makeRates(
			map[string]string{models.SessionTypeOnline: "5.00"},
			map[string]string{models.PaymentMethodCash: "1.00"},
		)

		assert.True(t, CommissionAmount(s, rates).IsZero(), "status %s", status)
		assert.True(t, NetAmount(s, rates).IsZero(), "status %s", status)
		assert.Empty(t, CommissionBreakdown(s, rates), "status %s", status)
	}
}

func TestCommissionAmount_ZeroPrice(t *testing.T) {
	s := makeSession(models.SessionStatusDone, "0", "50.00", "10.00",
		models.SessionTypeOnline, models.PaymentMethodCash)
	rates := makeRates(nil, nil)

	assert.True(t, CommissionAmount(s, rates).IsZero())
	assert.True(t, NetAmount(s, rates).IsZero())
	assert.Empty(t, CommissionBreakdown(s, rates))
}

func TestCommissionBreakdown_PractitionerLineAlwaysPresent(t *testing.T) {
	s := makeSession(models.SessionStatusDone, "500.00", "0.00", "0.00",
		models.SessionTypeFaceToFace, models.PaymentMethodCash)
	rates := makeRates(nil, nil)

	breakdown := CommissionBreakdown(s, rates)
	require.Len(t, breakdown, 1)
	assert.Equal(t, "Practitioner deduction (%0.00): ₺0.00", breakdown[0])
}

func TestCommissionBreakdown_Order(t *testing.T) {
	tests := []struct {
		name       string
		extra      string
		typeRate   string
		methodRate string
		wantLines  int
	}{
		{"all contributors", "10.00", "5.00", "2.00", 4},
		{"no extra", "0", "5.00", "2.00", 3},
		{"only practitioner", "0", "0", "0", 1},
		{"extra and method", "3.00", "0", "2.00", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := makeSession(models.SessionStatusDone, "1000.00", "40.00", tt.extra,
				models.SessionTypeOnline, models.PaymentMethodDebitCard)
			rates := makeRates(
				map[string]string{models.SessionTypeOnline: tt.typeRate},
				map[string]string{models.PaymentMethodDebitCard: tt.methodRate},
			)

			breakdown := CommissionBreakdown(s, rates)
			require.Len(t, breakdown, tt.wantLines)
			assert.Contains(t, breakdown[0], "Practitioner deduction")

			// Remaining lines must keep the fixed order
			order := []string{"Session extra deduction", "Session type deduction", "Payment method deduction"}
			idx := 0
			for _, line := range breakdown[1:] {
				found := false
				for ; idx < len(order); idx++ {
					if strings.Contains(line, order[idx]) {
						found = true
						idx++
						break
					}
				}
				assert.True(t, found, "line %q out of order", line)
			}
		})
	}
}

func TestTotalCommissionRate_IndependentOfStatus(t *testing.T) {
	rates := makeRates(
		map[string]string{models.SessionTypeOnline: "5.00"},
		map[string]string{models.PaymentMethodCreditCard: "2.00"},
	)

	for _, status := range []string{models.SessionStatusPlanned, models.SessionStatusDone, models.SessionStatusCanceled} {
		s := makeSession(status, "0", "50.00", "10.00",
			models.SessionTypeOnline, models.PaymentMethodCreditCard)
		assert.True(t, dec("67.00").Equal(TotalCommissionRate(s, rates)), "status %s", status)
	}
}

func TestTotalCommissionRate_MissingRowsContributeZero(t *testing.T) {
	s := makeSession(models.SessionStatusPlanned, "0", "50.00", "0",
		models.SessionTypeFaceToFace, models.PaymentMethodBankTransfer)
	rates := makeRates(nil, nil)

	assert.True(t, dec("50.00").Equal(TotalCommissionRate(s, rates)))
}

func TestCommissionAmount_NoCapAboveHundredPercent(t *testing.T) {
	s := makeSession(models.SessionStatusDone, "1000.00", "80.00", "30.00",
		models.SessionTypeOnline, models.PaymentMethodCreditCard)
	rates := makeRates(
		map[string]string{models.SessionTypeOnline: "10.00"},
		map[string]string{models.PaymentMethodCreditCard: "5.00"},
	)

	// 125% combined: net goes negative, nothing clamps it
	assert.True(t, dec("1250.00").Equal(CommissionAmount(s, rates)))
	assert.True(t, dec("-250.00").Equal(NetAmount(s, rates)))
}

func TestCommissionAmount_Idempotent(t *testing.T) {
	s := makeSession(models.SessionStatusDone, "750.50", "45.50", "2.25",
		models.SessionTypeFaceToFace, models.PaymentMethodCash)
	rates := makeRates(
		map[string]string{models.SessionTypeFaceToFace: "1.75"},
		map[string]string{models.PaymentMethodCash: "0.50"},
	)

	first := CommissionAmount(s, rates)
	second := CommissionAmount(s, rates)
	assert.True(t, first.Equal(second))
	assert.Equal(t, CommissionBreakdown(s, rates), CommissionBreakdown(s, rates))
	assert.True(t, NetAmount(s, rates).Equal(NetAmount(s, rates)))
}

func TestSummarizeSessions(t *testing.T) {
	rates := makeRates(
		map[string]string{models.SessionTypeOnline: "5.00"},
		nil,
	)

	sessions := []models.Session{
		*makeSession(models.SessionStatusDone, "1000.00", "50.00", "0",
			models.SessionTypeOnline, models.PaymentMethodCash), // 550 deducted
		*makeSession(models.SessionStatusDone, "500.00", "50.00", "0",
			models.SessionTypeFaceToFace, models.PaymentMethodCash), // 250 deducted
		*makeSession(models.SessionStatusPlanned, "800.00", "50.00", "0",
			models.SessionTypeOnline, models.PaymentMethodCash), // counted, no money
		*makeSession(models.SessionStatusCanceled, "400.00", "50.00", "0",
			models.SessionTypeOnline, models.PaymentMethodCash), // counted, no money
	}

	summary := SummarizeSessions(sessions, rates)
	assert.Equal(t, 4, summary.Count)
	assert.True(t, dec("1500.00").Equal(summary.Revenue), "revenue %s", summary.Revenue)
	assert.True(t, dec("800.00").Equal(summary.Commission), "commission %s", summary.Commission)
	assert.True(t, dec("700.00").Equal(summary.Net), "net %s", summary.Net)
}

func TestSummarizeSessions_Empty(t *testing.T) {
	summary := SummarizeSessions(nil, makeRates(nil, nil))
	assert.Equal(t, 0, summary.Count)
	assert.True(t, summary.Revenue.IsZero())
	assert.True(t, summary.Commission.IsZero())
	assert.True(t, summary.Net.IsZero())
}

func TestSummarizeSessions_MatchesPerSessionCalculator(t *testing.T) {
	rates := makeRates(
		map[string]string{models.SessionTypeOnline: "3.33"},
		map[string]string{models.PaymentMethodCreditCard: "1.11"},
	)

	sessions := []models.Session{
		*makeSession(models.SessionStatusDone, "333.33", "47.50", "2.50",
			models.SessionTypeOnline, models.PaymentMethodCreditCard),
		*makeSession(models.SessionStatusDone, "666.67", "55.00", "0",
			models.SessionTypeFaceToFace, models.PaymentMethodCreditCard),
	}

	expected := decimal.Zero
	for i := range sessions {
		expected = expected.Add(CommissionAmount(&sessions[i], rates))
	}

	summary := SummarizeSessions(sessions, rates)
	assert.True(t, expected.Equal(summary.Commission))
}
