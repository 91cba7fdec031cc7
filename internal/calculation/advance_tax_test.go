package calculation

import (
	"testing"
	"time"

	"github.com/itrgo/tax-estimator/internal/domain"
	"github.com/itrgo/tax-estimator/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 9, 30, 0, 0, time.UTC)
	}
}

func TestAdvanceTaxScheduler_Schedule(t *testing.T) {
	fy, err := dateutil.ParseFinancialYear("2025-2026")
	require.NoError(t, err)
	rules := lookupRules(t, "2025-2026").AdvanceTax

	tests := []struct {
		name       string
		netPayable int64
		exclude    bool
		now        func() time.Time
		expected   []domain.AdvanceTaxDue
	}{
		{
			name:       "below threshold",
			netPayable: 10000,
			expected:   []domain.AdvanceTaxDue{},
		},
		{
			name:       "all installments",
			netPayable: 100000,
			expected: []domain.AdvanceTaxDue{
				{DueDate: "2025-06-15", Percentage: 15, AmountDue: rs(15000)},
				{DueDate: "2025-09-15", Percentage: 45, AmountDue: rs(30000)},
				{DueDate: "2025-12-15", Percentage: 75, AmountDue: rs(30000)},
				{DueDate: "2026-03-15", Percentage: 100, AmountDue: rs(25000)},
			},
		},
		{
			name:       "past installments retained by default",
			netPayable: 100000,
			now:        fixedClock(2026, time.February, 1),
			expected: []domain.AdvanceTaxDue{
				{DueDate: "2025-06-15", Percentage: 15, AmountDue: rs(15000)},
				{DueDate: "2025-09-15", Percentage: 45, AmountDue: rs(30000)},
				{DueDate: "2025-12-15", Percentage: 75, AmountDue: rs(30000)},
				{DueDate: "2026-03-15", Percentage: 100, AmountDue: rs(25000)},
			},
		},
		{
			name:       "first remaining installment absorbs past ones",
			netPayable: 100000,
			exclude:    true,
			now:        fixedClock(2025, time.October, 1),
			expected: []domain.AdvanceTaxDue{
				{DueDate: "2025-12-15", Percentage: 75, AmountDue: rs(75000)},
				{DueDate: "2026-03-15", Percentage: 100, AmountDue: rs(25000)},
			},
		},
		{
			name:       "installment due today is kept",
			netPayable: 100000,
			exclude:    true,
			now:        fixedClock(2025, time.September, 15),
			expected: []domain.AdvanceTaxDue{
				{DueDate: "2025-09-15", Percentage: 45, AmountDue: rs(45000)},
				{DueDate: "2025-12-15", Percentage: 75, AmountDue: rs(30000)},
				{DueDate: "2026-03-15", Percentage: 100, AmountDue: rs(25000)},
			},
		},
		{
			name:       "year over",
			netPayable: 100000,
			exclude:    true,
			now:        fixedClock(2026, time.April, 1),
			expected:   []domain.AdvanceTaxDue{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			if now == nil {
				now = fixedClock(2025, time.April, 1)
			}
			s := &AdvanceTaxScheduler{Rules: rules, Now: now, ExcludePastDue: tt.exclude}
			got := s.Schedule(fy, decimal.NewFromInt(tt.netPayable))

			require.Len(t, got, len(tt.expected))
			for i := range tt.expected {
				assert.Equal(t, tt.expected[i].DueDate, got[i].DueDate)
				assert.Equal(t, tt.expected[i].Percentage, got[i].Percentage)
				assert.True(t, tt.expected[i].AmountDue.Equal(got[i].AmountDue), "%s: %s != %s", got[i].DueDate, got[i].AmountDue, tt.expected[i].AmountDue)
			}
		})
	}
}

func TestAdvanceTaxScheduler_SumsToNetPayable(t *testing.T) {
	fy, err := dateutil.ParseFinancialYear("2025-2026")
	require.NoError(t, err)
	s := &AdvanceTaxScheduler{Rules: lookupRules(t, "2025-2026").AdvanceTax, Now: time.Now}

	for _, amount := range []string{"10000.01", "33333", "123456.78", "999999.99"} {
		net := decimal.RequireFromString(amount)
		total := decimal.Zero
		for _, inst := range s.Schedule(fy, net) {
			total = total.Add(inst.AmountDue.Decimal)
		}
		assert.True(t, total.Equal(net), "%s scheduled as %s", amount, total)
	}
}
