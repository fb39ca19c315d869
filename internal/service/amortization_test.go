package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/emi-scheduler/internal/service"
)

func TestSplitInstallment(t *testing.T) {
	tests := []struct {
		name              string
		outstanding       decimal.Decimal
		annualRatePct     decimal.Decimal
		emi               decimal.Decimal
		expectedPrincipal decimal.Decimal
		expectedInterest  decimal.Decimal
	}{
		{
			name:              "standard installment",
			outstanding:       decimal.NewFromInt(100000),
			annualRatePct:     decimal.NewFromInt(12),
			emi:               decimal.NewFromInt(2200),
			expectedPrincipal: decimal.NewFromInt(1200), // 2200 - 100000*0.01
			expectedInterest:  decimal.NewFromInt(1000),
		},
		{
			name:              "zero interest rate",
			outstanding:       decimal.NewFromInt(50000),
			annualRatePct:     decimal.Zero,
			emi:               decimal.NewFromInt(5000),
			expectedPrincipal: decimal.NewFromInt(5000),
			expectedInterest:  decimal.Zero,
		},
		{
			name:              "final installment clamps principal to balance",
			outstanding:       decimal.NewFromInt(1000),
			annualRatePct:     decimal.NewFromInt(12),
			emi:               decimal.NewFromInt(2200),
			expectedPrincipal: decimal.NewFromInt(1000), // clamped
			expectedInterest:  decimal.NewFromInt(1200), // emi - clamped principal
		},
		{
			name:              "interest rounds to two places",
			outstanding:       decimal.NewFromFloat(98765.43),
			annualRatePct:     decimal.NewFromInt(12),
			emi:               decimal.NewFromInt(3000),
			expectedPrincipal: decimal.NewFromFloat(2012.35),
			expectedInterest:  decimal.NewFromFloat(987.65), // 98765.43 * 0.01 rounded
		},
	}

	engine := service.AmortizationEngine{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := engine.Split(tt.outstanding, tt.annualRatePct, tt.emi)

			assert.True(t, split.Principal.Equal(tt.expectedPrincipal),
				"principal: expected %v, got %v", tt.expectedPrincipal, split.Principal)
			assert.True(t, split.Interest.Equal(tt.expectedInterest),
				"interest: expected %v, got %v", tt.expectedInterest, split.Interest)

			// Conservation: the split always sums back to the EMI amount
			assert.True(t, split.Principal.Add(split.Interest).Equal(tt.emi),
				"principal + interest should equal emi")
		})
	}
}

func TestSplitInstallmentConservation(t *testing.T) {
	engine := service.AmortizationEngine{}

	cases := []struct {
		outstanding float64
		rate        float64
		emi         float64
	}{
		{100000, 12, 2200},
		{250000, 8.5, 5075.50},
		{999.99, 24, 1500},
		{1, 0, 100},
		{750000, 6.9, 14800},
	}

	for _, c := range cases {
		outstanding := decimal.NewFromFloat(c.outstanding)
		emi := decimal.NewFromFloat(c.emi)
		split := engine.Split(outstanding, decimal.NewFromFloat(c.rate), emi)

		assert.True(t, split.Principal.Add(split.Interest).Equal(emi))
		assert.True(t, split.Principal.LessThanOrEqual(outstanding),
			"principal %v must not exceed outstanding %v", split.Principal, outstanding)
	}
}
