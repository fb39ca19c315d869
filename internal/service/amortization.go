package service

import "github.com/shopspring/decimal"

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// InstallmentSplit is the principal/interest decomposition of one EMI.
type InstallmentSplit struct {
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
}

// AmortizationEngine splits a fixed installment against an outstanding
// balance and annual percentage rate.
type AmortizationEngine struct{}

// Split computes interest = outstanding * rate/12/100 and assigns the
// remainder of the EMI to principal. On the final installment the principal
// is clamped to the remaining balance and the interest absorbs the rest, so
// principal + interest always equals the EMI amount except that principal
// never exceeds what is owed.
func (AmortizationEngine) Split(outstanding, annualRatePct, emi decimal.Decimal) InstallmentSplit {
	monthlyRate := annualRatePct.Div(twelve).Div(hundred)
	interest := outstanding.Mul(monthlyRate).Round(2)
	principal := emi.Sub(interest)

	if principal.GreaterThan(outstanding) {
		principal = outstanding
		interest = emi.Sub(principal)
	}

	return InstallmentSplit{Principal: principal, Interest: interest}
}
