package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusActive = "active"
	LoanStatusClosed = "closed"
)

// Loan represents an installment loan owned by a user. The scheduler only
// advances EMIsPaid, OutstandingAmount, Status and LastPaymentDate; every other
// field is maintained elsewhere.
type Loan struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	UserID            string          `json:"user_id" db:"user_id"`
	Name              string          `json:"name" db:"name"`
	Lender            string          `json:"lender" db:"lender"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount" db:"outstanding_amount"`
	InterestRate      decimal.Decimal `json:"interest_rate" db:"interest_rate"` // annual, percent
	EMIAmount         decimal.Decimal `json:"emi_amount" db:"emi_amount"`
	TenureMonths      int             `json:"tenure_months" db:"tenure_months"`
	EMIsPaid          int             `json:"emis_paid" db:"emis_paid"`
	DueDay            int             `json:"due_day" db:"due_day"` // 1-31, 0 when unset
	StartDate         *time.Time      `json:"start_date,omitempty" db:"start_date"`
	Status            string          `json:"status" db:"status"`
	LastPaymentDate   *time.Time      `json:"last_payment_date,omitempty" db:"last_payment_date"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// IsClosed reports whether the loan has reached a terminal state.
func (l *Loan) IsClosed() bool {
	return l.Status == LoanStatusClosed ||
		l.EMIsPaid >= l.TenureMonths ||
		l.OutstandingAmount.LessThanOrEqual(decimal.Zero)
}
