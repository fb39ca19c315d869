package service

import (
	"time"

	"github.com/ledgerline/emi-scheduler/internal/domain"
	"github.com/ledgerline/emi-scheduler/pkg/utils"
)

// DueDateResolver derives the day of month an installment falls on and the
// distance to its next occurrence. It is stateless and never errors: a loan
// with no usable due-day configuration defaults to the 1st.
type DueDateResolver struct{}

// DueDay resolves the nominal due day with precedence: explicit DueDay field,
// then the start date's day of month, then 1.
func (DueDateResolver) DueDay(loan *domain.Loan) int {
	if loan.DueDay >= 1 && loan.DueDay <= 31 {
		return loan.DueDay
	}
	if loan.StartDate != nil {
		return loan.StartDate.Day()
	}
	return 1
}

// NextDueDate returns the next occurrence of the due day on or after today.
// The nominal day is clamped to each candidate month's actual length, so due
// day 31 resolves to Feb 28 (29 in leap years) rather than skipping February.
func (r DueDateResolver) NextDueDate(loan *domain.Loan, today time.Time) time.Time {
	nominal := r.DueDay(loan)

	year, month := today.Year(), today.Month()
	day := utils.ClampDayToMonth(year, month, nominal)
	if day >= today.Day() {
		return time.Date(year, month, day, 0, 0, 0, 0, today.Location())
	}

	next := time.Date(year, month, 1, 0, 0, 0, 0, today.Location()).AddDate(0, 1, 0)
	day = utils.ClampDayToMonth(next.Year(), next.Month(), nominal)
	return time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, today.Location())
}

// DaysUntilDue returns the non-negative day distance to the next due
// occurrence.
func (r DueDateResolver) DaysUntilDue(loan *domain.Loan, today time.Time) int {
	return utils.DaysBetween(today, r.NextDueDate(loan, today))
}

// CycleDue reports whether the current month's installment has come due, i.e.
// today is on or past this month's (clamped) due day. Running on a later day
// still catches a cycle that was missed earlier in the same month; the
// idempotency guard keeps repeated catches harmless.
func (r DueDateResolver) CycleDue(loan *domain.Loan, today time.Time) bool {
	due := utils.ClampDayToMonth(today.Year(), today.Month(), r.DueDay(loan))
	return today.Day() >= due
}
