package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ResultStatusProcessed = "processed"
	ResultStatusSkipped   = "skipped"
	ResultStatusFailed    = "failed"
)

// LoanResult is the per-loan outcome of one scheduler run.
type LoanResult struct {
	LoanID        uuid.UUID       `json:"loan_id"`
	LoanName      string          `json:"loan_name"`
	Status        string          `json:"status"`
	Reason        string          `json:"reason,omitempty"`
	Error         string          `json:"error,omitempty"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
	InterestPaid  decimal.Decimal `json:"interest_paid"`
	LoanClosed    bool            `json:"loan_closed"`
}

// RunResult aggregates one full scheduler run. A failed loan never aborts the
// run; it is reported here and retried whenever the scheduler next fires.
type RunResult struct {
	ProcessedCount int          `json:"processed_count"`
	SkippedCount   int          `json:"skipped_count"`
	FailedCount    int          `json:"failed_count"`
	Results        []LoanResult `json:"results"`
}

// Add records a per-loan outcome and bumps the matching counter.
func (r *RunResult) Add(res LoanResult) {
	switch res.Status {
	case ResultStatusProcessed:
		r.ProcessedCount++
	case ResultStatusFailed:
		r.FailedCount++
	default:
		r.SkippedCount++
	}
	r.Results = append(r.Results, res)
}

// UpcomingEMI describes a loan whose installment falls inside the reminder
// lookahead window.
type UpcomingEMI struct {
	Loan      *Loan     `json:"loan"`
	DaysUntil int       `json:"days_until"`
	DueDate   time.Time `json:"due_date"`
}
