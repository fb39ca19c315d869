package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransferTypeLoanEMI        = "loan_emi"
	TransferTypeLoanPrepayment = "loan_prepayment"

	TransferStatusCompleted = "completed"

	ExpenseCategoryEMI = "EMI Payment"
)

// Expense is an append-only ledger entry for money spent. Entries written by
// the scheduler carry AutoGenerated = true to distinguish them from manual
// records created elsewhere.
type Expense struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        string          `json:"user_id" db:"user_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Date          time.Time       `json:"date" db:"date"`
	Category      string          `json:"category" db:"category"`
	LinkedLoanID  uuid.UUID       `json:"linked_loan_id" db:"linked_loan_id"`
	AutoGenerated bool            `json:"auto_generated" db:"auto_generated"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// Transfer is an append-only ledger entry carrying the principal/interest
// split of a loan payment. At most one transfer of an EMI type may exist per
// (linked loan, year, month); that triple is the idempotency key for the whole
// subsystem and is checked by reading the ledger, never a local flag.
type Transfer struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          string          `json:"user_id" db:"user_id"`
	Type            string          `json:"type" db:"type"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Date            time.Time       `json:"date" db:"date"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" db:"principal_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount" db:"interest_amount"`
	LinkedLoanID    uuid.UUID       `json:"linked_loan_id" db:"linked_loan_id"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}
