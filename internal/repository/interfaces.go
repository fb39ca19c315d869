package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/emi-scheduler/internal/domain"
)

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// ListActive retrieves all active loans for a user
	ListActive(ctx context.Context, userID string) ([]*domain.Loan, error)

	// GetByID retrieves a loan by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// ApplyPayment advances loan state by one installment as a delta against
	// the stored row and returns the updated loan
	ApplyPayment(ctx context.Context, loanID uuid.UUID, principal decimal.Decimal, paymentDate time.Time) (*domain.Loan, error)

	// ListUserIDs retrieves the IDs of all users holding at least one active loan
	ListUserIDs(ctx context.Context) ([]string, error)
}

// LedgerRepository defines the interface for append-only ledger operations
type LedgerRepository interface {
	// QueryTransfers retrieves transfers of the given types linked to a loan
	// whose date falls in the given year and month
	QueryTransfers(ctx context.Context, loanID uuid.UUID, types []string, year int, month time.Month) ([]*domain.Transfer, error)

	// AppendExpense appends an expense entry
	AppendExpense(ctx context.Context, expense *domain.Expense) error

	// AppendTransfer appends a transfer entry
	AppendTransfer(ctx context.Context, transfer *domain.Transfer) error
}

// NotificationRepository defines the interface for reminder storage
type NotificationRepository interface {
	// QueryByLoanAndDueDate retrieves notifications for a loan and due date
	QueryByLoanAndDueDate(ctx context.Context, loanID uuid.UUID, dueDate time.Time) ([]*domain.Notification, error)

	// Append stores a new notification
	Append(ctx context.Context, notification *domain.Notification) error

	// ListUnread retrieves all unread notifications for a user
	ListUnread(ctx context.Context, userID string) ([]*domain.Notification, error)

	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, id uuid.UUID) error
}

// RunGateStore records the last local day a user's scheduler run completed.
// It is a cheap-skip optimization only; correctness never depends on it.
type RunGateStore interface {
	// LastChecked returns the stored day in YYYY-MM-DD form, or "" when unset
	LastChecked(ctx context.Context, userID string) (string, error)

	// SetChecked records the given day for the user
	SetChecked(ctx context.Context, userID string, day string) error
}
