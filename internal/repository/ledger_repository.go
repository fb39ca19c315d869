package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ledgerline/emi-scheduler/internal/domain"
)

type ledgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// QueryTransfers is the idempotency read: any transfer of an EMI type dated
// inside the target month means the cycle already carries a financial effect.
func (r *ledgerRepository) QueryTransfers(ctx context.Context, loanID uuid.UUID, types []string, year int, month time.Month) ([]*domain.Transfer, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	query := `
		SELECT id, user_id, type, amount, date, principal_amount, interest_amount,
		       linked_loan_id, status, created_at
		FROM transfers
		WHERE linked_loan_id = $1 AND type = ANY($2) AND date >= $3 AND date < $4
		ORDER BY date
	`

	var transfers []*domain.Transfer
	err := r.db.SelectContext(ctx, &transfers, query, loanID, pq.Array(types), monthStart, nextMonth)
	if err != nil {
		return nil, err
	}

	return transfers, nil
}

func (r *ledgerRepository) AppendExpense(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, amount, date, category, linked_loan_id, auto_generated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		expense.ID,
		expense.UserID,
		expense.Amount,
		expense.Date,
		expense.Category,
		expense.LinkedLoanID,
		expense.AutoGenerated,
		expense.CreatedAt,
	)

	return err
}

func (r *ledgerRepository) AppendTransfer(ctx context.Context, transfer *domain.Transfer) error {
	query := `
		INSERT INTO transfers (id, user_id, type, amount, date, principal_amount, interest_amount, linked_loan_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		transfer.ID,
		transfer.UserID,
		transfer.Type,
		transfer.Amount,
		transfer.Date,
		transfer.PrincipalAmount,
		transfer.InterestAmount,
		transfer.LinkedLoanID,
		transfer.Status,
		transfer.CreatedAt,
	)

	return err
}
