package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/emi-scheduler/internal/domain"
	apperrors "github.com/ledgerline/emi-scheduler/pkg/errors"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) ListActive(ctx context.Context, userID string) ([]*domain.Loan, error) {
	query := `
		SELECT id, user_id, name, lender, outstanding_amount, interest_rate, emi_amount,
		       tenure_months, emis_paid, due_day, start_date, status, last_payment_date,
		       created_at, updated_at
		FROM loans
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at
	`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query, userID, domain.LoanStatusActive); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `
		SELECT id, user_id, name, lender, outstanding_amount, interest_rate, emi_amount,
		       tenure_months, emis_paid, due_day, start_date, status, last_payment_date,
		       created_at, updated_at
		FROM loans
		WHERE id = $1
	`

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapLoanNotFound(id.String())
		}
		return nil, err
	}

	return &loan, nil
}

// ApplyPayment advances the loan by one installment. The update is expressed
// as deltas against the stored row, not overwrites of values read earlier:
// other writers (manual payments, edits) may have touched the loan since it
// was listed, and deltas keep the lost-update window as small as the store
// allows. Closure follows the invariant: closed iff emis_paid reaches tenure
// or the outstanding balance is exhausted.
func (r *loanRepository) ApplyPayment(ctx context.Context, loanID uuid.UUID, principal decimal.Decimal, paymentDate time.Time) (*domain.Loan, error) {
	query := `
		UPDATE loans
		SET emis_paid = emis_paid + 1,
		    outstanding_amount = GREATEST(outstanding_amount - $2, 0),
		    status = CASE
		        WHEN emis_paid + 1 >= tenure_months OR outstanding_amount - $2 <= 0
		        THEN 'closed' ELSE 'active'
		    END,
		    last_payment_date = $3,
		    updated_at = $4
		WHERE id = $1
		RETURNING id, user_id, name, lender, outstanding_amount, interest_rate, emi_amount,
		          tenure_months, emis_paid, due_day, start_date, status, last_payment_date,
		          created_at, updated_at
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, loanID, principal, paymentDate, time.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapLoanNotFound(loanID.String())
		}
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT user_id
		FROM loans
		WHERE status = $1
		ORDER BY user_id
	`

	var userIDs []string
	if err := r.db.SelectContext(ctx, &userIDs, query, domain.LoanStatusActive); err != nil {
		return nil, err
	}

	return userIDs, nil
}
