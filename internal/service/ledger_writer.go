package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/emi-scheduler/internal/domain"
	"github.com/ledgerline/emi-scheduler/internal/repository"
	apperrors "github.com/ledgerline/emi-scheduler/pkg/errors"
)

// LedgerWriter applies the financial side effects of one installment: the
// loan state delta, the auto-generated expense, and the transfer carrying the
// principal/interest split. The three writes are not transactional across
// stores; a partial failure surfaces as WRITE_ERROR for this loan only and is
// never retried within the same run, so a half-written cycle cannot be
// doubled up by an in-run retry.
type LedgerWriter struct {
	loans  repository.LoanRepository
	ledger repository.LedgerRepository
}

func NewLedgerWriter(loans repository.LoanRepository, ledger repository.LedgerRepository) *LedgerWriter {
	return &LedgerWriter{loans: loans, ledger: ledger}
}

// RecordPayment advances the loan and appends both ledger entries. Returns
// the updated loan so callers can report closure.
func (w *LedgerWriter) RecordPayment(ctx context.Context, loan *domain.Loan, split InstallmentSplit, paymentDate time.Time) (*domain.Loan, error) {
	updated, err := w.loans.ApplyPayment(ctx, loan.ID, split.Principal, paymentDate)
	if err != nil {
		return nil, apperrors.WrapWrite("loan update", err)
	}

	now := time.Now()

	expense := &domain.Expense{
		ID:            uuid.New(),
		UserID:        loan.UserID,
		Amount:        loan.EMIAmount,
		Date:          paymentDate,
		Category:      domain.ExpenseCategoryEMI,
		LinkedLoanID:  loan.ID,
		AutoGenerated: true,
		CreatedAt:     now,
	}
	if err := w.ledger.AppendExpense(ctx, expense); err != nil {
		return updated, apperrors.WrapWrite("expense append", err)
	}

	transfer := &domain.Transfer{
		ID:              uuid.New(),
		UserID:          loan.UserID,
		Type:            domain.TransferTypeLoanEMI,
		Amount:          loan.EMIAmount,
		Date:            paymentDate,
		PrincipalAmount: split.Principal,
		InterestAmount:  split.Interest,
		LinkedLoanID:    loan.ID,
		Status:          domain.TransferStatusCompleted,
		CreatedAt:       now,
	}
	if err := w.ledger.AppendTransfer(ctx, transfer); err != nil {
		return updated, apperrors.WrapWrite("transfer append", err)
	}

	return updated, nil
}
