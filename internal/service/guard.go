package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/emi-scheduler/internal/domain"
	"github.com/ledgerline/emi-scheduler/internal/repository"
	apperrors "github.com/ledgerline/emi-scheduler/pkg/errors"
)

// emiTransferTypes are the transfer kinds that count as a recorded payment
// for a billing cycle. A prepayment settles the cycle just as a regular EMI
// does.
var emiTransferTypes = []string{
	domain.TransferTypeLoanEMI,
	domain.TransferTypeLoanPrepayment,
}

// IdempotencyGuard answers "does this loan's cycle already carry a financial
// effect" by reading the shared ledger. The ledger is the only source of
// truth here: manual payments recorded elsewhere in the system must suppress
// an automatic one, which no scheduler-local flag could know about.
//
// Two concurrent sessions can both pass this check before either commits its
// write; the store offers no conditional append, so that duplicate window is
// a documented residual risk rather than something this guard can close.
type IdempotencyGuard struct {
	ledger repository.LedgerRepository
}

func NewIdempotencyGuard(ledger repository.LedgerRepository) *IdempotencyGuard {
	return &IdempotencyGuard{ledger: ledger}
}

// AlreadyRecorded reports whether any EMI-type transfer for the loan is dated
// inside the given year and month. A read failure wraps to GUARD_READ_ERROR:
// callers must skip the loan rather than pay a cycle they cannot confirm is
// unpaid.
func (g *IdempotencyGuard) AlreadyRecorded(ctx context.Context, loanID uuid.UUID, year int, month time.Month) (bool, error) {
	transfers, err := g.ledger.QueryTransfers(ctx, loanID, emiTransferTypes, year, month)
	if err != nil {
		return false, apperrors.WrapGuardRead(err)
	}
	return len(transfers) > 0, nil
}
