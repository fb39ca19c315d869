package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/emi-scheduler/internal/domain"
	"github.com/ledgerline/emi-scheduler/internal/repository"
	apperrors "github.com/ledgerline/emi-scheduler/pkg/errors"
)

// SchedulerService orchestrates the once-daily EMI run: enumerate active
// loans, check each loan's cycle against the ledger, amortize and record the
// due ones, then plan reminders. Loans are independent, so a failure in one
// is recorded in the run result and iteration continues.
type SchedulerService struct {
	loans         repository.LoanRepository
	notifications repository.NotificationRepository
	gate          repository.RunGateStore
	guard         *IdempotencyGuard
	writer        *LedgerWriter
	planner       *ReminderPlanner
	engine        AmortizationEngine
	resolver      DueDateResolver
	clock         Clock
	logger        zerolog.Logger
}

func NewSchedulerService(
	loans repository.LoanRepository,
	ledger repository.LedgerRepository,
	notifications repository.NotificationRepository,
	gate repository.RunGateStore,
	clock Clock,
	lookaheadDays int,
	logger zerolog.Logger,
) *SchedulerService {
	return &SchedulerService{
		loans:         loans,
		notifications: notifications,
		gate:          gate,
		guard:         NewIdempotencyGuard(ledger),
		writer:        NewLedgerWriter(loans, ledger),
		planner:       NewReminderPlanner(loans, notifications, clock, lookaheadDays, logger),
		clock:         clock,
		logger:        logger.With().Str("component", "emi_scheduler").Logger(),
	}
}

const gateDayFormat = "2006-01-02"

// Initialize runs the gated daily check for a user: skip cheaply if today was
// already handled, otherwise process due EMIs and plan reminders, then mark
// the day. Gate failures are logged and ignored; the ledger-derived
// idempotency check makes a redundant run harmless.
func (s *SchedulerService) Initialize(ctx context.Context, userID string) (*domain.RunResult, error) {
	today := s.clock.Now().Format(gateDayFormat)

	last, err := s.gate.LastChecked(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("run gate read failed, proceeding without it")
	} else if last == today {
		return &domain.RunResult{Results: []domain.LoanResult{}}, nil
	}

	result, err := s.ProcessDailyEMIs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.planner.CreateReminders(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("reminder planning failed")
	}

	if err := s.gate.SetChecked(ctx, userID, today); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("run gate write failed, next run loses the cheap skip")
	}

	return result, nil
}

// ProcessDailyEMIs runs one ungated pass over the user's active loans. No
// per-loan error escapes: each is converted into a failed or skipped entry in
// the run result.
func (s *SchedulerService) ProcessDailyEMIs(ctx context.Context, userID string) (*domain.RunResult, error) {
	loans, err := s.loans.ListActive(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	today := s.clock.Now()
	result := &domain.RunResult{Results: []domain.LoanResult{}}

	for _, loan := range loans {
		res := s.processLoan(ctx, loan, today)
		if res.Status == domain.ResultStatusFailed {
			s.logger.Error().
				Str("user_id", userID).
				Str("loan_id", loan.ID.String()).
				Str("error", res.Error).
				Msg("EMI processing failed for loan")
		}
		result.Add(res)
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("processed", result.ProcessedCount).
		Int("skipped", result.SkippedCount).
		Int("failed", result.FailedCount).
		Msg("daily EMI run complete")

	return result, nil
}

func (s *SchedulerService) processLoan(ctx context.Context, loan *domain.Loan, today time.Time) domain.LoanResult {
	res := domain.LoanResult{
		LoanID:        loan.ID,
		LoanName:      loan.Name,
		PrincipalPaid: decimal.Zero,
		InterestPaid:  decimal.Zero,
	}

	if !s.resolver.CycleDue(loan, today) {
		res.Status = domain.ResultStatusSkipped
		res.Reason = "not due yet"
		return res
	}

	// Should already be closed; guard against stale status rows.
	if loan.EMIsPaid >= loan.TenureMonths {
		res.Status = domain.ResultStatusSkipped
		res.Reason = "tenure complete"
		return res
	}

	recorded, err := s.guard.AlreadyRecorded(ctx, loan.ID, today.Year(), today.Month())
	if err != nil {
		// Cannot confirm the cycle is unpaid, so do nothing this run.
		res.Status = domain.ResultStatusSkipped
		res.Reason = "idempotency check unavailable"
		res.Error = err.Error()
		return res
	}
	if recorded {
		res.Status = domain.ResultStatusSkipped
		res.Reason = "already recorded this cycle"
		return res
	}

	split := s.engine.Split(loan.OutstandingAmount, loan.InterestRate, loan.EMIAmount)

	updated, err := s.writer.RecordPayment(ctx, loan, split, today)
	if err != nil {
		res.Status = domain.ResultStatusFailed
		res.Error = err.Error()
		return res
	}

	res.Status = domain.ResultStatusProcessed
	res.PrincipalPaid = split.Principal
	res.InterestPaid = split.Interest
	res.LoanClosed = updated.Status == domain.LoanStatusClosed
	return res
}

// GetUpcomingEMIs lists loans due within daysAhead days (configured default
// when daysAhead <= 0).
func (s *SchedulerService) GetUpcomingEMIs(ctx context.Context, userID string, daysAhead int) ([]domain.UpcomingEMI, error) {
	return s.planner.Upcoming(ctx, userID, daysAhead)
}

// CreateEMIReminders plans deduplicated reminders for the user's upcoming
// installments, bypassing the daily gate.
func (s *SchedulerService) CreateEMIReminders(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.planner.CreateReminders(ctx, userID)
}

// GetUnreadNotifications lists the user's unread reminders.
func (s *SchedulerService) GetUnreadNotifications(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.notifications.ListUnread(ctx, userID)
}

// MarkAsRead marks a single notification as read.
func (s *SchedulerService) MarkAsRead(ctx context.Context, notificationID uuid.UUID) error {
	return s.notifications.MarkRead(ctx, notificationID)
}

// ListUserIDs exposes the set of users with active loans, for callers that
// drive runs across the whole population (the cron binary).
func (s *SchedulerService) ListUserIDs(ctx context.Context) ([]string, error) {
	return s.loans.ListUserIDs(ctx)
}
