package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ledgerline/emi-scheduler/internal/domain"
	"github.com/ledgerline/emi-scheduler/internal/repository"
	"github.com/ledgerline/emi-scheduler/pkg/utils"
)

// ReminderPlanner finds loans whose installment falls inside a lookahead
// window and emits at most one reminder per (loan, due date). Collaborator
// failures are swallowed per item: one reminder failing to persist must not
// block the others.
type ReminderPlanner struct {
	loans         repository.LoanRepository
	notifications repository.NotificationRepository
	resolver      DueDateResolver
	clock         Clock
	lookaheadDays int
	logger        zerolog.Logger
}

func NewReminderPlanner(
	loans repository.LoanRepository,
	notifications repository.NotificationRepository,
	clock Clock,
	lookaheadDays int,
	logger zerolog.Logger,
) *ReminderPlanner {
	if lookaheadDays <= 0 {
		lookaheadDays = 3
	}
	return &ReminderPlanner{
		loans:         loans,
		notifications: notifications,
		clock:         clock,
		lookaheadDays: lookaheadDays,
		logger:        logger.With().Str("component", "reminder_planner").Logger(),
	}
}

// Upcoming lists active loans due within daysAhead days. A daysAhead of 0 or
// less falls back to the configured lookahead.
func (p *ReminderPlanner) Upcoming(ctx context.Context, userID string, daysAhead int) ([]domain.UpcomingEMI, error) {
	if daysAhead <= 0 {
		daysAhead = p.lookaheadDays
	}

	loans, err := p.loans.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := p.clock.Now()
	upcoming := make([]domain.UpcomingEMI, 0, len(loans))
	for _, loan := range loans {
		if loan.IsClosed() {
			continue
		}
		days := p.resolver.DaysUntilDue(loan, today)
		if days > daysAhead {
			continue
		}
		upcoming = append(upcoming, domain.UpcomingEMI{
			Loan:      loan,
			DaysUntil: days,
			DueDate:   p.resolver.NextDueDate(loan, today),
		})
	}

	return upcoming, nil
}

// CreateReminders emits one notification per qualifying loan and due date,
// skipping pairs that already have one stored. Returns the notifications
// created in this call.
func (p *ReminderPlanner) CreateReminders(ctx context.Context, userID string) ([]*domain.Notification, error) {
	upcoming, err := p.Upcoming(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	var created []*domain.Notification
	for _, emi := range upcoming {
		dueDate := utils.DateOnly(emi.DueDate)

		existing, err := p.notifications.QueryByLoanAndDueDate(ctx, emi.Loan.ID, dueDate)
		if err != nil {
			p.logger.Warn().Err(err).
				Str("loan_id", emi.Loan.ID.String()).
				Msg("reminder dedup query failed, skipping loan")
			continue
		}
		if len(existing) > 0 {
			continue
		}

		notification := &domain.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Type:      domain.NotificationTypeEMIReminder,
			LoanID:    emi.Loan.ID,
			DueDate:   dueDate,
			Message:   reminderMessage(emi.Loan, emi.DaysUntil),
			Read:      false,
			CreatedAt: time.Now(),
		}
		if err := p.notifications.Append(ctx, notification); err != nil {
			p.logger.Warn().Err(err).
				Str("loan_id", emi.Loan.ID.String()).
				Msg("reminder append failed, skipping loan")
			continue
		}
		created = append(created, notification)
	}

	return created, nil
}

func reminderMessage(loan *domain.Loan, daysUntil int) string {
	amount := loan.EMIAmount.StringFixed(2)
	switch daysUntil {
	case 0:
		return fmt.Sprintf("EMI of %s for %s is due today", amount, loan.Name)
	case 1:
		return fmt.Sprintf("EMI of %s for %s is due tomorrow", amount, loan.Name)
	default:
		return fmt.Sprintf("EMI of %s for %s is due in %d days", amount, loan.Name, daysUntil)
	}
}
