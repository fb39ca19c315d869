package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/emi-scheduler/internal/domain"
	"github.com/ledgerline/emi-scheduler/internal/service"
	"github.com/ledgerline/emi-scheduler/tests/mocks"
)

func newTestPlanner(loanRepo *mocks.MockLoanRepository, notifRepo *mocks.MockNotificationRepository) *service.ReminderPlanner {
	return service.NewReminderPlanner(
		loanRepo, notifRepo, service.FixedClock{Time: testToday}, 3, zerolog.Nop(),
	)
}

func reminderLoan(name string, dueDay int) *domain.Loan {
	return &domain.Loan{
		ID:                uuid.New(),
		UserID:            testUserID,
		Name:              name,
		OutstandingAmount: decimal.NewFromInt(100000),
		InterestRate:      decimal.NewFromInt(12),
		EMIAmount:         decimal.NewFromInt(2200),
		TenureMonths:      60,
		EMIsPaid:          1,
		DueDay:            dueDay,
		Status:            domain.LoanStatusActive,
	}
}

func TestUpcoming_WindowFiltering(t *testing.T) {
	loanRepo := &mocks.MockLoanRepository{}
	notifRepo := &mocks.MockNotificationRepository{}

	dueToday := reminderLoan("Car Loan", 5)
	dueInTwo := reminderLoan("Home Loan", 7)
	dueInTen := reminderLoan("Gold Loan", 15)

	loanRepo.On("ListActive", mock.Anything, testUserID).
		Return([]*domain.Loan{dueToday, dueInTwo, dueInTen}, nil)

	planner := newTestPlanner(loanRepo, notifRepo)
	upcoming, err := planner.Upcoming(context.Background(), testUserID, 0)

	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, 0, upcoming[0].DaysUntil)
	assert.Equal(t, 2, upcoming[1].DaysUntil)
	assert.Equal(t, time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC), upcoming[1].DueDate)
}

func TestCreateReminders_MessageWording(t *testing.T) {
	tests := []struct {
		name     string
		dueDay   int
		expected string
	}{
		{
			name:     "due today",
			dueDay:   5,
			expected: "EMI of 2200.00 for Home Loan is due today",
		},
		{
			name:     "due tomorrow",
			dueDay:   6,
			expected: "EMI of 2200.00 for Home Loan is due tomorrow",
		},
		{
			name:     "due in N days",
			dueDay:   8,
			expected: "EMI of 2200.00 for Home Loan is due in 3 days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loanRepo := &mocks.MockLoanRepository{}
			notifRepo := &mocks.MockNotificationRepository{}

			loan := reminderLoan("Home Loan", tt.dueDay)
			loanRepo.On("ListActive", mock.Anything, testUserID).Return([]*domain.Loan{loan}, nil)
			notifRepo.On("QueryByLoanAndDueDate", mock.Anything, loan.ID, mock.Anything).
				Return([]*domain.Notification{}, nil)
			notifRepo.On("Append", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
				return n.Message == tt.expected && n.Type == domain.NotificationTypeEMIReminder && !n.Read
			})).Return(nil)

			planner := newTestPlanner(loanRepo, notifRepo)
			created, err := planner.CreateReminders(context.Background(), testUserID)

			require.NoError(t, err)
			require.Len(t, created, 1)
			assert.Equal(t, tt.expected, created[0].Message)
			notifRepo.AssertExpectations(t)
		})
	}
}

func TestCreateReminders_Dedup(t *testing.T) {
	loanRepo := &mocks.MockLoanRepository{}
	notifRepo := &mocks.MockNotificationRepository{}

	loan := reminderLoan("Home Loan", 5)
	dueDate := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

	loanRepo.On("ListActive", mock.Anything, testUserID).Return([]*domain.Loan{loan}, nil)

	// First call finds nothing and appends; second call sees the stored
	// notification and must not append again.
	notifRepo.On("QueryByLoanAndDueDate", mock.Anything, loan.ID, dueDate).
		Return([]*domain.Notification{}, nil).Once()
	notifRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Once()
	notifRepo.On("QueryByLoanAndDueDate", mock.Anything, loan.ID, dueDate).
		Return([]*domain.Notification{{ID: uuid.New(), LoanID: loan.ID, DueDate: dueDate}}, nil).Once()

	planner := newTestPlanner(loanRepo, notifRepo)

	first, err := planner.CreateReminders(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := planner.CreateReminders(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, second)

	notifRepo.AssertNumberOfCalls(t, "Append", 1)
}

func TestCreateReminders_PerItemIsolation(t *testing.T) {
	loanRepo := &mocks.MockLoanRepository{}
	notifRepo := &mocks.MockNotificationRepository{}

	broken := reminderLoan("Broken Loan", 5)
	healthy := reminderLoan("Healthy Loan", 6)

	loanRepo.On("ListActive", mock.Anything, testUserID).
		Return([]*domain.Loan{broken, healthy}, nil)

	notifRepo.On("QueryByLoanAndDueDate", mock.Anything, broken.ID, mock.Anything).
		Return([]*domain.Notification{}, nil)
	notifRepo.On("Append", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.LoanID == broken.ID
	})).Return(errors.New("store unavailable"))

	notifRepo.On("QueryByLoanAndDueDate", mock.Anything, healthy.ID, mock.Anything).
		Return([]*domain.Notification{}, nil)
	notifRepo.On("Append", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.LoanID == healthy.ID
	})).Return(nil)

	planner := newTestPlanner(loanRepo, notifRepo)
	created, err := planner.CreateReminders(context.Background(), testUserID)

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, healthy.ID, created[0].LoanID)
}

func TestUpcoming_ExcludesClosedLoans(t *testing.T) {
	loanRepo := &mocks.MockLoanRepository{}
	notifRepo := &mocks.MockNotificationRepository{}

	closed := reminderLoan("Paid Off", 5)
	closed.Status = domain.LoanStatusClosed

	exhausted := reminderLoan("Zero Balance", 5)
	exhausted.OutstandingAmount = decimal.Zero

	loanRepo.On("ListActive", mock.Anything, testUserID).
		Return([]*domain.Loan{closed, exhausted}, nil)

	planner := newTestPlanner(loanRepo, notifRepo)
	upcoming, err := planner.Upcoming(context.Background(), testUserID, 0)

	require.NoError(t, err)
	assert.Empty(t, upcoming)
}
