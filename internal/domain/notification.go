package domain

import (
	"time"

	"github.com/google/uuid"
)

const NotificationTypeEMIReminder = "emi_reminder"

// Notification is an upcoming-payment reminder. At most one notification
// exists per (loan, due date) pair, read or unread.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	LoanID    uuid.UUID `json:"loan_id" db:"loan_id"`
	DueDate   time.Time `json:"due_date" db:"due_date"`
	Message   string    `json:"message" db:"message"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
