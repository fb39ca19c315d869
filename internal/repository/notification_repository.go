package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ledgerline/emi-scheduler/internal/domain"
	apperrors "github.com/ledgerline/emi-scheduler/pkg/errors"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) QueryByLoanAndDueDate(ctx context.Context, loanID uuid.UUID, dueDate time.Time) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, type, loan_id, due_date, message, read, created_at
		FROM notifications
		WHERE loan_id = $1 AND due_date = $2
	`

	var notifications []*domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, loanID, dueDate)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepository) Append(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, loan_id, due_date, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Type,
		notification.LoanID,
		notification.DueDate,
		notification.Message,
		notification.Read,
		notification.CreatedAt,
	)

	return err
}

func (r *notificationRepository) ListUnread(ctx context.Context, userID string) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, type, loan_id, due_date, message, read, created_at
		FROM notifications
		WHERE user_id = $1 AND read = FALSE
		ORDER BY due_date, created_at
	`

	var notifications []*domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.WrapNotificationNotFound(id.String())
	}

	return nil
}
