package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/repository"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, channel, subject, content, recipient, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Channel,
		notification.Subject,
		notification.Content,
		notification.Recipient,
		notification.Status,
		notification.CreatedAt,
		notification.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) Update(ctx context.Context, notification *model.Notification) error {
	query := `
		UPDATE notifications
		SET status = $1, retry_count = $2, last_error = $3, sent_at = $4, updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query,
		notification.Status,
		notification.RetryCount,
		notification.LastError,
		notification.SentAt,
		time.Now(),
		notification.ID,
	)
	return err
}

func (r *notificationRepository) ListPending(ctx context.Context, limit int) ([]*model.Notification, error) {
	query := `
		SELECT * FROM notifications
		WHERE status IN ($1, $2)
		ORDER BY created_at ASC
		LIMIT $3
	`
	var notifications []*model.Notification
	err := r.db.SelectContext(ctx, &notifications, query,
		model.NotificationStatusPending, model.NotificationStatusRetrying, limit)
	return notifications, err
}
