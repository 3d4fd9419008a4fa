package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var notificationColumns = []string{"id", "title", "message", "type", "is_read", "created_at"}

type pgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &pgNotificationRepository{pool: pool}
}

func (r *pgNotificationRepository) Create(ctx context.Context, notification *Notification) error {
	query := `
		INSERT INTO notifications (title, message, type, is_read)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		notification.Title, notification.Message, notification.Type, notification.IsRead,
	).Scan(&notification.ID, &notification.CreatedAt)
	return mapPgError(err, "insert notification")
}

func (r *pgNotificationRepository) List(ctx context.Context, unreadOnly bool) ([]*Notification, error) {
	opts := ListOptions{OrderBy: "created_at", Desc: true, Limit: 200}
	if unreadOnly {
		opts.Filters = []Filter{{Column: "is_read", Value: false}}
	}
	sql, args, err := buildSelect(ctx, TableNotifications, notificationColumns, opts)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err, "list notifications")
	}
	defer rows.Close()

	notifications, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Notification, error) {
		n := &Notification{}
		if err := row.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		return n, nil
	})
	if err != nil {
		return nil, mapPgError(err, "scan notification")
	}
	return notifications, nil
}

func (r *pgNotificationRepository) CountUnread(ctx context.Context) (total int, unread int, err error) {
	query := `
		SELECT
			COUNT(*) as total,
			COUNT(*) FILTER (WHERE is_read = FALSE) as unread
		FROM notifications
	`
	err = r.pool.QueryRow(ctx, query).Scan(&total, &unread)
	return total, unread, mapPgError(err, "count notifications")
}

func (r *pgNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err, "mark notification read")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgNotificationRepository) MarkAllAsRead(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE is_read = FALSE`)
	if err != nil {
		return 0, mapPgError(err, "mark notifications read")
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgNotificationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err, "delete notification")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgNotificationRepository) DeleteOlderThan(ctx context.Context, olderThan time.Time, readOnly bool) (int, error) {
	query := `DELETE FROM notifications WHERE created_at < $1`
	if readOnly {
		query += ` AND is_read = TRUE`
	}
	result, err := r.pool.Exec(ctx, query, olderThan)
	if err != nil {
		return 0, mapPgError(err, "delete old notifications")
	}
	return int(result.RowsAffected()), nil
}
