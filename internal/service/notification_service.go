package service

import (
	"context"

	"github.com/Marga-Ghale/club-portal/internal/repository"
)

type NotificationService interface {
	List(ctx context.Context, unreadOnly bool) ([]*repository.Notification, error)
	Count(ctx context.Context) (total int, unread int, err error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) List(ctx context.Context, unreadOnly bool) ([]*repository.Notification, error) {
	return s.notificationRepo.List(ctx, unreadOnly)
}

func (s *notificationService) Count(ctx context.Context) (int, int, error) {
	return s.notificationRepo.CountUnread(ctx)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id string) error {
	return mapRepoError(s.notificationRepo.MarkAsRead(ctx, id))
}

// MarkAllAsRead only touches rows that are currently unread.
func (s *notificationService) MarkAllAsRead(ctx context.Context) (int, error) {
	return s.notificationRepo.MarkAllAsRead(ctx)
}

func (s *notificationService) Delete(ctx context.Context, id string) error {
	return mapRepoError(s.notificationRepo.Delete(ctx, id))
}
