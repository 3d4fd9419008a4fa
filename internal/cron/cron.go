package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/repository"
)

const jobTimeout = time.Minute

// CountPublisher pushes unread totals to connected dashboards.
type CountPublisher interface {
	SendNotificationCount(total, unread int)
}

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron          *cron.Cron
	notifications repository.NotificationRepository
	counts        CountPublisher
	retention     time.Duration
	log           *zap.Logger
	now           func() time.Time
}

// NewScheduler creates a new scheduler. counts may be nil.
func NewScheduler(notifications repository.NotificationRepository, counts CountPublisher, retention time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		notifications: notifications,
		counts:        counts,
		retention:     retention,
		log:           log,
		now:           time.Now,
	}
}

// Start registers the jobs and starts the scheduler
func (s *Scheduler) Start() error {
	// Clean up old read notifications - every Sunday at midnight
	if _, err := s.cron.AddFunc("0 0 * * 0", s.job("notification_cleanup", s.cleanupOldNotifications)); err != nil {
		return err
	}

	// Refresh dashboard badges - every 30 minutes
	if s.counts != nil {
		if _, err := s.cron.AddFunc("*/30 * * * *", s.job("notification_count", s.publishUnreadCount)); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) job(name string, fn func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			s.log.Error("scheduled job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.log.Debug("scheduled job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	}
}

// cleanupOldNotifications removes read notifications past the retention window
func (s *Scheduler) cleanupOldNotifications(ctx context.Context) error {
	cutoff := s.now().Add(-s.retention)
	deleted, err := s.notifications.DeleteOlderThan(ctx, cutoff, true)
	if err != nil {
		return err
	}
	s.log.Info("old notifications removed", zap.Int("deleted", deleted), zap.Time("cutoff", cutoff))
	return nil
}

func (s *Scheduler) publishUnreadCount(ctx context.Context) error {
	total, unread, err := s.notifications.CountUnread(ctx)
	if err != nil {
		return err
	}
	s.counts.SendNotificationCount(total, unread)
	return nil
}

// ManualTrigger runs a job immediately, outside the schedule.
func (s *Scheduler) ManualTrigger(ctx context.Context, name string) error {
	switch name {
	case "cleanup":
		return s.cleanupOldNotifications(ctx)
	case "count":
		if s.counts == nil {
			return fmt.Errorf("no count publisher configured")
		}
		return s.publishUnreadCount(ctx)
	}
	return fmt.Errorf("unknown job %q", name)
}
