// Package jobs runs the background cron tasks: reminder delivery and
// the nightly economy summary.
package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/accounts"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/reminders"
)

// Scheduler owns the cron instance.
type Scheduler struct {
	cron         *cron.Cron
	reminderRepo *reminders.Repository
	accountRepo  *accounts.Repository
	sendDM       func(userID, text string)
}

// NewScheduler creates the task scheduler. Cron runs in UTC; everything
// user facing formats times relative anyway.
func NewScheduler(reminderRepo *reminders.Repository, accountRepo *accounts.Repository, sendDM func(userID, text string)) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		reminderRepo: reminderRepo,
		accountRepo:  accountRepo,
		sendDM:       sendDM,
	}
}

// Start registers and starts all background tasks.
func (s *Scheduler) Start(ctx context.Context) {
	// Reminder delivery every minute.
	s.cron.AddFunc("* * * * *", func() {
		s.deliverReminders(ctx)
	})

	// Nightly economy summary at 03:00.
	s.cron.AddFunc("0 3 * * *", func() {
		s.logEconomySummary(ctx)
	})

	s.cron.Start()
	log.Info("scheduler started")
}

// Stop halts the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("scheduler stopped")
}

// deliverReminders sends all due reminders as DMs. A reminder is marked
// delivered even when the DM fails (closed DMs would otherwise retry
// forever every minute).
func (s *Scheduler) deliverReminders(ctx context.Context) {
	due, err := s.reminderRepo.Due(ctx, 100)
	if err != nil {
		log.WithError(err).Error("[CRON] reminder query failed")
		return
	}

	for _, rem := range due {
		s.sendDM(rem.UserID, fmt.Sprintf("⏰ Reminder: %s", rem.Text))
		if err := s.reminderRepo.MarkDelivered(ctx, rem.ID); err != nil {
			log.WithError(err).WithField("reminder_id", rem.ID).Error("[CRON] mark delivered failed")
		}
	}

	if len(due) > 0 {
		log.WithField("count", len(due)).Info("[CRON] reminders delivered")
	}
}

// logEconomySummary logs account count and total circulation.
func (s *Scheduler) logEconomySummary(ctx context.Context) {
	count, err := s.accountRepo.Count(ctx)
	if err != nil {
		log.WithError(err).Error("[CRON] account count failed")
		return
	}
	total, err := s.accountRepo.TotalCirculation(ctx)
	if err != nil {
		log.WithError(err).Error("[CRON] circulation sum failed")
		return
	}

	log.WithFields(log.Fields{
		"accounts":    count,
		"circulation": common.GroupDigits(total),
	}).Info("[CRON] nightly economy summary")
}
