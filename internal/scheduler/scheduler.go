// Package scheduler runs the periodic maintenance jobs: leaderboard
// recompute, expired perk cleanup and subscription expiry.
package scheduler

import (
	"context"
	"sync"
	"time"

	"promolink/config"
	"promolink/internal/logging"
	"promolink/internal/service"
)

type Scheduler struct {
	cfg           *config.SchedulerConfig
	leaderboard   *service.LeaderboardService
	perks         *service.PerkService
	subscriptions *service.SubscriptionService

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg *config.SchedulerConfig, leaderboard *service.LeaderboardService,
	perks *service.PerkService, subscriptions *service.SubscriptionService) *Scheduler {
	return &Scheduler{
		cfg:           cfg,
		leaderboard:   leaderboard,
		perks:         perks,
		subscriptions: subscriptions,
	}
}

// Start launches the job loops. Call Stop to shut them down.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(2)
	go s.loop(ctx, s.cfg.LeaderboardInterval, s.runLeaderboard)
	go s.loop(ctx, s.cfg.PerkCleanupInterval, s.runCleanup)
	logging.Logger.Info("scheduler started")
}

// Stop cancels the loops and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	logging.Logger.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, job func()) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job()
		}
	}
}

func (s *Scheduler) runLeaderboard() {
	now := time.Now()
	if _, err := s.leaderboard.RecomputeAll(int(now.Month()), now.Year()); err != nil {
		logging.Logger.WithField("error", err.Error()).Error("leaderboard recompute failed")
	}
}

func (s *Scheduler) runCleanup() {
	if _, err := s.perks.CleanupExpired(); err != nil {
		logging.Logger.WithField("error", err.Error()).Error("perk cleanup failed")
	}
	if _, err := s.subscriptions.ExpireOverdue(); err != nil {
		logging.Logger.WithField("error", err.Error()).Error("subscription expiry failed")
	}
}
