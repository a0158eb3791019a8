package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"socialfeed/internal/repository"
)

const (
	cycleTimeout  = 30 * time.Minute
	entityTimeout = 30 * time.Second
)

type SchedulerConfig struct {
	Interval          time.Duration
	RunOnStartup      bool
	TrendingBatchSize int
	ActiveUserWindow  time.Duration
}

// Scheduler periodically re-scores recent content and regenerates
// recommendations for recently active users. Each entity is processed under
// its own timeout and a failure on one never aborts the cycle.
type Scheduler struct {
	cfg             SchedulerConfig
	feed            repository.FeedRepository
	reactions       repository.ReactionRepository
	trending        *TrendingService
	recommendations *RecommendationService
	log             zerolog.Logger
}

func NewScheduler(
	cfg SchedulerConfig,
	feed repository.FeedRepository,
	reactions repository.ReactionRepository,
	trending *TrendingService,
	recommendations *RecommendationService,
	logger zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		cfg:             cfg,
		feed:            feed,
		reactions:       reactions,
		trending:        trending,
		recommendations: recommendations,
		log:             logger.With().Str("service", "scheduler").Logger(),
	}
}

// Run blocks, executing a cycle every Interval until ctx is cancelled.
// Intended to be started in its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	if s.cfg.RunOnStartup {
		s.runCycle(ctx)
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	stats, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("scheduler cycle failed")
		return
	}
	s.log.Info().
		Int("items_scored", stats.ItemsScored).
		Int("item_errors", stats.ItemErrors).
		Int("users_refreshed", stats.UsersRefreshed).
		Int("user_errors", stats.UserErrors).
		Msg("scheduler cycle done")
}

type CycleStats struct {
	ItemsScored    int `json:"itemsScored"`
	ItemErrors     int `json:"itemErrors"`
	UsersRefreshed int `json:"usersRefreshed"`
	UserErrors     int `json:"userErrors"`
}

// RunOnce executes a single maintenance cycle: re-score the most recent
// content batch, then regenerate recommendations for users active inside the
// configured window. Also serves the manual trigger endpoint.
func (s *Scheduler) RunOnce(ctx context.Context) (CycleStats, error) {
	ctx, cancel := context.WithTimeout(ctx, cycleTimeout)
	defer cancel()

	var stats CycleStats

	items, err := s.feed.MostRecent(ctx, s.cfg.TrendingBatchSize)
	if err != nil {
		return stats, err
	}
	for _, item := range items {
		if err := s.withEntityTimeout(ctx, func(c context.Context) error {
			return s.trending.UpdateTrendingMetrics(c, item.ID)
		}); err != nil {
			stats.ItemErrors++
			s.log.Warn().Err(err).Str("item_id", item.ID.Hex()).Msg("trending re-score failed")
			continue
		}
		stats.ItemsScored++
	}

	since := time.Now().UTC().Add(-s.cfg.ActiveUserWindow)
	userIDs, err := s.reactions.ActiveUserIDs(ctx, since)
	if err != nil {
		return stats, err
	}
	for _, userID := range userIDs {
		if err := s.withEntityTimeout(ctx, func(c context.Context) error {
			return s.recommendations.GenerateRecommendations(c, userID, defaultRecommendationLimit)
		}); err != nil {
			stats.UserErrors++
			s.log.Warn().Err(err).Str("user_id", userID).Msg("recommendation refresh failed")
			continue
		}
		stats.UsersRefreshed++
	}

	return stats, ctx.Err()
}

func (s *Scheduler) withEntityTimeout(ctx context.Context, fn func(context.Context) error) error {
	entityCtx, cancel := context.WithTimeout(ctx, entityTimeout)
	defer cancel()
	return fn(entityCtx)
}
