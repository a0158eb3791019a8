package services

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/repository"
	"socialfeed/model"
)

// Signal weights. Comments cost more than a bare reaction and shares more
// than comments, so they carry proportionally more weight everywhere they
// appear: in totals (1/3/5), velocities (2/4/6) and window sums (1/3/5).
const (
	weightReaction = 1.0
	weightComment  = 3.0
	weightShare    = 5.0

	velocityWeightReaction = 2.0
	velocityWeightComment  = 4.0
	velocityWeightShare    = 6.0

	windowWeightHourly = 3.0
	windowWeightDaily  = 2.0
	windowWeightWeekly = 1.0

	qualityWeight = 1.2

	scoreScale = 1.5
)

type WindowCounts struct {
	Reactions int
	Comments  int
	Shares    int
}

// EngagementCounts is everything the scorer needs from the store: lifetime
// totals plus the 1h/24h/7d windows.
type EngagementCounts struct {
	Total WindowCounts
	Hour  WindowCounts
	Day   WindowCounts
	Week  WindowCounts
}

func (w WindowCounts) weighted() float64 {
	return float64(w.Reactions)*weightReaction +
		float64(w.Comments)*weightComment +
		float64(w.Shares)*weightShare
}

// RecencyMultiplier decays monotonically with age and is floored at 0.1, so
// very old content is heavily suppressed but never reaches zero.
func RecencyMultiplier(ageHours float64) float64 {
	if ageHours < 0 {
		ageHours = 0
	}
	return math.Max(0.1, 1-math.Log10(ageHours+1)/10)
}

// ComputeSnapshot derives the next trending snapshot from the previous one
// and the current counts. It is a pure function of its arguments: the
// previous snapshot is injected rather than fetched, which is what makes
// velocity (the hourly-normalized delta since last computation) testable.
// First computation (prev == nil) yields zero velocity.
func ComputeSnapshot(prev *model.TrendingSnapshot, counts EngagementCounts, createdAt, now time.Time) model.TrendingSnapshot {
	snap := model.TrendingSnapshot{
		Reactions:        counts.Total.Reactions,
		Comments:         counts.Total.Comments,
		Shares:           counts.Total.Shares,
		HourlyEngagement: counts.Hour.weighted(),
		DailyEngagement:  counts.Day.weighted(),
		WeeklyEngagement: counts.Week.weighted(),
		LastUpdated:      now,
	}

	if prev != nil {
		snap.QualityScore = prev.QualityScore
		elapsedHours := now.Sub(prev.LastUpdated).Hours()
		if elapsedHours > 0 {
			snap.ReactionVelocity = float64(counts.Total.Reactions-prev.Reactions) / elapsedHours
			snap.CommentVelocity = float64(counts.Total.Comments-prev.Comments) / elapsedHours
			snap.ShareVelocity = float64(counts.Total.Shares-prev.Shares) / elapsedHours
		}
	}

	score := float64(snap.Reactions)*weightReaction +
		float64(snap.Comments)*weightComment +
		float64(snap.Shares)*weightShare
	score += snap.ReactionVelocity*velocityWeightReaction +
		snap.CommentVelocity*velocityWeightComment +
		snap.ShareVelocity*velocityWeightShare
	score += snap.HourlyEngagement*windowWeightHourly +
		snap.DailyEngagement*windowWeightDaily +
		snap.WeeklyEngagement*windowWeightWeekly
	if snap.QualityScore != 0 {
		score += snap.QualityScore * qualityWeight
	}

	ageHours := now.Sub(createdAt).Hours()
	snap.TrendingScore = score * RecencyMultiplier(ageHours) * scoreScale

	return snap
}

type TrendingService struct {
	feed      repository.FeedRepository
	reactions repository.ReactionRepository
	comments  repository.CommentRepository
	trending  repository.TrendingRepository
	log       zerolog.Logger
}

func NewTrendingService(
	feed repository.FeedRepository,
	reactions repository.ReactionRepository,
	comments repository.CommentRepository,
	trending repository.TrendingRepository,
	logger zerolog.Logger,
) *TrendingService {
	return &TrendingService{
		feed:      feed,
		reactions: reactions,
		comments:  comments,
		trending:  trending,
		log:       logger.With().Str("service", "trending").Logger(),
	}
}

// UpdateTrendingMetrics recomputes and upserts the snapshot for one item.
// Idempotent and safe to call concurrently for different ids; for the same
// id the atomic upsert makes the latest call win. A vanished or deleted item
// is a no-op, never an error: derived work must tolerate its subject
// disappearing.
func (s *TrendingService) UpdateTrendingMetrics(ctx context.Context, contentID bson.ObjectID) error {
	item, err := s.feed.Get(ctx, contentID)
	if err != nil {
		return err
	}
	if item == nil || item.Deleted {
		return nil
	}

	prev, err := s.trending.Get(ctx, contentID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	counts, err := s.gatherCounts(ctx, item, now)
	if err != nil {
		return err
	}

	snap := ComputeSnapshot(prev, counts, item.CreatedAt, now)
	snap.ContentID = contentID
	snap.Topics = item.Hashtags

	if err := s.trending.Upsert(ctx, snap); err != nil {
		return err
	}
	s.log.Debug().
		Str("content_id", contentID.Hex()).
		Float64("score", snap.TrendingScore).
		Msg("trending snapshot updated")
	return nil
}

func (s *TrendingService) gatherCounts(ctx context.Context, item *model.FeedItem, now time.Time) (EngagementCounts, error) {
	var counts EngagementCounts
	parentID := item.ID.Hex()

	var err error
	if counts.Total.Reactions, err = s.reactions.CountByItem(ctx, item.ID); err != nil {
		return counts, err
	}
	if counts.Total.Comments, err = s.comments.CountRoots(ctx, parentID); err != nil {
		return counts, err
	}
	if counts.Total.Shares, err = s.feed.CountShares(ctx, item.ID); err != nil {
		return counts, err
	}

	windows := []struct {
		since time.Time
		out   *WindowCounts
	}{
		{now.Add(-time.Hour), &counts.Hour},
		{now.Add(-24 * time.Hour), &counts.Day},
		{now.Add(-7 * 24 * time.Hour), &counts.Week},
	}
	for _, w := range windows {
		if w.out.Reactions, err = s.reactions.CountByItemSince(ctx, item.ID, w.since); err != nil {
			return counts, err
		}
		if w.out.Comments, err = s.comments.CountRootsSince(ctx, parentID, w.since); err != nil {
			return counts, err
		}
		if w.out.Shares, err = s.feed.CountSharesSince(ctx, item.ID, w.since); err != nil {
			return counts, err
		}
	}
	return counts, nil
}
