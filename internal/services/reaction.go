package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/repository"
	"socialfeed/model"
)

type ReactionService struct {
	feed      repository.FeedRepository
	reactions repository.ReactionRepository
	trending  *TrendingService
	log       zerolog.Logger
}

func NewReactionService(feed repository.FeedRepository, reactions repository.ReactionRepository, trending *TrendingService, logger zerolog.Logger) *ReactionService {
	return &ReactionService{
		feed:      feed,
		reactions: reactions,
		trending:  trending,
		log:       logger.With().Str("service", "reaction").Logger(),
	}
}

// AddReaction records the user's reaction to a feed item. Reacting again
// overwrites the previous reaction type rather than stacking a second row,
// so an item's reaction count equals its distinct reacting users. Returns
// true when this was the user's first reaction on the item.
func (s *ReactionService) AddReaction(ctx context.Context, userID string, itemID bson.ObjectID, rt model.ReactionType) (bool, error) {
	if !model.ValidReactionType(rt) {
		return false, validationErr("invalid reaction type %q", rt)
	}
	item, err := s.feed.Get(ctx, itemID)
	if err != nil {
		return false, err
	}
	if item == nil || item.Deleted {
		return false, notFoundErr("feed item")
	}

	created, err := s.reactions.Upsert(ctx, userID, itemID, rt, time.Now().UTC())
	if err != nil {
		return false, err
	}

	if err := s.trending.UpdateTrendingMetrics(ctx, itemID); err != nil {
		return false, err
	}
	return created, nil
}

// GetReaction returns the user's reaction on an item, or nil when absent.
func (s *ReactionService) GetReaction(ctx context.Context, userID string, itemID bson.ObjectID) (*model.Reaction, error) {
	return s.reactions.Find(ctx, userID, itemID)
}
