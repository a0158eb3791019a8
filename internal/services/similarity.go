package services

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/repository"
	"socialfeed/model"
)

const engagementHistorySize = 50

// RankCoEngagement counts, per other user, how many of the given reactions
// they share with the requesting user, and returns the top ids by count.
// Ties break by user id ascending so the ranking is deterministic.
func RankCoEngagement(reactions []model.Reaction, selfID string, excluded map[string]struct{}, limit int) []string {
	counts := make(map[string]int)
	for _, r := range reactions {
		if r.UserID == selfID {
			continue
		}
		if _, ok := excluded[r.UserID]; ok {
			continue
		}
		counts[r.UserID]++
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})

	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}

type SimilarityService struct {
	reactions     repository.ReactionRepository
	subscriptions repository.SubscriptionRepository
}

func NewSimilarityService(reactions repository.ReactionRepository, subscriptions repository.SubscriptionRepository) *SimilarityService {
	return &SimilarityService{reactions: reactions, subscriptions: subscriptions}
}

// FindSimilarUsers ranks other users by co-engagement: reacting to the same
// content the requesting user recently reacted to. Already-followed users
// are excluded since recommendations from them flow through the followed
// pool anyway. The scan is bounded by the user's last 50 engaged items, not
// the whole reaction store.
func (s *SimilarityService) FindSimilarUsers(ctx context.Context, userID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	recent, err := s.reactions.RecentByUser(ctx, userID, engagementHistorySize)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return nil, nil
	}

	itemIDs := make([]bson.ObjectID, 0, len(recent))
	for _, r := range recent {
		itemIDs = append(itemIDs, r.FeedItemID)
	}

	coReactions, err := s.reactions.ByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	followed, err := s.subscriptions.FollowedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded := make(map[string]struct{}, len(followed))
	for _, id := range followed {
		excluded[id] = struct{}{}
	}

	return RankCoEngagement(coReactions, userID, excluded, limit), nil
}
