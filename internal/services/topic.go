package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/repository"
	"socialfeed/internal/utils"
	"socialfeed/model"
)

const (
	topicSuggestionLimit   = 10
	similarUserSampleSize  = 10
	hashtagEngagementDepth = 50
)

type TopicService struct {
	hashtags        repository.HashtagRepository
	follows         repository.TopicFollowRepository
	reactions       repository.ReactionRepository
	feed            repository.FeedRepository
	similarity      *SimilarityService
	recommendations *RecommendationService
	log             zerolog.Logger
}

func NewTopicService(
	hashtags repository.HashtagRepository,
	follows repository.TopicFollowRepository,
	reactions repository.ReactionRepository,
	feed repository.FeedRepository,
	similarity *SimilarityService,
	recommendations *RecommendationService,
	logger zerolog.Logger,
) *TopicService {
	return &TopicService{
		hashtags:        hashtags,
		follows:         follows,
		reactions:       reactions,
		feed:            feed,
		similarity:      similarity,
		recommendations: recommendations,
		log:             logger.With().Str("service", "topic").Logger(),
	}
}

// FollowTopic records the follow, bumps the follower counter and promotes
// the hashtag to a topic on its first follow. Following an already-followed
// topic is a no-op so the counter never double-counts a user. A fresh follow
// is a strong interest signal, so it also refreshes the user's
// recommendations.
func (s *TopicService) FollowTopic(ctx context.Context, userID string, topicID bson.ObjectID) error {
	topic, err := s.hashtags.Get(ctx, topicID)
	if err != nil {
		return err
	}
	if topic == nil {
		return notFoundErr("topic")
	}

	existing, err := s.follows.Find(ctx, userID, topicID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if err := s.follows.Insert(ctx, model.TopicFollow{
		UserID:     userID,
		TopicID:    topicID,
		FollowedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}
	if err := s.hashtags.IncrementFollowers(ctx, topicID, 1); err != nil {
		return err
	}
	if !topic.IsTopic {
		if err := s.hashtags.Patch(ctx, topicID, bson.M{"is_topic": true}); err != nil {
			return err
		}
	}

	if err := s.recommendations.GenerateRecommendations(ctx, userID, defaultRecommendationLimit); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("recommendation refresh after follow failed")
	}
	return nil
}

// UnfollowTopic removes the follow edge and decrements the follower counter.
// Returns false when the user was not following; the counter never goes
// below zero even on repeated unfollows.
func (s *TopicService) UnfollowTopic(ctx context.Context, userID string, topicID bson.ObjectID) (bool, error) {
	follow, err := s.follows.Find(ctx, userID, topicID)
	if err != nil {
		return false, err
	}
	if follow == nil {
		return false, nil
	}

	if err := s.follows.Delete(ctx, userID, topicID); err != nil {
		return false, err
	}
	if err := s.hashtags.IncrementFollowers(ctx, topicID, -1); err != nil {
		return false, err
	}
	return true, nil
}

type UpsertTopicInput struct {
	Tag         string
	Category    string
	Description string
	CoverImage  string
}

// CreateOrUpdateTopic curates a hashtag into a browsable topic, creating the
// hashtag row when nothing has used the tag yet.
func (s *TopicService) CreateOrUpdateTopic(ctx context.Context, in UpsertTopicInput) (bson.ObjectID, error) {
	tag := utils.NormalizeTag(in.Tag)
	if tag == "" {
		return bson.NilObjectID, validationErr("tag cannot be empty")
	}

	existing, err := s.hashtags.FindByTag(ctx, tag)
	if err != nil {
		return bson.NilObjectID, err
	}
	if existing != nil {
		update := bson.M{"is_topic": true}
		if in.Category != "" {
			update["category"] = in.Category
		}
		if in.Description != "" {
			update["description"] = in.Description
		}
		if in.CoverImage != "" {
			update["cover_image"] = in.CoverImage
		}
		if err := s.hashtags.Patch(ctx, existing.ID, update); err != nil {
			return bson.NilObjectID, err
		}
		return existing.ID, nil
	}

	return s.hashtags.Insert(ctx, model.Hashtag{
		Tag:         tag,
		IsTopic:     true,
		LastUsed:    time.Now().UTC(),
		Category:    in.Category,
		Description: in.Description,
		CoverImage:  in.CoverImage,
	})
}

func (s *TopicService) GetTopic(ctx context.Context, id bson.ObjectID) (*model.Hashtag, error) {
	topic, err := s.hashtags.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, notFoundErr("topic")
	}
	return topic, nil
}

func (s *TopicService) ListTopics(ctx context.Context, category string, limit int) ([]model.Hashtag, error) {
	if limit <= 0 {
		limit = topicSuggestionLimit
	}
	return s.hashtags.ListTopics(ctx, category, limit)
}

func (s *TopicService) IsFollowing(ctx context.Context, userID string, topicID bson.ObjectID) (bool, error) {
	follow, err := s.follows.Find(ctx, userID, topicID)
	if err != nil {
		return false, err
	}
	return follow != nil, nil
}

// FollowedTopics returns the user's topics ordered by follow recency.
func (s *TopicService) FollowedTopics(ctx context.Context, userID string) ([]model.Hashtag, error) {
	follows, err := s.follows.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	if len(follows) == 0 {
		return nil, nil
	}

	ids := make([]bson.ObjectID, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.TopicID)
	}
	topics, err := s.hashtags.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[bson.ObjectID]model.Hashtag, len(topics))
	for _, t := range topics {
		byID[t.ID] = t
	}
	ordered := make([]model.Hashtag, 0, len(follows))
	for _, f := range follows {
		if t, ok := byID[f.TopicID]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

// TopicSuggestions recommends topics the user does not follow yet: first the
// topics followed by co-engaging users, ranked by how many of them follow
// each, then popular topics to fill the remainder.
func (s *TopicService) TopicSuggestions(ctx context.Context, userID string, limit int) ([]model.Hashtag, error) {
	if limit <= 0 {
		limit = topicSuggestionLimit
	}

	own, err := s.follows.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	followed := make(map[bson.ObjectID]struct{}, len(own))
	for _, f := range own {
		followed[f.TopicID] = struct{}{}
	}

	similar, err := s.similarity.FindSimilarUsers(ctx, userID, similarUserSampleSize)
	if err != nil {
		return nil, err
	}
	theirFollows, err := s.follows.ListByUsers(ctx, similar)
	if err != nil {
		return nil, err
	}

	counts := make(map[bson.ObjectID]int)
	var order []bson.ObjectID
	for _, f := range theirFollows {
		if _, ok := followed[f.TopicID]; ok {
			continue
		}
		if _, seen := counts[f.TopicID]; !seen {
			order = append(order, f.TopicID)
		}
		counts[f.TopicID]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	topics, err := s.hashtags.GetMany(ctx, order)
	if err != nil {
		return nil, err
	}
	byID := make(map[bson.ObjectID]model.Hashtag, len(topics))
	for _, t := range topics {
		byID[t.ID] = t
	}
	suggestions := make([]model.Hashtag, 0, limit)
	picked := make(map[bson.ObjectID]struct{}, limit)
	for _, id := range order {
		if t, ok := byID[id]; ok {
			suggestions = append(suggestions, t)
			picked[id] = struct{}{}
		}
	}

	if len(suggestions) < limit {
		popular, err := s.hashtags.TopTopicsByFollowers(ctx, limit+len(followed))
		if err != nil {
			return nil, err
		}
		for _, t := range popular {
			if len(suggestions) >= limit {
				break
			}
			if _, ok := followed[t.ID]; ok {
				continue
			}
			if _, ok := picked[t.ID]; ok {
				continue
			}
			suggestions = append(suggestions, t)
			picked[t.ID] = struct{}{}
		}
	}
	return suggestions, nil
}

// RecommendedHashtags surfaces tags adjacent to the user's engagement: tags
// on recently reacted-to items ranked by co-occurrence, topped up with
// globally popular tags. Tags already followed as topics are skipped.
func (s *TopicService) RecommendedHashtags(ctx context.Context, userID string, limit int) ([]model.Hashtag, error) {
	if limit <= 0 {
		limit = topicSuggestionLimit
	}

	followedTags := make(map[string]struct{})
	own, err := s.follows.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	if len(own) > 0 {
		ids := make([]bson.ObjectID, 0, len(own))
		for _, f := range own {
			ids = append(ids, f.TopicID)
		}
		topics, err := s.hashtags.GetMany(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, t := range topics {
			followedTags[t.Tag] = struct{}{}
		}
	}

	reactions, err := s.reactions.RecentByUser(ctx, userID, hashtagEngagementDepth)
	if err != nil {
		return nil, err
	}
	itemIDs := make([]bson.ObjectID, 0, len(reactions))
	for _, r := range reactions {
		itemIDs = append(itemIDs, r.FeedItemID)
	}
	items, err := s.feed.GetMany(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	freq := make(map[string]int)
	var order []string
	for _, item := range items {
		for _, tag := range item.Hashtags {
			if _, ok := followedTags[tag]; ok {
				continue
			}
			if _, seen := freq[tag]; !seen {
				order = append(order, tag)
			}
			freq[tag]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	picked := make(map[string]struct{}, limit)
	result := make([]model.Hashtag, 0, limit)
	for _, tag := range order {
		doc, err := s.hashtags.FindByTag(ctx, tag)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			result = append(result, *doc)
			picked[tag] = struct{}{}
		}
	}

	if len(result) < limit {
		popular, err := s.hashtags.TopByUsage(ctx, limit+len(followedTags))
		if err != nil {
			return nil, err
		}
		for _, t := range popular {
			if len(result) >= limit {
				break
			}
			if _, ok := followedTags[t.Tag]; ok {
				continue
			}
			if _, ok := picked[t.Tag]; ok {
				continue
			}
			result = append(result, t)
			picked[t.Tag] = struct{}{}
		}
	}
	return result, nil
}
