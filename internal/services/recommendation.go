package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/repository"
	"socialfeed/model"
)

const (
	defaultRecommendationLimit = 10
	topicPoolPerTag            = 5
	userPoolPerCreator         = 3
	trendingPoolSize           = 20
	popularHashtagPool         = 20
)

// Candidate is one discovered content item before scoring. TrendingScore is
// only attached for candidates found through the trending pool.
type Candidate struct {
	Item          model.FeedItem
	TrendingScore float64
}

// Signals are the per-user preference inputs to scoring.
type Signals struct {
	// RelatedHashtags is the intersection of globally popular tags with the
	// tags on content the user engaged with: only promote topics that are
	// both popular and personally relevant.
	RelatedHashtags map[string]struct{}
	FollowedUsers   map[string]struct{}
}

// ScoreCandidate assigns the relevance score and reason for one candidate.
// Base 1.0; +0.5 per related hashtag (reason topic, context = first match);
// +2.0 and reason similarUser when authored by a followed user; trending
// score/100 added, upgrading the reason only when nothing stronger claimed
// it. The recency multiplier is the scorer's, without its scale constant.
func ScoreCandidate(c Candidate, sig Signals, now time.Time) (float64, model.ReasonType, string) {
	score := 1.0
	reason := model.ReasonNewContent
	context := ""

	for _, tag := range c.Item.Hashtags {
		if _, ok := sig.RelatedHashtags[tag]; ok {
			score += 0.5
			if context == "" {
				reason = model.ReasonTopic
				context = tag
			}
		}
	}

	if _, ok := sig.FollowedUsers[c.Item.CreatorID]; ok {
		score += 2.0
		reason = model.ReasonSimilarUser
		context = ""
	}

	if c.TrendingScore > 0 {
		score += c.TrendingScore / 100
		if reason == model.ReasonNewContent {
			reason = model.ReasonTrending
		}
	}

	score *= RecencyMultiplier(now.Sub(c.Item.CreatedAt).Hours())
	return score, reason, context
}

type RecommendationService struct {
	feed            repository.FeedRepository
	reactions       repository.ReactionRepository
	hashtags        repository.HashtagRepository
	topicFollows    repository.TopicFollowRepository
	subscriptions   repository.SubscriptionRepository
	trending        repository.TrendingRepository
	recommendations repository.RecommendationRepository
	log             zerolog.Logger
}

func NewRecommendationService(
	feed repository.FeedRepository,
	reactions repository.ReactionRepository,
	hashtags repository.HashtagRepository,
	topicFollows repository.TopicFollowRepository,
	subscriptions repository.SubscriptionRepository,
	trending repository.TrendingRepository,
	recommendations repository.RecommendationRepository,
	logger zerolog.Logger,
) *RecommendationService {
	return &RecommendationService{
		feed:            feed,
		reactions:       reactions,
		hashtags:        hashtags,
		topicFollows:    topicFollows,
		subscriptions:   subscriptions,
		trending:        trending,
		recommendations: recommendations,
		log:             logger.With().Str("service", "recommendation").Logger(),
	}
}

// GenerateRecommendations produces up to limit new recommendation rows for
// the user. Existing rows are never updated: content already recommended,
// already engaged with, or authored by the user is skipped.
func (s *RecommendationService) GenerateRecommendations(ctx context.Context, userID string, limit int) error {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	now := time.Now().UTC()

	sig, engaged, followedTags, followedUsers, err := s.gatherSignals(ctx, userID)
	if err != nil {
		return err
	}

	candidates, err := s.gatherCandidates(ctx, followedTags, followedUsers)
	if err != nil {
		return err
	}

	existing, err := s.recommendations.ExistingContentIDs(ctx, userID)
	if err != nil {
		return err
	}

	type scored struct {
		candidate Candidate
		score     float64
		reason    model.ReasonType
		context   string
		order     int
	}

	// Deduplicate by content id, keeping a later variant only when it scores
	// strictly higher; discovery order (topic, then followed user, then
	// trending) is the implicit tie-break.
	best := make(map[bson.ObjectID]scored)
	for i, c := range candidates {
		if c.Item.Deleted || c.Item.CreatorID == userID {
			continue
		}
		if _, ok := engaged[c.Item.ID]; ok {
			continue
		}
		if _, ok := existing[c.Item.ID]; ok {
			continue
		}
		score, reason, context := ScoreCandidate(c, sig, now)
		cur, ok := best[c.Item.ID]
		if !ok || score > cur.score {
			order := i
			if ok {
				order = cur.order
			}
			best[c.Item.ID] = scored{candidate: c, score: score, reason: reason, context: context, order: order}
		}
	}

	ranked := make([]scored, 0, len(best))
	for _, sc := range best {
		ranked = append(ranked, sc)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].order < ranked[j].order
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	recs := make([]model.Recommendation, 0, len(ranked))
	for _, sc := range ranked {
		recs = append(recs, model.Recommendation{
			UserID:         userID,
			ContentID:      sc.candidate.Item.ID,
			RelevanceScore: sc.score,
			ReasonType:     sc.reason,
			ReasonContext:  sc.context,
			GeneratedAt:    now,
			Seen:           false,
			Interacted:     false,
		})
	}

	if err := s.recommendations.InsertMany(ctx, recs); err != nil {
		return err
	}
	s.log.Debug().
		Str("user_id", userID).
		Int("candidates", len(candidates)).
		Int("inserted", len(recs)).
		Msg("recommendations generated")
	return nil
}

// gatherSignals loads the user's preference inputs: followed topic tags,
// followed user ids, the engaged-content exclusion set and the related
// hashtag set derived from the last 50 reactions.
func (s *RecommendationService) gatherSignals(ctx context.Context, userID string) (Signals, map[bson.ObjectID]struct{}, []string, []string, error) {
	follows, err := s.topicFollows.ListByUser(ctx, userID, 0)
	if err != nil {
		return Signals{}, nil, nil, nil, err
	}
	topicIDs := make([]bson.ObjectID, 0, len(follows))
	for _, f := range follows {
		topicIDs = append(topicIDs, f.TopicID)
	}
	topics, err := s.hashtags.GetMany(ctx, topicIDs)
	if err != nil {
		return Signals{}, nil, nil, nil, err
	}
	followedTags := make([]string, 0, len(topics))
	for _, t := range topics {
		followedTags = append(followedTags, t.Tag)
	}

	followedUsers, err := s.subscriptions.FollowedUserIDs(ctx, userID)
	if err != nil {
		return Signals{}, nil, nil, nil, err
	}

	recent, err := s.reactions.RecentByUser(ctx, userID, engagementHistorySize)
	if err != nil {
		return Signals{}, nil, nil, nil, err
	}
	engaged := make(map[bson.ObjectID]struct{}, len(recent))
	engagedIDs := make([]bson.ObjectID, 0, len(recent))
	for _, r := range recent {
		if _, ok := engaged[r.FeedItemID]; !ok {
			engaged[r.FeedItemID] = struct{}{}
			engagedIDs = append(engagedIDs, r.FeedItemID)
		}
	}
	engagedItems, err := s.feed.GetMany(ctx, engagedIDs)
	if err != nil {
		return Signals{}, nil, nil, nil, err
	}
	engagedHashtags := make(map[string]struct{})
	for _, item := range engagedItems {
		for _, tag := range item.Hashtags {
			engagedHashtags[tag] = struct{}{}
		}
	}

	popular, err := s.hashtags.TopByUsage(ctx, popularHashtagPool)
	if err != nil {
		return Signals{}, nil, nil, nil, err
	}
	related := make(map[string]struct{})
	for _, h := range popular {
		if _, ok := engagedHashtags[h.Tag]; ok {
			related[h.Tag] = struct{}{}
		}
	}

	sig := Signals{
		RelatedHashtags: related,
		FollowedUsers:   make(map[string]struct{}, len(followedUsers)),
	}
	for _, id := range followedUsers {
		sig.FollowedUsers[id] = struct{}{}
	}
	return sig, engaged, followedTags, followedUsers, nil
}

// gatherCandidates builds the three independent pools in discovery order:
// recent content per followed topic, recent content per followed user, and
// the globally top trending items.
func (s *RecommendationService) gatherCandidates(ctx context.Context, followedTags, followedUsers []string) ([]Candidate, error) {
	var candidates []Candidate

	for _, tag := range followedTags {
		items, err := s.feed.RecentByHashtag(ctx, tag, topicPoolPerTag)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			candidates = append(candidates, Candidate{Item: item})
		}
	}

	for _, uid := range followedUsers {
		items, err := s.feed.RecentByCreator(ctx, uid, userPoolPerCreator)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			candidates = append(candidates, Candidate{Item: item})
		}
	}

	snaps, err := s.trending.TopByScore(ctx, trendingPoolSize)
	if err != nil {
		return nil, err
	}
	scoreByID := make(map[bson.ObjectID]float64, len(snaps))
	trendingIDs := make([]bson.ObjectID, 0, len(snaps))
	for _, snap := range snaps {
		scoreByID[snap.ContentID] = snap.TrendingScore
		trendingIDs = append(trendingIDs, snap.ContentID)
	}
	items, err := s.feed.GetMany(ctx, trendingIDs)
	if err != nil {
		return nil, err
	}
	// GetMany does not preserve order; re-rank by snapshot score so the
	// trending pool keeps a deterministic discovery order.
	sort.SliceStable(items, func(i, j int) bool {
		return scoreByID[items[i].ID] > scoreByID[items[j].ID]
	})
	for _, item := range items {
		candidates = append(candidates, Candidate{Item: item, TrendingScore: scoreByID[item.ID]})
	}

	return candidates, nil
}

// MarkSeen flags a recommendation as shown to the user. Soft marker only.
func (s *RecommendationService) MarkSeen(ctx context.Context, userID string, contentID bson.ObjectID) error {
	return s.recommendations.MarkSeen(ctx, userID, contentID)
}

// MarkInteracted flags a recommendation as acted on, optionally recording
// the user's verdict on it.
func (s *RecommendationService) MarkInteracted(ctx context.Context, userID string, contentID bson.ObjectID, reaction model.RecReaction) error {
	switch reaction {
	case "", model.RecReactionLike, model.RecReactionDislike, model.RecReactionNeutral:
	default:
		return validationErr("invalid recommendation reaction %q", reaction)
	}
	return s.recommendations.MarkInteracted(ctx, userID, contentID, reaction)
}

func (s *RecommendationService) ListForUser(ctx context.Context, userID string, limit int) ([]model.Recommendation, error) {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	return s.recommendations.ListByUser(ctx, userID, limit)
}
