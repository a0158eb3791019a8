package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/repository"
	"socialfeed/internal/utils"
	"socialfeed/model"
)

const recommendedAuthorSample = 10

// FeedPage is a page of enriched items plus the continuation cursor.
type FeedPage struct {
	Page           []model.EnrichedFeedItem `json:"page"`
	ContinueCursor *string                  `json:"continueCursor"`
	IsDone         bool                     `json:"isDone"`
}

type FeedService struct {
	feed          repository.FeedRepository
	reactions     repository.ReactionRepository
	comments      repository.CommentRepository
	users         repository.UserRepository
	subscriptions repository.SubscriptionRepository
	hashtags      repository.HashtagRepository
	similarity    *SimilarityService
	log           zerolog.Logger
}

func NewFeedService(
	feed repository.FeedRepository,
	reactions repository.ReactionRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
	subscriptions repository.SubscriptionRepository,
	hashtags repository.HashtagRepository,
	similarity *SimilarityService,
	logger zerolog.Logger,
) *FeedService {
	return &FeedService{
		feed:          feed,
		reactions:     reactions,
		comments:      comments,
		users:         users,
		subscriptions: subscriptions,
		hashtags:      hashtags,
		similarity:    similarity,
		log:           logger.With().Str("service", "feed").Logger(),
	}
}

func notDeleted() bson.M { return bson.M{"$ne": true} }

// UniversalFeed pages public items, newest first.
func (s *FeedService) UniversalFeed(ctx context.Context, opts repository.PageOptions) (FeedPage, error) {
	return s.page(ctx, bson.M{
		"visibility": model.VisibilityPublic,
		"deleted":    notDeleted(),
	}, opts)
}

// PersonalizedFeed pages public items plus private items authored by the
// viewer or by users the viewer follows.
func (s *FeedService) PersonalizedFeed(ctx context.Context, userID string, opts repository.PageOptions) (FeedPage, error) {
	followed, err := s.subscriptions.FollowedUserIDs(ctx, userID)
	if err != nil {
		return FeedPage{}, err
	}
	creators := append(followed, userID)
	return s.page(ctx, bson.M{
		"deleted": notDeleted(),
		"$or": []bson.M{
			{"visibility": model.VisibilityPublic},
			{"visibility": model.VisibilityPrivate, "creator_id": bson.M{"$in": creators}},
		},
	}, opts)
}

// GroupFeed pages a group's items. Group membership is enforced upstream.
func (s *FeedService) GroupFeed(ctx context.Context, groupID string, opts repository.PageOptions) (FeedPage, error) {
	return s.page(ctx, bson.M{
		"module_type": model.ModuleTypeGroup,
		"module_id":   groupID,
		"deleted":     notDeleted(),
	}, opts)
}

// ProfileFeed pages a user's items. Viewers other than the profile owner
// only see public items.
func (s *FeedService) ProfileFeed(ctx context.Context, profileID, viewerID string, opts repository.PageOptions) (FeedPage, error) {
	filter := bson.M{
		"creator_id": profileID,
		"deleted":    notDeleted(),
	}
	if viewerID != profileID {
		filter["visibility"] = model.VisibilityPublic
	}
	return s.page(ctx, filter, opts)
}

// HashtagFeed pages public items carrying the tag and returns the hashtag
// document alongside, when one exists.
func (s *FeedService) HashtagFeed(ctx context.Context, tag string, opts repository.PageOptions) (FeedPage, *model.Hashtag, error) {
	tag = utils.NormalizeTag(tag)
	if tag == "" {
		return FeedPage{}, nil, validationErr("tag cannot be empty")
	}
	doc, err := s.hashtags.FindByTag(ctx, tag)
	if err != nil {
		return FeedPage{}, nil, err
	}
	page, err := s.page(ctx, bson.M{
		"hashtags":   tag,
		"visibility": model.VisibilityPublic,
		"deleted":    notDeleted(),
	}, opts)
	if err != nil {
		return FeedPage{}, nil, err
	}
	return page, doc, nil
}

// RecommendedContent pages all public items, plus everything authored by
// users with overlapping engagement. With no similar users it degrades to
// the universal feed.
func (s *FeedService) RecommendedContent(ctx context.Context, userID string, opts repository.PageOptions) (FeedPage, error) {
	similar, err := s.similarity.FindSimilarUsers(ctx, userID, recommendedAuthorSample)
	if err != nil {
		return FeedPage{}, err
	}
	filter := bson.M{
		"deleted": notDeleted(),
	}
	if len(similar) > 0 {
		filter["$or"] = []bson.M{
			{"creator_id": bson.M{"$in": similar}},
			{"visibility": model.VisibilityPublic},
		}
	} else {
		filter["visibility"] = model.VisibilityPublic
	}
	return s.page(ctx, filter, opts)
}

// GetItem fetches a single enriched item. Private items are only visible to
// their creator.
func (s *FeedService) GetItem(ctx context.Context, id bson.ObjectID, viewerID string) (*model.EnrichedFeedItem, error) {
	item, err := s.feed.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Deleted {
		return nil, notFoundErr("feed item")
	}
	if item.Visibility == model.VisibilityPrivate && item.CreatorID != viewerID {
		return nil, permissionErr("view this item")
	}
	enriched, err := s.enrich(ctx, []model.FeedItem{*item})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

func (s *FeedService) page(ctx context.Context, filter bson.M, opts repository.PageOptions) (FeedPage, error) {
	raw, err := s.feed.ListPage(ctx, filter, opts, repository.OrderDesc)
	if err != nil {
		return FeedPage{}, err
	}
	enriched, err := s.enrich(ctx, raw.Page)
	if err != nil {
		return FeedPage{}, err
	}
	return FeedPage{Page: enriched, ContinueCursor: raw.ContinueCursor, IsDone: raw.IsDone}, nil
}

// enrich attaches reaction/comment counts and the creator profile to each
// item. Missing creators render as a placeholder instead of failing the page.
func (s *FeedService) enrich(ctx context.Context, items []model.FeedItem) ([]model.EnrichedFeedItem, error) {
	creatorIDs := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.CreatorID]; !ok {
			seen[item.CreatorID] = struct{}{}
			creatorIDs = append(creatorIDs, item.CreatorID)
		}
	}
	creators, err := s.users.FindByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedFeedItem, 0, len(items))
	for _, item := range items {
		reactions, err := s.reactions.CountByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		comments, err := s.comments.CountRoots(ctx, item.ID.Hex())
		if err != nil {
			return nil, err
		}
		creator := model.Creator{ID: item.CreatorID, Name: "Unknown User"}
		if u, ok := creators[item.CreatorID]; ok {
			creator.Name = u.Name
			creator.Image = u.Image
		}
		enriched = append(enriched, model.EnrichedFeedItem{
			FeedItem:       item,
			ReactionsCount: reactions,
			CommentsCount:  comments,
			Creator:        creator,
		})
	}
	return enriched, nil
}
