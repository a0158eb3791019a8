package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/repository"
	"socialfeed/internal/utils"
	"socialfeed/model"
)

type PostService struct {
	feed     repository.FeedRepository
	hashtags repository.HashtagRepository
	trending *TrendingService
	log      zerolog.Logger
}

func NewPostService(feed repository.FeedRepository, hashtags repository.HashtagRepository, trending *TrendingService, logger zerolog.Logger) *PostService {
	return &PostService{
		feed:     feed,
		hashtags: hashtags,
		trending: trending,
		log:      logger.With().Str("service", "post").Logger(),
	}
}

type CreatePostInput struct {
	CreatorID  string
	Content    string
	MediaURLs  []string
	Visibility model.Visibility
	ModuleType model.ModuleType
	ModuleID   string
}

func validVisibility(v model.Visibility) bool {
	return v == model.VisibilityPublic || v == model.VisibilityPrivate || v == model.VisibilityGroup
}

// processTags extracts mentions and hashtags from content and bumps the
// usage counter for every hashtag occurrence, creating hashtag rows on
// first use. Mentioned-user resolution is external; only the raw names are
// recorded.
func (s *PostService) processTags(ctx context.Context, content string, now time.Time) (mentions, hashtags []string, err error) {
	mentions = utils.ExtractMentions(content)
	hashtags = utils.ExtractHashtags(content)
	for _, tag := range hashtags {
		if err := s.hashtags.IncrementUsage(ctx, tag, now); err != nil {
			return nil, nil, err
		}
	}
	return mentions, hashtags, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (bson.ObjectID, error) {
	if strings.TrimSpace(in.Content) == "" {
		return bson.NilObjectID, validationErr("content cannot be empty")
	}
	if !validVisibility(in.Visibility) {
		return bson.NilObjectID, validationErr("invalid visibility %q", in.Visibility)
	}
	if in.Visibility == model.VisibilityGroup && in.ModuleType != model.ModuleTypeGroup {
		return bson.NilObjectID, validationErr("group visibility requires moduleType to be 'group'")
	}

	now := time.Now().UTC()
	mentions, hashtags, err := s.processTags(ctx, in.Content, now)
	if err != nil {
		return bson.NilObjectID, err
	}

	id, err := s.feed.Insert(ctx, model.FeedItem{
		ContentType:      model.ContentTypePost,
		CreatorID:        in.CreatorID,
		Content:          in.Content,
		MediaURLs:        in.MediaURLs,
		Visibility:       in.Visibility,
		ModuleType:       in.ModuleType,
		ModuleID:         in.ModuleID,
		Hashtags:         hashtags,
		Mentions:         mentions,
		MentionedUserIDs: []string{},
		CreatedAt:        now,
	})
	if err != nil {
		return bson.NilObjectID, err
	}

	if err := s.trending.UpdateTrendingMetrics(ctx, id); err != nil {
		return bson.NilObjectID, err
	}
	return id, nil
}

type UpdatePostInput struct {
	PostID     bson.ObjectID
	UserID     string
	Content    *string
	MediaURLs  []string
	Visibility *model.Visibility
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) error {
	post, err := s.feed.Get(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post == nil || post.Deleted {
		return notFoundErr("post")
	}
	if post.CreatorID != in.UserID {
		return permissionErr("update this post")
	}
	if in.Visibility != nil && *in.Visibility == model.VisibilityGroup && post.ModuleType != model.ModuleTypeGroup {
		return validationErr("group visibility requires moduleType to be 'group'")
	}

	update := bson.M{}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return validationErr("content cannot be empty")
		}
		mentions, hashtags, err := s.processTags(ctx, *in.Content, time.Now().UTC())
		if err != nil {
			return err
		}
		update["content"] = *in.Content
		update["mentions"] = mentions
		update["hashtags"] = hashtags
	}
	if in.MediaURLs != nil {
		update["media_urls"] = in.MediaURLs
	}
	if in.Visibility != nil {
		if !validVisibility(*in.Visibility) {
			return validationErr("invalid visibility %q", *in.Visibility)
		}
		update["visibility"] = *in.Visibility
	}
	if len(update) == 0 {
		return nil
	}

	if err := s.feed.Patch(ctx, in.PostID, update); err != nil {
		return err
	}
	return s.trending.UpdateTrendingMetrics(ctx, in.PostID)
}

func (s *PostService) DeletePost(ctx context.Context, postID bson.ObjectID, userID string) error {
	post, err := s.feed.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return notFoundErr("post")
	}
	if post.CreatorID != userID {
		return permissionErr("delete this post")
	}
	return s.feed.SoftDelete(ctx, postID, time.Now().UTC())
}

type ShareContentInput struct {
	CreatorID         string
	OriginalContentID bson.ObjectID
	Content           string
	Visibility        model.Visibility
	ModuleType        model.ModuleType
	ModuleID          string
}

// ShareContent inserts a share item referencing the original and refreshes
// the original's trending snapshot: shares are a signal on the shared
// content, not the share wrapper.
func (s *PostService) ShareContent(ctx context.Context, in ShareContentInput) (bson.ObjectID, error) {
	original, err := s.feed.Get(ctx, in.OriginalContentID)
	if err != nil {
		return bson.NilObjectID, err
	}
	if original == nil {
		return bson.NilObjectID, notFoundErr("original content")
	}
	if original.Deleted {
		return bson.NilObjectID, validationErr("cannot share deleted content")
	}
	if !validVisibility(in.Visibility) {
		return bson.NilObjectID, validationErr("invalid visibility %q", in.Visibility)
	}
	if in.Visibility == model.VisibilityGroup && in.ModuleType != model.ModuleTypeGroup {
		return bson.NilObjectID, validationErr("group visibility requires moduleType to be 'group'")
	}

	originalID := in.OriginalContentID
	id, err := s.feed.Insert(ctx, model.FeedItem{
		ContentType:       model.ContentTypeShare,
		CreatorID:         in.CreatorID,
		Content:           in.Content,
		Visibility:        in.Visibility,
		OriginalContentID: &originalID,
		ModuleType:        in.ModuleType,
		ModuleID:          in.ModuleID,
		Hashtags:          []string{},
		Mentions:          []string{},
		MentionedUserIDs:  []string{},
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		return bson.NilObjectID, err
	}

	if err := s.trending.UpdateTrendingMetrics(ctx, in.OriginalContentID); err != nil {
		return bson.NilObjectID, err
	}
	return id, nil
}
