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

type CommentService struct {
	feed     repository.FeedRepository
	comments repository.CommentRepository
	hashtags repository.HashtagRepository
	users    repository.UserRepository
	trending *TrendingService
	log      zerolog.Logger
}

// CommentPage is a page of enriched comments plus the continuation cursor.
type CommentPage struct {
	Page           []model.EnrichedComment `json:"page"`
	ContinueCursor *string                 `json:"continueCursor"`
	IsDone         bool                    `json:"isDone"`
}

func NewCommentService(feed repository.FeedRepository, comments repository.CommentRepository, hashtags repository.HashtagRepository, users repository.UserRepository, trending *TrendingService, logger zerolog.Logger) *CommentService {
	return &CommentService{
		feed:     feed,
		comments: comments,
		hashtags: hashtags,
		users:    users,
		trending: trending,
		log:      logger.With().Str("service", "comment").Logger(),
	}
}

type AddCommentInput struct {
	UserID          string
	ParentID        string
	ParentType      model.ParentType
	Content         string
	ParentCommentID *bson.ObjectID
	MediaURLs       []string
}

func (s *CommentService) processTags(ctx context.Context, content string, now time.Time) (mentions, hashtags []string, err error) {
	mentions = utils.ExtractMentions(content)
	hashtags = utils.ExtractHashtags(content)
	for _, tag := range hashtags {
		if err := s.hashtags.IncrementUsage(ctx, tag, now); err != nil {
			return nil, nil, err
		}
	}
	return mentions, hashtags, nil
}

// refreshParentTrending re-scores the parent feed item after a comment
// mutation. Comments on non-feed parents (courses, lessons) carry no
// trending signal.
func (s *CommentService) refreshParentTrending(ctx context.Context, parentType model.ParentType, parentID string) error {
	if parentType != model.ParentTypeFeedItem {
		return nil
	}
	itemID, err := bson.ObjectIDFromHex(parentID)
	if err != nil {
		return validationErr("invalid parent id %q", parentID)
	}
	return s.trending.UpdateTrendingMetrics(ctx, itemID)
}

func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (bson.ObjectID, error) {
	if strings.TrimSpace(in.Content) == "" {
		return bson.NilObjectID, validationErr("content cannot be empty")
	}
	if !model.ValidParentType(in.ParentType) {
		return bson.NilObjectID, validationErr("invalid parent type %q", in.ParentType)
	}

	if in.ParentType == model.ParentTypeFeedItem {
		itemID, err := bson.ObjectIDFromHex(in.ParentID)
		if err != nil {
			return bson.NilObjectID, validationErr("invalid parent id %q", in.ParentID)
		}
		item, err := s.feed.Get(ctx, itemID)
		if err != nil {
			return bson.NilObjectID, err
		}
		if item == nil || item.Deleted {
			return bson.NilObjectID, notFoundErr("feed item")
		}
	}
	if in.ParentCommentID != nil {
		parent, err := s.comments.Get(ctx, *in.ParentCommentID)
		if err != nil {
			return bson.NilObjectID, err
		}
		if parent == nil || parent.Deleted {
			return bson.NilObjectID, notFoundErr("parent comment")
		}
		if parent.ParentID != in.ParentID {
			return bson.NilObjectID, validationErr("parent comment belongs to a different thread")
		}
	}

	now := time.Now().UTC()
	mentions, hashtags, err := s.processTags(ctx, in.Content, now)
	if err != nil {
		return bson.NilObjectID, err
	}

	id, err := s.comments.Insert(ctx, model.Comment{
		UserID:           in.UserID,
		ParentID:         in.ParentID,
		ParentType:       in.ParentType,
		Content:          in.Content,
		ParentCommentID:  in.ParentCommentID,
		MediaURLs:        in.MediaURLs,
		Hashtags:         hashtags,
		Mentions:         mentions,
		MentionedUserIDs: []string{},
		CreatedAt:        now,
	})
	if err != nil {
		return bson.NilObjectID, err
	}

	if err := s.refreshParentTrending(ctx, in.ParentType, in.ParentID); err != nil {
		return bson.NilObjectID, err
	}
	return id, nil
}

type UpdateCommentInput struct {
	CommentID bson.ObjectID
	UserID    string
	AsAdmin   bool
	Content   string
	MediaURLs []string
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) error {
	comment, err := s.comments.Get(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.Deleted {
		return notFoundErr("comment")
	}
	if comment.UserID != in.UserID && !in.AsAdmin {
		return permissionErr("update this comment")
	}
	if strings.TrimSpace(in.Content) == "" {
		return validationErr("content cannot be empty")
	}

	now := time.Now().UTC()
	mentions, hashtags, err := s.processTags(ctx, in.Content, now)
	if err != nil {
		return err
	}

	update := bson.M{
		"content":    in.Content,
		"mentions":   mentions,
		"hashtags":   hashtags,
		"updated_at": now,
	}
	if in.MediaURLs != nil {
		update["media_urls"] = in.MediaURLs
	}
	return s.comments.Patch(ctx, in.CommentID, update)
}

// DeleteComment soft-deletes the comment. The parent re-score is best effort:
// the comment is already gone and the scheduler sweep will converge the
// snapshot anyway.
func (s *CommentService) DeleteComment(ctx context.Context, commentID bson.ObjectID, userID string, asAdmin bool) error {
	comment, err := s.comments.Get(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return notFoundErr("comment")
	}
	if comment.UserID != userID && !asAdmin {
		return permissionErr("delete this comment")
	}

	if err := s.comments.SoftDelete(ctx, commentID, time.Now().UTC()); err != nil {
		return err
	}
	if err := s.refreshParentTrending(ctx, comment.ParentType, comment.ParentID); err != nil {
		s.log.Warn().Err(err).Str("comment_id", commentID.Hex()).Msg("trending refresh after comment delete failed")
	}
	return nil
}

// ListComments pages the root comments under a parent. order is "newest" or
// "oldest"; unknown values fall back to newest first.
func (s *CommentService) ListComments(ctx context.Context, parentID string, parentType model.ParentType, order string, opts repository.PageOptions) (CommentPage, error) {
	if !model.ValidParentType(parentType) {
		return CommentPage{}, validationErr("invalid parent type %q", parentType)
	}
	sortOrder := repository.OrderDesc
	if order == "oldest" {
		sortOrder = repository.OrderAsc
	}
	filter := bson.M{
		"parent_id":         parentID,
		"parent_type":       parentType,
		"parent_comment_id": bson.M{"$exists": false},
		"deleted":           bson.M{"$ne": true},
	}
	return s.commentPage(ctx, filter, opts, sortOrder)
}

// ListReplies pages the replies to a comment, oldest first so threads read
// top to bottom.
func (s *CommentService) ListReplies(ctx context.Context, parentCommentID bson.ObjectID, opts repository.PageOptions) (CommentPage, error) {
	filter := bson.M{
		"parent_comment_id": parentCommentID,
		"deleted":           bson.M{"$ne": true},
	}
	return s.commentPage(ctx, filter, opts, repository.OrderAsc)
}

func (s *CommentService) commentPage(ctx context.Context, filter bson.M, opts repository.PageOptions, order string) (CommentPage, error) {
	raw, err := s.comments.ListPage(ctx, filter, opts, order)
	if err != nil {
		return CommentPage{}, err
	}
	enriched, err := s.enrich(ctx, raw.Page)
	if err != nil {
		return CommentPage{}, err
	}
	return CommentPage{Page: enriched, ContinueCursor: raw.ContinueCursor, IsDone: raw.IsDone}, nil
}

func (s *CommentService) enrich(ctx context.Context, comments []model.Comment) ([]model.EnrichedComment, error) {
	userIDs := make([]string, 0, len(comments))
	seen := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			userIDs = append(userIDs, c.UserID)
		}
	}
	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedComment, 0, len(comments))
	for _, c := range comments {
		replies := 0
		if c.ParentCommentID == nil {
			replies, err = s.comments.CountReplies(ctx, c.ID)
			if err != nil {
				return nil, err
			}
		}
		user := model.Creator{ID: c.UserID, Name: "Unknown User"}
		if u, ok := users[c.UserID]; ok {
			user.Name = u.Name
			user.Image = u.Image
		}
		enriched = append(enriched, model.EnrichedComment{
			Comment:      c,
			RepliesCount: replies,
			User:         user,
		})
	}
	return enriched, nil
}
