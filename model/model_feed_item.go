package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ContentType string

const (
	ContentTypePost    ContentType = "post"
	ContentTypeShare   ContentType = "share"
	ContentTypeComment ContentType = "comment"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	VisibilityGroup   Visibility = "group"
)

type ModuleType string

const (
	ModuleTypeBlog   ModuleType = "blog"
	ModuleTypeCourse ModuleType = "course"
	ModuleTypeGroup  ModuleType = "group"
	ModuleTypeEvent  ModuleType = "event"
)

// FeedItem is a post, share or comment-as-post. Items are soft-deleted so
// dependent aggregates (reactions, comments, trending snapshot) stay
// consistent after removal.
type FeedItem struct {
	ID                bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	ContentType       ContentType    `json:"contentType" bson:"content_type"`
	CreatorID         string         `json:"creatorId" bson:"creator_id"`
	Content           string         `json:"content" bson:"content"`
	MediaURLs         []string       `json:"mediaUrls,omitempty" bson:"media_urls,omitempty"`
	Visibility        Visibility     `json:"visibility" bson:"visibility"`
	OriginalContentID *bson.ObjectID `json:"originalContentId,omitempty" bson:"original_content_id,omitempty"`
	ModuleType        ModuleType     `json:"moduleType,omitempty" bson:"module_type,omitempty"`
	ModuleID          string         `json:"moduleId,omitempty" bson:"module_id,omitempty"`
	Hashtags          []string       `json:"hashtags" bson:"hashtags"`
	Mentions          []string       `json:"mentions" bson:"mentions"`
	MentionedUserIDs  []string       `json:"mentionedUserIds" bson:"mentioned_user_ids"`
	CreatedAt         time.Time      `json:"createdAt" bson:"created_at"`
	Deleted           bool           `json:"deleted" bson:"deleted"`
	DeletedAt         *time.Time     `json:"deletedAt,omitempty" bson:"deleted_at,omitempty"`
}

// PageKey positions the item for cursor pagination.
func (f FeedItem) PageKey() (time.Time, bson.ObjectID) { return f.CreatedAt, f.ID }

// EnrichedFeedItem is the read-path shape: the item plus denormalized counts
// and the creator profile.
type EnrichedFeedItem struct {
	FeedItem       `bson:",inline"`
	ReactionsCount int     `json:"reactionsCount" bson:"reactions_count"`
	CommentsCount  int     `json:"commentsCount" bson:"comments_count"`
	Creator        Creator `json:"creator" bson:"creator"`
}

type Creator struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Image string `json:"image,omitempty" bson:"image,omitempty"`
}
