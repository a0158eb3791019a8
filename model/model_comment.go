package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ParentType string

const (
	ParentTypeFeedItem ParentType = "feedItem"
	ParentTypeCourse   ParentType = "course"
	ParentTypeLesson   ParentType = "lesson"
	ParentTypeTopic    ParentType = "topic"
	ParentTypeQuiz     ParentType = "quiz"
	ParentTypePost     ParentType = "post"
	ParentTypeDownload ParentType = "download"
	ParentTypeArticle  ParentType = "helpdeskArticle"
)

// Comment threads via ParentCommentID; root comments have none. Soft-deleted.
type Comment struct {
	ID               bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID           string         `json:"userId" bson:"user_id"`
	ParentID         string         `json:"parentId" bson:"parent_id"`
	ParentType       ParentType     `json:"parentType" bson:"parent_type"`
	Content          string         `json:"content" bson:"content"`
	ParentCommentID  *bson.ObjectID `json:"parentCommentId,omitempty" bson:"parent_comment_id,omitempty"`
	MediaURLs        []string       `json:"mediaUrls,omitempty" bson:"media_urls,omitempty"`
	Hashtags         []string       `json:"hashtags" bson:"hashtags"`
	Mentions         []string       `json:"mentions" bson:"mentions"`
	MentionedUserIDs []string       `json:"mentionedUserIds" bson:"mentioned_user_ids"`
	CreatedAt        time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt        *time.Time     `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
	Deleted          bool           `json:"deleted" bson:"deleted"`
	DeletedAt        *time.Time     `json:"deletedAt,omitempty" bson:"deleted_at,omitempty"`
}

func (c Comment) PageKey() (time.Time, bson.ObjectID) { return c.CreatedAt, c.ID }

type EnrichedComment struct {
	Comment      `bson:",inline"`
	RepliesCount int     `json:"repliesCount" bson:"replies_count"`
	User         Creator `json:"user" bson:"user"`
}

func ValidParentType(t ParentType) bool {
	switch t {
	case ParentTypeFeedItem, ParentTypeCourse, ParentTypeLesson, ParentTypeTopic,
		ParentTypeQuiz, ParentTypePost, ParentTypeDownload, ParentTypeArticle:
		return true
	}
	return false
}
