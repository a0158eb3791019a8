package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Hashtag doubles as a followable topic. Auto-created (usage_count=1) the
// first time "#tag" appears in posted or edited content; IsTopic is promoted
// the first time someone follows it.
type Hashtag struct {
	ID            bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Tag           string        `json:"tag" bson:"tag"`
	UsageCount    int           `json:"usageCount" bson:"usage_count"`
	LastUsed      time.Time     `json:"lastUsed" bson:"last_used"`
	IsTopic       bool          `json:"isTopic" bson:"is_topic"`
	FollowerCount int           `json:"followerCount" bson:"follower_count"`
	Category      string        `json:"category,omitempty" bson:"category,omitempty"`
	Description   string        `json:"description,omitempty" bson:"description,omitempty"`
	CoverImage    string        `json:"coverImage,omitempty" bson:"cover_image,omitempty"`
}

// TopicFollow is unique per (user, topic).
type TopicFollow struct {
	ID         bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     string        `json:"userId" bson:"user_id"`
	TopicID    bson.ObjectID `json:"topicId" bson:"topic_id"`
	FollowedAt time.Time     `json:"followedAt" bson:"followed_at"`
}

type FollowType string

const (
	FollowTypeUser    FollowType = "user"
	FollowTypeTopic   FollowType = "topic"
	FollowTypeGroup   FollowType = "group"
	FollowTypeHashtag FollowType = "hashtag"
)

// Subscription is the generic follow edge. The engine only consumes
// follow_type=user today.
type Subscription struct {
	ID         bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     string        `json:"userId" bson:"user_id"`
	FollowType FollowType    `json:"followType" bson:"follow_type"`
	FollowID   string        `json:"followId" bson:"follow_id"`
	CreatedAt  time.Time     `json:"createdAt" bson:"created_at"`
}
