package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ReactionType string

const (
	ReactionLike       ReactionType = "like"
	ReactionLove       ReactionType = "love"
	ReactionCelebrate  ReactionType = "celebrate"
	ReactionSupport    ReactionType = "support"
	ReactionInsightful ReactionType = "insightful"
	ReactionCurious    ReactionType = "curious"
)

// Reaction is unique per (user, feed item); a second reaction overwrites the
// type instead of inserting a duplicate.
type Reaction struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       string        `json:"userId" bson:"user_id"`
	FeedItemID   bson.ObjectID `json:"feedItemId" bson:"feed_item_id"`
	ReactionType ReactionType  `json:"reactionType" bson:"reaction_type"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`
}

func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionCelebrate, ReactionSupport, ReactionInsightful, ReactionCurious:
		return true
	}
	return false
}
