package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ReasonType string

const (
	ReasonTopic       ReasonType = "topic"
	ReasonSimilarUser ReasonType = "similarUser"
	ReasonEngagement  ReasonType = "engagement"
	ReasonTrending    ReasonType = "trending"
	ReasonNewContent  ReasonType = "newContent"
)

type RecReaction string

const (
	RecReactionLike    RecReaction = "like"
	RecReactionDislike RecReaction = "dislike"
	RecReactionNeutral RecReaction = "neutral"
)

// Recommendation is unique per (user, content). A generation pass skips
// content already recommended; rows are never overwritten, only flagged
// seen/interacted.
type Recommendation struct {
	ID             bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         string        `json:"userId" bson:"user_id"`
	ContentID      bson.ObjectID `json:"contentId" bson:"content_id"`
	RelevanceScore float64       `json:"relevanceScore" bson:"relevance_score"`
	ReasonType     ReasonType    `json:"reasonType" bson:"reason_type"`
	ReasonContext  string        `json:"reasonContext,omitempty" bson:"reason_context,omitempty"`
	GeneratedAt    time.Time     `json:"generatedAt" bson:"generated_at"`
	Seen           bool          `json:"seen" bson:"seen"`
	Interacted     bool          `json:"interacted" bson:"interacted"`
	UserReaction   RecReaction   `json:"userReaction,omitempty" bson:"user_reaction,omitempty"`
}
