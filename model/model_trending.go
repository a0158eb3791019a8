package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// TrendingSnapshot is the single cached score per feed item, recomputed in
// place. Velocity fields are hourly-normalized deltas against the previous
// snapshot's counts, so the first computation always yields zero velocity.
type TrendingSnapshot struct {
	ID               bson.ObjectID `json:"id" bson:"_id,omitempty"`
	ContentID        bson.ObjectID `json:"contentId" bson:"content_id"`
	TrendingScore    float64       `json:"trendingScore" bson:"trending_score"`
	Reactions        int           `json:"reactions" bson:"reactions"`
	Comments         int           `json:"comments" bson:"comments"`
	Shares           int           `json:"shares" bson:"shares"`
	ReactionVelocity float64       `json:"reactionVelocity" bson:"reaction_velocity"`
	CommentVelocity  float64       `json:"commentVelocity" bson:"comment_velocity"`
	ShareVelocity    float64       `json:"shareVelocity" bson:"share_velocity"`
	HourlyEngagement float64       `json:"hourlyEngagement" bson:"hourly_engagement"`
	DailyEngagement  float64       `json:"dailyEngagement" bson:"daily_engagement"`
	WeeklyEngagement float64       `json:"weeklyEngagement" bson:"weekly_engagement"`
	QualityScore     float64       `json:"qualityScore,omitempty" bson:"quality_score,omitempty"`
	Topics           []string      `json:"topics" bson:"topics"`
	LastUpdated      time.Time     `json:"lastUpdated" bson:"last_updated"`
}
