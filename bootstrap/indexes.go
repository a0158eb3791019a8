package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates every index the engine's query shapes depend on.
// Unique indexes double as invariants: one reaction per (user, item), one
// recommendation per (user, content), one snapshot per content, one follow
// per (user, topic), one hashtag per tag.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("feed_items").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "visibility", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("visibility_createdAt")},
		{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("creator_createdAt")},
		{Keys: bson.D{{Key: "hashtags", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("hashtags_createdAt")},
		{Keys: bson.D{{Key: "module_type", Value: 1}, {Key: "module_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("module_createdAt")},
		{Keys: bson.D{{Key: "original_content_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("originalContent_createdAt")},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("reactions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "feed_item_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_item")},
		{Keys: bson.D{{Key: "feed_item_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("item_createdAt")},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_createdAt")},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("comments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "parent_id", Value: 1}, {Key: "parent_type", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("parent_createdAt")},
		{Keys: bson.D{{Key: "parent_comment_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("parentComment_createdAt")},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("hashtags").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "tag", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_tag")},
		{Keys: bson.D{{Key: "usage_count", Value: -1}},
			Options: options.Index().SetName("usageCount")},
		{Keys: bson.D{{Key: "is_topic", Value: 1}, {Key: "follower_count", Value: -1}},
			Options: options.Index().SetName("isTopic_followerCount")},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("topic_follows").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "topic_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_topic")},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("subscriptions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "follow_type", Value: 1}, {Key: "follow_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_type_follow")},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("trending_snapshots").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "content_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_content")},
		{Keys: bson.D{{Key: "trending_score", Value: -1}},
			Options: options.Index().SetName("trendingScore")},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("recommendations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "content_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_content")},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "relevance_score", Value: -1}},
			Options: options.Index().SetName("user_relevance")},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	return err
}
