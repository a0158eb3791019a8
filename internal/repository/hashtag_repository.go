package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/model"
)

type HashtagRepository interface {
	Get(ctx context.Context, id bson.ObjectID) (*model.Hashtag, error)
	GetMany(ctx context.Context, ids []bson.ObjectID) ([]model.Hashtag, error)
	FindByTag(ctx context.Context, tag string) (*model.Hashtag, error)
	Patch(ctx context.Context, id bson.ObjectID, update bson.M) error
	Insert(ctx context.Context, tag model.Hashtag) (bson.ObjectID, error)

	// IncrementUsage bumps usage_count and last_used for a tag, creating the
	// hashtag row when it does not exist yet.
	IncrementUsage(ctx context.Context, tag string, now time.Time) error

	// IncrementFollowers adjusts follower_count by delta, floored at zero.
	IncrementFollowers(ctx context.Context, id bson.ObjectID, delta int) error

	TopByUsage(ctx context.Context, limit int) ([]model.Hashtag, error)
	TopTopicsByFollowers(ctx context.Context, limit int) ([]model.Hashtag, error)
	ListTopics(ctx context.Context, category string, limit int) ([]model.Hashtag, error)
}

type mongoHashtagRepo struct {
	col *mongo.Collection
}

func NewMongoHashtagRepo(db *mongo.Database) HashtagRepository {
	return &mongoHashtagRepo{col: db.Collection("hashtags")}
}

func (r *mongoHashtagRepo) Get(ctx context.Context, id bson.ObjectID) (*model.Hashtag, error) {
	var tag model.Hashtag
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *mongoHashtagRepo) GetMany(ctx context.Context, ids []bson.ObjectID) ([]model.Hashtag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tags []model.Hashtag
	if err := cur.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *mongoHashtagRepo) FindByTag(ctx context.Context, tag string) (*model.Hashtag, error) {
	var doc model.Hashtag
	err := r.col.FindOne(ctx, bson.M{"tag": tag}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *mongoHashtagRepo) Patch(ctx context.Context, id bson.ObjectID, update bson.M) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

func (r *mongoHashtagRepo) Insert(ctx context.Context, tag model.Hashtag) (bson.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, tag)
	if err != nil {
		return bson.NilObjectID, err
	}
	id, _ := res.InsertedID.(bson.ObjectID)
	return id, nil
}

func (r *mongoHashtagRepo) IncrementUsage(ctx context.Context, tag string, now time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"tag": tag},
		bson.M{
			"$inc":         bson.M{"usage_count": 1},
			"$set":         bson.M{"last_used": now},
			"$setOnInsert": bson.M{"tag": tag},
		},
		options.UpdateOne().SetUpsert(true))
	return err
}

func (r *mongoHashtagRepo) IncrementFollowers(ctx context.Context, id bson.ObjectID, delta int) error {
	if delta >= 0 {
		_, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
			bson.M{"$inc": bson.M{"follower_count": delta}})
		return err
	}
	// Guarded decrement: only applies while the count stays non-negative, so
	// a double unfollow never drives it below zero.
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "follower_count": bson.M{"$gte": -delta}},
		bson.M{"$inc": bson.M{"follower_count": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		_, err = r.col.UpdateOne(ctx, bson.M{"_id": id},
			bson.M{"$set": bson.M{"follower_count": 0}})
	}
	return err
}

func (r *mongoHashtagRepo) top(ctx context.Context, filter bson.M, sort bson.D, limit int) ([]model.Hashtag, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(sort).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tags []model.Hashtag
	if err := cur.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *mongoHashtagRepo) TopByUsage(ctx context.Context, limit int) ([]model.Hashtag, error) {
	return r.top(ctx, bson.M{}, bson.D{{Key: "usage_count", Value: -1}}, limit)
}

func (r *mongoHashtagRepo) TopTopicsByFollowers(ctx context.Context, limit int) ([]model.Hashtag, error) {
	return r.top(ctx, bson.M{"is_topic": true}, bson.D{{Key: "follower_count", Value: -1}}, limit)
}

func (r *mongoHashtagRepo) ListTopics(ctx context.Context, category string, limit int) ([]model.Hashtag, error) {
	filter := bson.M{"is_topic": true}
	if category != "" {
		filter["category"] = category
	}
	return r.top(ctx, filter, bson.D{{Key: "follower_count", Value: -1}, {Key: "tag", Value: 1}}, limit)
}
