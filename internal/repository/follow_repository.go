package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/model"
)

type TopicFollowRepository interface {
	Find(ctx context.Context, userID string, topicID bson.ObjectID) (*model.TopicFollow, error)
	Insert(ctx context.Context, follow model.TopicFollow) error
	Delete(ctx context.Context, userID string, topicID bson.ObjectID) error
	ListByUser(ctx context.Context, userID string, limit int) ([]model.TopicFollow, error)
	ListByUsers(ctx context.Context, userIDs []string) ([]model.TopicFollow, error)
}

type SubscriptionRepository interface {
	// FollowedUserIDs resolves the follow_type=user edges for a follower.
	FollowedUserIDs(ctx context.Context, userID string) ([]string, error)
}

type mongoTopicFollowRepo struct {
	col *mongo.Collection
}

func NewMongoTopicFollowRepo(db *mongo.Database) TopicFollowRepository {
	return &mongoTopicFollowRepo{col: db.Collection("topic_follows")}
}

func (r *mongoTopicFollowRepo) Find(ctx context.Context, userID string, topicID bson.ObjectID) (*model.TopicFollow, error) {
	var follow model.TopicFollow
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "topic_id": topicID}).Decode(&follow)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *mongoTopicFollowRepo) Insert(ctx context.Context, follow model.TopicFollow) error {
	_, err := r.col.InsertOne(ctx, follow)
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000 {
		// Already following; the unique index makes the follow idempotent.
		return nil
	}
	return err
}

func (r *mongoTopicFollowRepo) Delete(ctx context.Context, userID string, topicID bson.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID, "topic_id": topicID})
	return err
}

func (r *mongoTopicFollowRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.TopicFollow, error) {
	opts := options.Find().SetSort(bson.D{{Key: "followed_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var follows []model.TopicFollow
	if err := cur.All(ctx, &follows); err != nil {
		return nil, err
	}
	return follows, nil
}

func (r *mongoTopicFollowRepo) ListByUsers(ctx context.Context, userIDs []string) ([]model.TopicFollow, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"user_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var follows []model.TopicFollow
	if err := cur.All(ctx, &follows); err != nil {
		return nil, err
	}
	return follows, nil
}

type mongoSubscriptionRepo struct {
	col *mongo.Collection
}

func NewMongoSubscriptionRepo(db *mongo.Database) SubscriptionRepository {
	return &mongoSubscriptionRepo{col: db.Collection("subscriptions")}
}

func (r *mongoSubscriptionRepo) FollowedUserIDs(ctx context.Context, userID string) ([]string, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID, "follow_type": model.FollowTypeUser})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []model.Subscription
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.FollowID)
	}
	return ids, nil
}
