package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/model"
)

type RecommendationRepository interface {
	// ExistingContentIDs returns every content id already recommended to the
	// user as one batched lookup, so a generation pass can skip duplicates
	// without one existence query per candidate.
	ExistingContentIDs(ctx context.Context, userID string) (map[bson.ObjectID]struct{}, error)

	// InsertMany writes generated rows, tolerating duplicate-key races: a
	// concurrent generation pass inserting the same (user, content) pair is
	// skipped, never overwritten.
	InsertMany(ctx context.Context, recs []model.Recommendation) error

	ListByUser(ctx context.Context, userID string, limit int) ([]model.Recommendation, error)
	MarkSeen(ctx context.Context, userID string, contentID bson.ObjectID) error
	MarkInteracted(ctx context.Context, userID string, contentID bson.ObjectID, reaction model.RecReaction) error
}

type mongoRecommendationRepo struct {
	col *mongo.Collection
}

func NewMongoRecommendationRepo(db *mongo.Database) RecommendationRepository {
	return &mongoRecommendationRepo{col: db.Collection("recommendations")}
}

func (r *mongoRecommendationRepo) ExistingContentIDs(ctx context.Context, userID string) (map[bson.ObjectID]struct{}, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetProjection(bson.M{"content_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := make(map[bson.ObjectID]struct{})
	for cur.Next(ctx) {
		var row struct {
			ContentID bson.ObjectID `bson:"content_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		ids[row.ContentID] = struct{}{}
	}
	return ids, cur.Err()
}

func (r *mongoRecommendationRepo) InsertMany(ctx context.Context, recs []model.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	docs := make([]any, len(recs))
	for i, rec := range recs {
		docs[i] = rec
	}
	_, err := r.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	var be mongo.BulkWriteException
	if errors.As(err, &be) {
		for _, we := range be.WriteErrors {
			if we.Code != 11000 {
				return err
			}
		}
		return nil
	}
	return err
}

func (r *mongoRecommendationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.Recommendation, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().
		SetSort(bson.D{{Key: "relevance_score", Value: -1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []model.Recommendation
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *mongoRecommendationRepo) MarkSeen(ctx context.Context, userID string, contentID bson.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": userID, "content_id": contentID},
		bson.M{"$set": bson.M{"seen": true}})
	return err
}

func (r *mongoRecommendationRepo) MarkInteracted(ctx context.Context, userID string, contentID bson.ObjectID, reaction model.RecReaction) error {
	update := bson.M{"interacted": true, "seen": true}
	if reaction != "" {
		update["user_reaction"] = reaction
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": userID, "content_id": contentID},
		bson.M{"$set": update})
	return err
}
