package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/model"
)

type TrendingRepository interface {
	Get(ctx context.Context, contentID bson.ObjectID) (*model.TrendingSnapshot, error)
	// Upsert replaces the single snapshot for a content item in place. The
	// replace is atomic, so concurrent recomputations resolve to
	// latest-call-wins without extra locking.
	Upsert(ctx context.Context, snap model.TrendingSnapshot) error
	TopByScore(ctx context.Context, limit int) ([]model.TrendingSnapshot, error)
}

type mongoTrendingRepo struct {
	col *mongo.Collection
}

func NewMongoTrendingRepo(db *mongo.Database) TrendingRepository {
	return &mongoTrendingRepo{col: db.Collection("trending_snapshots")}
}

func (r *mongoTrendingRepo) Get(ctx context.Context, contentID bson.ObjectID) (*model.TrendingSnapshot, error) {
	var snap model.TrendingSnapshot
	err := r.col.FindOne(ctx, bson.M{"content_id": contentID}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *mongoTrendingRepo) Upsert(ctx context.Context, snap model.TrendingSnapshot) error {
	snap.ID = bson.NilObjectID
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"content_id": snap.ContentID},
		snap,
		options.Replace().SetUpsert(true))
	return err
}

func (r *mongoTrendingRepo) TopByScore(ctx context.Context, limit int) ([]model.TrendingSnapshot, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "trending_score", Value: -1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var snaps []model.TrendingSnapshot
	if err := cur.All(ctx, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}
