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

type ReactionRepository interface {
	// Upsert enforces at most one reaction per (user, item): a repeat call
	// overwrites the reaction type. Returns true when a new row was created.
	Upsert(ctx context.Context, userID string, itemID bson.ObjectID, rt model.ReactionType, now time.Time) (bool, error)
	Find(ctx context.Context, userID string, itemID bson.ObjectID) (*model.Reaction, error)

	CountByItem(ctx context.Context, itemID bson.ObjectID) (int, error)
	CountByItemSince(ctx context.Context, itemID bson.ObjectID, since time.Time) (int, error)
	RecentByUser(ctx context.Context, userID string, limit int) ([]model.Reaction, error)
	ByItems(ctx context.Context, itemIDs []bson.ObjectID) ([]model.Reaction, error)
	ActiveUserIDs(ctx context.Context, since time.Time) ([]string, error)
}

type mongoReactionRepo struct {
	col *mongo.Collection
}

func NewMongoReactionRepo(db *mongo.Database) ReactionRepository {
	return &mongoReactionRepo{col: db.Collection("reactions")}
}

func (r *mongoReactionRepo) Upsert(ctx context.Context, userID string, itemID bson.ObjectID, rt model.ReactionType, now time.Time) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": userID, "feed_item_id": itemID},
		bson.M{
			"$set":         bson.M{"reaction_type": rt},
			"$setOnInsert": bson.M{"user_id": userID, "feed_item_id": itemID, "created_at": now},
		},
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (r *mongoReactionRepo) Find(ctx context.Context, userID string, itemID bson.ObjectID) (*model.Reaction, error) {
	var reaction model.Reaction
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "feed_item_id": itemID}).Decode(&reaction)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *mongoReactionRepo) CountByItem(ctx context.Context, itemID bson.ObjectID) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"feed_item_id": itemID})
	return int(n), err
}

func (r *mongoReactionRepo) CountByItemSince(ctx context.Context, itemID bson.ObjectID, since time.Time) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{
		"feed_item_id": itemID,
		"created_at":   bson.M{"$gte": since},
	})
	return int(n), err
}

func (r *mongoReactionRepo) RecentByUser(ctx context.Context, userID string, limit int) ([]model.Reaction, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reactions []model.Reaction
	if err := cur.All(ctx, &reactions); err != nil {
		return nil, err
	}
	return reactions, nil
}

// ByItems returns every reaction on the given items. Bounding the
// co-engagement scan by the engaged item set keeps the similarity lookup
// indexed instead of walking the whole collection.
func (r *mongoReactionRepo) ByItems(ctx context.Context, itemIDs []bson.ObjectID) ([]model.Reaction, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"feed_item_id": bson.M{"$in": itemIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reactions []model.Reaction
	if err := cur.All(ctx, &reactions); err != nil {
		return nil, err
	}
	return reactions, nil
}

func (r *mongoReactionRepo) ActiveUserIDs(ctx context.Context, since time.Time) ([]string, error) {
	var ids []string
	err := r.col.Distinct(ctx, "user_id", bson.M{"created_at": bson.M{"$gte": since}}).Decode(&ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}
