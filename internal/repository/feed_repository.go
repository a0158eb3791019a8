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

type FeedRepository interface {
	Insert(ctx context.Context, item model.FeedItem) (bson.ObjectID, error)
	Get(ctx context.Context, id bson.ObjectID) (*model.FeedItem, error)
	GetMany(ctx context.Context, ids []bson.ObjectID) ([]model.FeedItem, error)
	Patch(ctx context.Context, id bson.ObjectID, update bson.M) error
	SoftDelete(ctx context.Context, id bson.ObjectID, at time.Time) error

	ListPage(ctx context.Context, filter bson.M, opts PageOptions, order string) (Page[model.FeedItem], error)
	RecentByHashtag(ctx context.Context, tag string, limit int) ([]model.FeedItem, error)
	RecentByCreator(ctx context.Context, creatorID string, limit int) ([]model.FeedItem, error)
	MostRecent(ctx context.Context, limit int) ([]model.FeedItem, error)

	CountShares(ctx context.Context, contentID bson.ObjectID) (int, error)
	CountSharesSince(ctx context.Context, contentID bson.ObjectID, since time.Time) (int, error)
}

type mongoFeedRepo struct {
	col *mongo.Collection
}

func NewMongoFeedRepo(db *mongo.Database) FeedRepository {
	return &mongoFeedRepo{col: db.Collection("feed_items")}
}

func (r *mongoFeedRepo) Insert(ctx context.Context, item model.FeedItem) (bson.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return bson.NilObjectID, err
	}
	id, _ := res.InsertedID.(bson.ObjectID)
	return id, nil
}

func (r *mongoFeedRepo) Get(ctx context.Context, id bson.ObjectID) (*model.FeedItem, error) {
	var item model.FeedItem
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *mongoFeedRepo) GetMany(ctx context.Context, ids []bson.ObjectID) ([]model.FeedItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []model.FeedItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoFeedRepo) Patch(ctx context.Context, id bson.ObjectID, update bson.M) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

func (r *mongoFeedRepo) SoftDelete(ctx context.Context, id bson.ObjectID, at time.Time) error {
	return r.Patch(ctx, id, bson.M{"deleted": true, "deleted_at": at})
}

func (r *mongoFeedRepo) ListPage(ctx context.Context, filter bson.M, opts PageOptions, order string) (Page[model.FeedItem], error) {
	return findPage[model.FeedItem](ctx, r.col, filter, opts, order)
}

func (r *mongoFeedRepo) recent(ctx context.Context, filter bson.M, limit int) ([]model.FeedItem, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []model.FeedItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoFeedRepo) RecentByHashtag(ctx context.Context, tag string, limit int) ([]model.FeedItem, error) {
	return r.recent(ctx, bson.M{
		"hashtags":   tag,
		"visibility": model.VisibilityPublic,
		"deleted":    bson.M{"$ne": true},
	}, limit)
}

func (r *mongoFeedRepo) RecentByCreator(ctx context.Context, creatorID string, limit int) ([]model.FeedItem, error) {
	return r.recent(ctx, bson.M{
		"creator_id": creatorID,
		"deleted":    bson.M{"$ne": true},
	}, limit)
}

func (r *mongoFeedRepo) MostRecent(ctx context.Context, limit int) ([]model.FeedItem, error) {
	return r.recent(ctx, bson.M{"deleted": bson.M{"$ne": true}}, limit)
}

// Shares of an item are feed items whose original_content_id points at it.
func (r *mongoFeedRepo) CountShares(ctx context.Context, contentID bson.ObjectID) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"original_content_id": contentID})
	return int(n), err
}

func (r *mongoFeedRepo) CountSharesSince(ctx context.Context, contentID bson.ObjectID, since time.Time) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{
		"original_content_id": contentID,
		"created_at":          bson.M{"$gte": since},
	})
	return int(n), err
}
