package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"socialfeed/model"
)

type CommentRepository interface {
	Insert(ctx context.Context, comment model.Comment) (bson.ObjectID, error)
	Get(ctx context.Context, id bson.ObjectID) (*model.Comment, error)
	Patch(ctx context.Context, id bson.ObjectID, update bson.M) error
	SoftDelete(ctx context.Context, id bson.ObjectID, at time.Time) error

	ListPage(ctx context.Context, filter bson.M, opts PageOptions, order string) (Page[model.Comment], error)

	// CountRoots counts non-deleted root comments under a feed item; replies
	// do not feed the trending signals.
	CountRoots(ctx context.Context, parentID string) (int, error)
	CountRootsSince(ctx context.Context, parentID string, since time.Time) (int, error)
	CountReplies(ctx context.Context, parentCommentID bson.ObjectID) (int, error)
}

type mongoCommentRepo struct {
	col *mongo.Collection
}

func NewMongoCommentRepo(db *mongo.Database) CommentRepository {
	return &mongoCommentRepo{col: db.Collection("comments")}
}

func (r *mongoCommentRepo) Insert(ctx context.Context, comment model.Comment) (bson.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, comment)
	if err != nil {
		return bson.NilObjectID, err
	}
	id, _ := res.InsertedID.(bson.ObjectID)
	return id, nil
}

func (r *mongoCommentRepo) Get(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *mongoCommentRepo) Patch(ctx context.Context, id bson.ObjectID, update bson.M) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

func (r *mongoCommentRepo) SoftDelete(ctx context.Context, id bson.ObjectID, at time.Time) error {
	return r.Patch(ctx, id, bson.M{"deleted": true, "deleted_at": at})
}

func (r *mongoCommentRepo) ListPage(ctx context.Context, filter bson.M, opts PageOptions, order string) (Page[model.Comment], error) {
	return findPage[model.Comment](ctx, r.col, filter, opts, order)
}

func (r *mongoCommentRepo) rootFilter(parentID string) bson.M {
	return bson.M{
		"parent_id":         parentID,
		"parent_type":       model.ParentTypeFeedItem,
		"parent_comment_id": bson.M{"$exists": false},
		"deleted":           bson.M{"$ne": true},
	}
}

func (r *mongoCommentRepo) CountRoots(ctx context.Context, parentID string) (int, error) {
	n, err := r.col.CountDocuments(ctx, r.rootFilter(parentID))
	return int(n), err
}

func (r *mongoCommentRepo) CountRootsSince(ctx context.Context, parentID string, since time.Time) (int, error) {
	filter := r.rootFilter(parentID)
	filter["created_at"] = bson.M{"$gte": since}
	n, err := r.col.CountDocuments(ctx, filter)
	return int(n), err
}

func (r *mongoCommentRepo) CountReplies(ctx context.Context, parentCommentID bson.ObjectID) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{
		"parent_comment_id": parentCommentID,
		"deleted":           bson.M{"$ne": true},
	})
	return int(n), err
}
