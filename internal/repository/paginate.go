package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/internal/cursor"
)

const (
	OrderDesc = "desc"
	OrderAsc  = "asc"
)

type PageOptions struct {
	NumItems int
	Cursor   string
}

type Page[T any] struct {
	Page           []T     `json:"page"`
	ContinueCursor *string `json:"continueCursor"`
	IsDone         bool    `json:"isDone"`
}

type pageable interface {
	PageKey() (time.Time, bson.ObjectID)
}

// fetcher returns up to limit rows matching match, in sort order.
type fetcher[T any] func(ctx context.Context, match bson.M, sort bson.D, limit int64) ([]T, error)

func collFetcher[T any](col *mongo.Collection) fetcher[T] {
	return func(ctx context.Context, match bson.M, sort bson.D, limit int64) ([]T, error) {
		c, err := col.Find(ctx, match,
			options.Find().SetSort(sort).SetLimit(limit))
		if err != nil {
			return nil, err
		}
		defer c.Close(ctx)

		var rows []T
		if err := c.All(ctx, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
}

func findPage[T pageable](ctx context.Context, col *mongo.Collection, filter bson.M, opts PageOptions, order string) (Page[T], error) {
	return pageWith(ctx, collFetcher[T](col), filter, opts, order)
}

// pageWith emulates stable forward pagination over a store whose native
// primitive is "take N rows matching a filter, ordered by insertion time".
// It fetches NumItems+1 rows ordered by (created_at, _id), returns the first
// NumItems and encodes the last returned row as the continue cursor. The
// cursor predicate is prepended to the caller's filter.
func pageWith[T pageable](ctx context.Context, fetch fetcher[T], filter bson.M, opts PageOptions, order string) (Page[T], error) {
	if opts.NumItems < 1 {
		opts.NumItems = 1
	}

	match := filter
	if cur, ok := cursor.Decode(opts.Cursor); ok {
		match = bson.M{"$and": []bson.M{cur.Filter(order), filter}}
	}

	dir := -1
	if order == OrderAsc {
		dir = 1
	}
	sort := bson.D{{Key: "created_at", Value: dir}, {Key: "_id", Value: dir}}

	rows, err := fetch(ctx, match, sort, int64(opts.NumItems+1))
	if err != nil {
		return Page[T]{}, err
	}

	isDone := len(rows) <= opts.NumItems
	if !isDone {
		rows = rows[:opts.NumItems]
	}

	page := Page[T]{Page: rows, IsDone: isDone}
	if !isDone && len(rows) > 0 {
		at, id := rows[len(rows)-1].PageKey()
		token := cursor.Encode(at, id)
		page.ContinueCursor = &token
	}
	return page, nil
}
