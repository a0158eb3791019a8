package repository

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type pageRow struct {
	ID        bson.ObjectID
	CreatedAt time.Time
}

func (r pageRow) PageKey() (time.Time, bson.ObjectID) { return r.CreatedAt, r.ID }

func rowLess(a, b pageRow) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.Hex() < b.ID.Hex()
}

// memFetcher serves a static row set the way the store would: sorted by
// (created_at, _id) in the requested direction, honoring the cursor bound
// the pager prepends to the filter, capped at limit.
func memFetcher(rows []pageRow) fetcher[pageRow] {
	return func(_ context.Context, match bson.M, sortSpec bson.D, limit int64) ([]pageRow, error) {
		sorted := make([]pageRow, len(rows))
		copy(sorted, rows)
		asc := sortSpec[0].Value.(int) > 0
		sort.Slice(sorted, func(i, j int) bool {
			if asc {
				return rowLess(sorted[i], sorted[j])
			}
			return rowLess(sorted[j], sorted[i])
		})

		var out []pageRow
		for _, r := range sorted {
			if int64(len(out)) == limit {
				break
			}
			if afterCursorBound(match, r) {
				out = append(out, r)
			}
		}
		return out, nil
	}
}

// afterCursorBound evaluates the (created_at, _id) predicate produced by
// cursor.Filter, when match carries one.
func afterCursorBound(match bson.M, r pageRow) bool {
	and, ok := match["$and"].([]bson.M)
	if !ok {
		return true
	}
	or := and[0]["$or"].([]bson.M)
	primary := or[0]["created_at"].(bson.M)
	tieID := or[1]["_id"].(bson.M)
	if at, ok := primary["$lt"]; ok {
		t := at.(time.Time)
		return r.CreatedAt.Before(t) ||
			(r.CreatedAt.Equal(t) && r.ID.Hex() < tieID["$lt"].(bson.ObjectID).Hex())
	}
	t := primary["$gt"].(time.Time)
	return r.CreatedAt.After(t) ||
		(r.CreatedAt.Equal(t) && r.ID.Hex() > tieID["$gt"].(bson.ObjectID).Hex())
}

func walkAllPages(t *testing.T, rows []pageRow, numItems int, order string) []pageRow {
	t.Helper()
	fetch := memFetcher(rows)
	opts := PageOptions{NumItems: numItems}

	var got []pageRow
	for steps := 0; ; steps++ {
		require.Less(t, steps, len(rows)+2, "walk did not terminate")
		page, err := pageWith(context.Background(), fetch, bson.M{}, opts, order)
		require.NoError(t, err)
		got = append(got, page.Page...)
		if page.IsDone {
			assert.Nil(t, page.ContinueCursor)
			return got
		}
		require.NotNil(t, page.ContinueCursor)
		require.Len(t, page.Page, numItems, "only the last page may run short")
		opts.Cursor = *page.ContinueCursor
	}
}

// Cursor timestamps round-trip at millisecond precision, so fixture rows are
// millisecond-aligned like real created_at values.
func pageRows(n int) []pageRow {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := make([]pageRow, n)
	for i := range rows {
		rows[i] = pageRow{ID: bson.NewObjectID(), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}
	return rows
}

func TestPageWalkReproducesWholeSet(t *testing.T) {
	rows := pageRows(7)
	// Two same-instant pairs; page size 3 puts a boundary inside one of them.
	rows[1].CreatedAt = rows[0].CreatedAt
	rows[4].CreatedAt = rows[3].CreatedAt

	got := walkAllPages(t, rows, 3, OrderDesc)

	require.Len(t, got, len(rows))
	seen := make(map[bson.ObjectID]struct{}, len(got))
	for _, r := range got {
		seen[r.ID] = struct{}{}
	}
	assert.Len(t, seen, len(rows), "no row skipped or duplicated")
	for i := 1; i < len(got); i++ {
		assert.True(t, rowLess(got[i], got[i-1]),
			"rows out of descending (created_at, _id) order at %d", i)
	}
}

func TestPageWalkAscending(t *testing.T) {
	rows := pageRows(5)
	rows[2].CreatedAt = rows[1].CreatedAt

	got := walkAllPages(t, rows, 2, OrderAsc)

	require.Len(t, got, len(rows))
	for i := 1; i < len(got); i++ {
		assert.True(t, rowLess(got[i-1], got[i]),
			"rows out of ascending (created_at, _id) order at %d", i)
	}
}

func TestPageExactMultipleEndsClean(t *testing.T) {
	rows := pageRows(4)
	fetch := memFetcher(rows)

	first, err := pageWith(context.Background(), fetch, bson.M{}, PageOptions{NumItems: 2}, OrderDesc)
	require.NoError(t, err)
	require.Len(t, first.Page, 2)
	assert.False(t, first.IsDone)
	require.NotNil(t, first.ContinueCursor)

	// The limit+1 fetch sees only 2 remaining rows, so the last full page
	// already reports exhaustion instead of handing out a dead cursor.
	second, err := pageWith(context.Background(), fetch, bson.M{}, PageOptions{NumItems: 2, Cursor: *first.ContinueCursor}, OrderDesc)
	require.NoError(t, err)
	require.Len(t, second.Page, 2)
	assert.True(t, second.IsDone)
	assert.Nil(t, second.ContinueCursor)
}

func TestPageMalformedCursorRestarts(t *testing.T) {
	rows := pageRows(3)
	fetch := memFetcher(rows)

	page, err := pageWith(context.Background(), fetch, bson.M{}, PageOptions{NumItems: 10, Cursor: "not-a-cursor"}, OrderDesc)
	require.NoError(t, err)
	assert.Len(t, page.Page, 3)
	assert.True(t, page.IsDone)
}
