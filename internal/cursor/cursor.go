// Package cursor encodes feed pagination positions as opaque tokens.
//
// The store has no native offset/cursor primitive, so pages are addressed by
// the (created_at, _id) pair of the last row of the previous page. The id is
// part of the comparison, not just the payload: rows created in the same
// millisecond are ordered by _id, so a page boundary between them neither
// skips nor duplicates.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type payload struct {
	CreatedAt int64  `json:"createdAt"`
	ID        string `json:"id"`
}

// Cursor is a decoded pagination position.
type Cursor struct {
	CreatedAt time.Time
	ID        bson.ObjectID
}

func Encode(t time.Time, id bson.ObjectID) string {
	b, _ := json.Marshal(payload{
		CreatedAt: t.UnixMilli(),
		ID:        id.Hex(),
	})
	return base64.StdEncoding.EncodeToString(b)
}

// Decode parses an opaque cursor. A malformed cursor is reported via ok=false
// and callers treat it as "no cursor" (restart from the first page) rather
// than failing the request.
func Decode(s string) (Cursor, bool) {
	if s == "" {
		return Cursor{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, false
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Cursor{}, false
	}
	oid, err := bson.ObjectIDFromHex(p.ID)
	if err != nil {
		return Cursor{}, false
	}
	return Cursor{CreatedAt: time.UnixMilli(p.CreatedAt).UTC(), ID: oid}, true
}

// Filter returns the match predicate selecting rows strictly after the cursor
// position in the given order ("desc" or "asc"). Ties on created_at fall back
// to _id so same-instant rows are individually addressable.
func (c Cursor) Filter(order string) bson.M {
	cmp, eqCmp := "$lt", "$lt"
	if order == "asc" {
		cmp, eqCmp = "$gt", "$gt"
	}
	return bson.M{"$or": []bson.M{
		{"created_at": bson.M{cmp: c.CreatedAt}},
		{"created_at": c.CreatedAt, "_id": bson.M{eqCmp: c.ID}},
	}}
}
