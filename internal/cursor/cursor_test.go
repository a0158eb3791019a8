package cursor

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	id := bson.NewObjectID()
	at := time.Date(2026, 3, 14, 15, 9, 26, 535_000_000, time.UTC)

	c, ok := Decode(Encode(at, id))
	if !ok {
		t.Fatal("Decode() not ok for freshly encoded cursor")
	}
	if !c.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", c.CreatedAt, at)
	}
	if c.ID != id {
		t.Errorf("ID = %s, want %s", c.ID.Hex(), id.Hex())
	}
}

func TestDecodeMalformed(t *testing.T) {
	// Malformed cursors restart pagination instead of erroring.
	cases := []string{
		"",
		"not-base64!!!",
		"aGVsbG8=",                             // base64 but not JSON
		"eyJjcmVhdGVkQXQiOjF9",                 // JSON, no id
		"eyJjcmVhdGVkQXQiOjEsImlkIjoieHl6In0=", // id is not a hex ObjectID
	}
	for _, s := range cases {
		if _, ok := Decode(s); ok {
			t.Errorf("Decode(%q) ok = true, want false", s)
		}
	}
}

func TestFilterTieBreak(t *testing.T) {
	id := bson.NewObjectID()
	at := time.Now().UTC().Truncate(time.Millisecond)
	c := Cursor{CreatedAt: at, ID: id}

	f := c.Filter("desc")
	or, ok := f["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("Filter(desc) = %v, want $or with two branches", f)
	}
	if _, ok := or[0]["created_at"].(bson.M)["$lt"]; !ok {
		t.Errorf("desc primary branch missing $lt on created_at: %v", or[0])
	}
	if or[1]["created_at"] != at {
		t.Errorf("tie branch pins created_at = %v, want %v", or[1]["created_at"], at)
	}
	if _, ok := or[1]["_id"].(bson.M)["$lt"]; !ok {
		t.Errorf("tie branch missing $lt on _id: %v", or[1])
	}

	f = c.Filter("asc")
	or = f["$or"].([]bson.M)
	if _, ok := or[0]["created_at"].(bson.M)["$gt"]; !ok {
		t.Errorf("asc primary branch missing $gt on created_at: %v", or[0])
	}
}
