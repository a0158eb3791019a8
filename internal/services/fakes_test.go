package services

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/repository"
	"socialfeed/model"
)

// In-memory repositories for service tests. They cover the subset of the
// mongo behavior the services rely on; paging is deliberately unpaged since
// the cursor package carries its own tests.

type fakeFeedRepo struct {
	items map[bson.ObjectID]model.FeedItem
}

func newFakeFeedRepo() *fakeFeedRepo {
	return &fakeFeedRepo{items: make(map[bson.ObjectID]model.FeedItem)}
}

func (f *fakeFeedRepo) add(item model.FeedItem) bson.ObjectID {
	if item.ID.IsZero() {
		item.ID = bson.NewObjectID()
	}
	f.items[item.ID] = item
	return item.ID
}

func (f *fakeFeedRepo) Insert(_ context.Context, item model.FeedItem) (bson.ObjectID, error) {
	return f.add(item), nil
}

func (f *fakeFeedRepo) Get(_ context.Context, id bson.ObjectID) (*model.FeedItem, error) {
	if item, ok := f.items[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (f *fakeFeedRepo) GetMany(_ context.Context, ids []bson.ObjectID) ([]model.FeedItem, error) {
	var out []model.FeedItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeFeedRepo) Patch(_ context.Context, id bson.ObjectID, update bson.M) error {
	item, ok := f.items[id]
	if !ok {
		return nil
	}
	if v, ok := update["content"].(string); ok {
		item.Content = v
	}
	if v, ok := update["hashtags"].([]string); ok {
		item.Hashtags = v
	}
	if v, ok := update["mentions"].([]string); ok {
		item.Mentions = v
	}
	if v, ok := update["media_urls"].([]string); ok {
		item.MediaURLs = v
	}
	if v, ok := update["visibility"].(model.Visibility); ok {
		item.Visibility = v
	}
	f.items[id] = item
	return nil
}

func (f *fakeFeedRepo) SoftDelete(_ context.Context, id bson.ObjectID, at time.Time) error {
	item, ok := f.items[id]
	if !ok {
		return nil
	}
	item.Deleted = true
	item.DeletedAt = &at
	f.items[id] = item
	return nil
}

func (f *fakeFeedRepo) sorted(match func(model.FeedItem) bool, limit int) []model.FeedItem {
	var out []model.FeedItem
	for _, item := range f.items {
		if match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeFeedRepo) ListPage(_ context.Context, _ bson.M, opts repository.PageOptions, _ string) (repository.Page[model.FeedItem], error) {
	items := f.sorted(func(i model.FeedItem) bool { return !i.Deleted }, opts.NumItems)
	return repository.Page[model.FeedItem]{Page: items, IsDone: true}, nil
}

func (f *fakeFeedRepo) RecentByHashtag(_ context.Context, tag string, limit int) ([]model.FeedItem, error) {
	return f.sorted(func(i model.FeedItem) bool {
		if i.Deleted || i.Visibility != model.VisibilityPublic {
			return false
		}
		for _, t := range i.Hashtags {
			if t == tag {
				return true
			}
		}
		return false
	}, limit), nil
}

func (f *fakeFeedRepo) RecentByCreator(_ context.Context, creatorID string, limit int) ([]model.FeedItem, error) {
	return f.sorted(func(i model.FeedItem) bool {
		return !i.Deleted && i.CreatorID == creatorID
	}, limit), nil
}

func (f *fakeFeedRepo) MostRecent(_ context.Context, limit int) ([]model.FeedItem, error) {
	return f.sorted(func(i model.FeedItem) bool { return !i.Deleted }, limit), nil
}

func (f *fakeFeedRepo) CountShares(_ context.Context, contentID bson.ObjectID) (int, error) {
	n := 0
	for _, item := range f.items {
		if item.OriginalContentID != nil && *item.OriginalContentID == contentID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFeedRepo) CountSharesSince(_ context.Context, contentID bson.ObjectID, since time.Time) (int, error) {
	n := 0
	for _, item := range f.items {
		if item.OriginalContentID != nil && *item.OriginalContentID == contentID && !item.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type reactionKey struct {
	userID string
	itemID bson.ObjectID
}

type fakeReactionRepo struct {
	rows map[reactionKey]model.Reaction
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{rows: make(map[reactionKey]model.Reaction)}
}

func (f *fakeReactionRepo) Upsert(_ context.Context, userID string, itemID bson.ObjectID, rt model.ReactionType, now time.Time) (bool, error) {
	key := reactionKey{userID, itemID}
	if existing, ok := f.rows[key]; ok {
		existing.ReactionType = rt
		f.rows[key] = existing
		return false, nil
	}
	f.rows[key] = model.Reaction{
		ID:           bson.NewObjectID(),
		UserID:       userID,
		FeedItemID:   itemID,
		ReactionType: rt,
		CreatedAt:    now,
	}
	return true, nil
}

func (f *fakeReactionRepo) Find(_ context.Context, userID string, itemID bson.ObjectID) (*model.Reaction, error) {
	if r, ok := f.rows[reactionKey{userID, itemID}]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeReactionRepo) CountByItem(_ context.Context, itemID bson.ObjectID) (int, error) {
	n := 0
	for _, r := range f.rows {
		if r.FeedItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReactionRepo) CountByItemSince(_ context.Context, itemID bson.ObjectID, since time.Time) (int, error) {
	n := 0
	for _, r := range f.rows {
		if r.FeedItemID == itemID && !r.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeReactionRepo) RecentByUser(_ context.Context, userID string, limit int) ([]model.Reaction, error) {
	var out []model.Reaction
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReactionRepo) ByItems(_ context.Context, itemIDs []bson.ObjectID) ([]model.Reaction, error) {
	wanted := make(map[bson.ObjectID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	var out []model.Reaction
	for _, r := range f.rows {
		if _, ok := wanted[r.FeedItemID]; ok {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (f *fakeReactionRepo) ActiveUserIDs(_ context.Context, since time.Time) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range f.rows {
		if r.CreatedAt.Before(since) {
			continue
		}
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			out = append(out, r.UserID)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeCommentRepo struct {
	rows map[bson.ObjectID]model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{rows: make(map[bson.ObjectID]model.Comment)}
}

func (f *fakeCommentRepo) Insert(_ context.Context, comment model.Comment) (bson.ObjectID, error) {
	if comment.ID.IsZero() {
		comment.ID = bson.NewObjectID()
	}
	f.rows[comment.ID] = comment
	return comment.ID, nil
}

func (f *fakeCommentRepo) Get(_ context.Context, id bson.ObjectID) (*model.Comment, error) {
	if c, ok := f.rows[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeCommentRepo) Patch(_ context.Context, id bson.ObjectID, update bson.M) error {
	c, ok := f.rows[id]
	if !ok {
		return nil
	}
	if v, ok := update["content"].(string); ok {
		c.Content = v
	}
	f.rows[id] = c
	return nil
}

func (f *fakeCommentRepo) SoftDelete(_ context.Context, id bson.ObjectID, at time.Time) error {
	c, ok := f.rows[id]
	if !ok {
		return nil
	}
	c.Deleted = true
	c.DeletedAt = &at
	f.rows[id] = c
	return nil
}

func (f *fakeCommentRepo) ListPage(_ context.Context, _ bson.M, _ repository.PageOptions, _ string) (repository.Page[model.Comment], error) {
	var out []model.Comment
	for _, c := range f.rows {
		if !c.Deleted {
			out = append(out, c)
		}
	}
	return repository.Page[model.Comment]{Page: out, IsDone: true}, nil
}

func (f *fakeCommentRepo) isRoot(c model.Comment, parentID string) bool {
	return c.ParentID == parentID &&
		c.ParentType == model.ParentTypeFeedItem &&
		c.ParentCommentID == nil &&
		!c.Deleted
}

func (f *fakeCommentRepo) CountRoots(_ context.Context, parentID string) (int, error) {
	n := 0
	for _, c := range f.rows {
		if f.isRoot(c, parentID) {
			n++
		}
	}
	return n, nil
}

func (f *fakeCommentRepo) CountRootsSince(_ context.Context, parentID string, since time.Time) (int, error) {
	n := 0
	for _, c := range f.rows {
		if f.isRoot(c, parentID) && !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeCommentRepo) CountReplies(_ context.Context, parentCommentID bson.ObjectID) (int, error) {
	n := 0
	for _, c := range f.rows {
		if c.ParentCommentID != nil && *c.ParentCommentID == parentCommentID && !c.Deleted {
			n++
		}
	}
	return n, nil
}

type fakeHashtagRepo struct {
	rows map[bson.ObjectID]model.Hashtag
}

func newFakeHashtagRepo() *fakeHashtagRepo {
	return &fakeHashtagRepo{rows: make(map[bson.ObjectID]model.Hashtag)}
}

func (f *fakeHashtagRepo) add(tag model.Hashtag) bson.ObjectID {
	if tag.ID.IsZero() {
		tag.ID = bson.NewObjectID()
	}
	f.rows[tag.ID] = tag
	return tag.ID
}

func (f *fakeHashtagRepo) Get(_ context.Context, id bson.ObjectID) (*model.Hashtag, error) {
	if t, ok := f.rows[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (f *fakeHashtagRepo) GetMany(_ context.Context, ids []bson.ObjectID) ([]model.Hashtag, error) {
	var out []model.Hashtag
	for _, id := range ids {
		if t, ok := f.rows[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeHashtagRepo) FindByTag(_ context.Context, tag string) (*model.Hashtag, error) {
	for _, t := range f.rows {
		if t.Tag == tag {
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeHashtagRepo) Patch(_ context.Context, id bson.ObjectID, update bson.M) error {
	t, ok := f.rows[id]
	if !ok {
		return nil
	}
	if v, ok := update["is_topic"].(bool); ok {
		t.IsTopic = v
	}
	if v, ok := update["category"].(string); ok {
		t.Category = v
	}
	if v, ok := update["description"].(string); ok {
		t.Description = v
	}
	f.rows[id] = t
	return nil
}

func (f *fakeHashtagRepo) Insert(_ context.Context, tag model.Hashtag) (bson.ObjectID, error) {
	return f.add(tag), nil
}

func (f *fakeHashtagRepo) IncrementUsage(_ context.Context, tag string, now time.Time) error {
	for id, t := range f.rows {
		if t.Tag == tag {
			t.UsageCount++
			t.LastUsed = now
			f.rows[id] = t
			return nil
		}
	}
	f.add(model.Hashtag{Tag: tag, UsageCount: 1, LastUsed: now})
	return nil
}

func (f *fakeHashtagRepo) IncrementFollowers(_ context.Context, id bson.ObjectID, delta int) error {
	t, ok := f.rows[id]
	if !ok {
		return nil
	}
	t.FollowerCount += delta
	if t.FollowerCount < 0 {
		t.FollowerCount = 0
	}
	f.rows[id] = t
	return nil
}

func (f *fakeHashtagRepo) topBy(less func(a, b model.Hashtag) bool, match func(model.Hashtag) bool, limit int) []model.Hashtag {
	var out []model.Hashtag
	for _, t := range f.rows {
		if match(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeHashtagRepo) TopByUsage(_ context.Context, limit int) ([]model.Hashtag, error) {
	return f.topBy(
		func(a, b model.Hashtag) bool { return a.UsageCount > b.UsageCount },
		func(model.Hashtag) bool { return true }, limit), nil
}

func (f *fakeHashtagRepo) TopTopicsByFollowers(_ context.Context, limit int) ([]model.Hashtag, error) {
	return f.topBy(
		func(a, b model.Hashtag) bool { return a.FollowerCount > b.FollowerCount },
		func(t model.Hashtag) bool { return t.IsTopic }, limit), nil
}

func (f *fakeHashtagRepo) ListTopics(_ context.Context, category string, limit int) ([]model.Hashtag, error) {
	return f.topBy(
		func(a, b model.Hashtag) bool { return a.FollowerCount > b.FollowerCount },
		func(t model.Hashtag) bool {
			return t.IsTopic && (category == "" || t.Category == category)
		}, limit), nil
}

type followKey struct {
	userID  string
	topicID bson.ObjectID
}

type fakeTopicFollowRepo struct {
	rows map[followKey]model.TopicFollow
}

func newFakeTopicFollowRepo() *fakeTopicFollowRepo {
	return &fakeTopicFollowRepo{rows: make(map[followKey]model.TopicFollow)}
}

func (f *fakeTopicFollowRepo) Find(_ context.Context, userID string, topicID bson.ObjectID) (*model.TopicFollow, error) {
	if r, ok := f.rows[followKey{userID, topicID}]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeTopicFollowRepo) Insert(_ context.Context, follow model.TopicFollow) error {
	key := followKey{follow.UserID, follow.TopicID}
	if _, ok := f.rows[key]; ok {
		return nil
	}
	if follow.ID.IsZero() {
		follow.ID = bson.NewObjectID()
	}
	f.rows[key] = follow
	return nil
}

func (f *fakeTopicFollowRepo) Delete(_ context.Context, userID string, topicID bson.ObjectID) error {
	delete(f.rows, followKey{userID, topicID})
	return nil
}

func (f *fakeTopicFollowRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.TopicFollow, error) {
	var out []model.TopicFollow
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FollowedAt.After(out[j].FollowedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTopicFollowRepo) ListByUsers(_ context.Context, userIDs []string) ([]model.TopicFollow, error) {
	wanted := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = struct{}{}
	}
	var out []model.TopicFollow
	for _, r := range f.rows {
		if _, ok := wanted[r.UserID]; ok {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

type fakeSubscriptionRepo struct {
	followed map[string][]string
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{followed: make(map[string][]string)}
}

func (f *fakeSubscriptionRepo) FollowedUserIDs(_ context.Context, userID string) ([]string, error) {
	return f.followed[userID], nil
}

type fakeTrendingRepo struct {
	rows map[bson.ObjectID]model.TrendingSnapshot
}

func newFakeTrendingRepo() *fakeTrendingRepo {
	return &fakeTrendingRepo{rows: make(map[bson.ObjectID]model.TrendingSnapshot)}
}

func (f *fakeTrendingRepo) Get(_ context.Context, contentID bson.ObjectID) (*model.TrendingSnapshot, error) {
	if s, ok := f.rows[contentID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeTrendingRepo) Upsert(_ context.Context, snap model.TrendingSnapshot) error {
	f.rows[snap.ContentID] = snap
	return nil
}

func (f *fakeTrendingRepo) TopByScore(_ context.Context, limit int) ([]model.TrendingSnapshot, error) {
	var out []model.TrendingSnapshot
	for _, s := range f.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TrendingScore > out[j].TrendingScore })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type recKey struct {
	userID    string
	contentID bson.ObjectID
}

type fakeRecommendationRepo struct {
	rows map[recKey]model.Recommendation
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{rows: make(map[recKey]model.Recommendation)}
}

func (f *fakeRecommendationRepo) ExistingContentIDs(_ context.Context, userID string) (map[bson.ObjectID]struct{}, error) {
	out := make(map[bson.ObjectID]struct{})
	for key := range f.rows {
		if key.userID == userID {
			out[key.contentID] = struct{}{}
		}
	}
	return out, nil
}

func (f *fakeRecommendationRepo) InsertMany(_ context.Context, recs []model.Recommendation) error {
	for _, rec := range recs {
		key := recKey{rec.UserID, rec.ContentID}
		if _, ok := f.rows[key]; ok {
			continue
		}
		if rec.ID.IsZero() {
			rec.ID = bson.NewObjectID()
		}
		f.rows[key] = rec
	}
	return nil
}

func (f *fakeRecommendationRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.Recommendation, error) {
	var out []model.Recommendation
	for key, rec := range f.rows {
		if key.userID == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RelevanceScore > out[j].RelevanceScore })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRecommendationRepo) MarkSeen(_ context.Context, userID string, contentID bson.ObjectID) error {
	key := recKey{userID, contentID}
	if rec, ok := f.rows[key]; ok {
		rec.Seen = true
		f.rows[key] = rec
	}
	return nil
}

func (f *fakeRecommendationRepo) MarkInteracted(_ context.Context, userID string, contentID bson.ObjectID, reaction model.RecReaction) error {
	key := recKey{userID, contentID}
	if rec, ok := f.rows[key]; ok {
		rec.Interacted = true
		rec.UserReaction = reaction
		f.rows[key] = rec
	}
	return nil
}

type fakeUserRepo struct {
	rows map[bson.ObjectID]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[bson.ObjectID]model.User)}
}

func (f *fakeUserRepo) Insert(_ context.Context, user model.User) (bson.ObjectID, error) {
	for _, u := range f.rows {
		if u.Email == user.Email {
			return bson.NilObjectID, repository.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	f.rows[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	if u, ok := f.rows[oid]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]model.User, error) {
	out := make(map[string]model.User)
	for _, id := range ids {
		if oid, err := bson.ObjectIDFromHex(id); err == nil {
			if u, ok := f.rows[oid]; ok {
				out[id] = u
			}
		}
	}
	return out, nil
}
