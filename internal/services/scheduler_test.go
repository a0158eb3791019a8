package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/model"
)

func newSchedulerFixture() (*Scheduler, *fakeFeedRepo, *fakeReactionRepo, *fakeTrendingRepo, *fakeRecommendationRepo) {
	feed := newFakeFeedRepo()
	reactions := newFakeReactionRepo()
	comments := newFakeCommentRepo()
	trendingRepo := newFakeTrendingRepo()
	recRepo := newFakeRecommendationRepo()
	hashtags := newFakeHashtagRepo()
	follows := newFakeTopicFollowRepo()
	subs := newFakeSubscriptionRepo()

	trendingSvc := NewTrendingService(feed, reactions, comments, trendingRepo, zerolog.Nop())
	recSvc := NewRecommendationService(feed, reactions, hashtags, follows, subs, trendingRepo, recRepo, zerolog.Nop())

	sched := NewScheduler(SchedulerConfig{
		Interval:          time.Hour,
		TrendingBatchSize: 100,
		ActiveUserWindow:  30 * 24 * time.Hour,
	}, feed, reactions, trendingSvc, recSvc, zerolog.Nop())
	return sched, feed, reactions, trendingRepo, recRepo
}

func TestRunOnceScoresAndRefreshes(t *testing.T) {
	sched, feed, reactions, trendingRepo, _ := newSchedulerFixture()
	ctx := context.Background()
	now := time.Now().UTC()

	a := feed.add(model.FeedItem{CreatorID: "alice", Content: "a", Visibility: model.VisibilityPublic, CreatedAt: now.Add(-time.Hour)})
	b := feed.add(model.FeedItem{CreatorID: "bob", Content: "b", Visibility: model.VisibilityPublic, CreatedAt: now.Add(-2 * time.Hour)})

	_, err := reactions.Upsert(ctx, "carol", a, model.ReactionLike, now.Add(-30*time.Minute))
	require.NoError(t, err)
	_, err = reactions.Upsert(ctx, "dave", b, model.ReactionLove, now.Add(-40*24*time.Hour))
	require.NoError(t, err)

	stats, err := sched.RunOnce(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ItemsScored)
	assert.Zero(t, stats.ItemErrors)
	// Only carol reacted inside the 30-day activity window.
	assert.Equal(t, 1, stats.UsersRefreshed)
	assert.Zero(t, stats.UserErrors)

	for _, id := range []bson.ObjectID{a, b} {
		snap, err := trendingRepo.Get(ctx, id)
		require.NoError(t, err)
		assert.NotNil(t, snap)
	}
}

// failingFeedRepo errors on one specific item to exercise per-entity
// failure isolation.
type failingFeedRepo struct {
	*fakeFeedRepo
	failID bson.ObjectID
}

func (f *failingFeedRepo) Get(ctx context.Context, id bson.ObjectID) (*model.FeedItem, error) {
	if id == f.failID {
		return nil, errors.New("simulated read failure")
	}
	return f.fakeFeedRepo.Get(ctx, id)
}

func TestRunOnceIsolatesEntityFailures(t *testing.T) {
	feed := newFakeFeedRepo()
	reactions := newFakeReactionRepo()
	trendingRepo := newFakeTrendingRepo()
	now := time.Now().UTC()

	bad := feed.add(model.FeedItem{CreatorID: "alice", Content: "bad", CreatedAt: now})
	good := feed.add(model.FeedItem{CreatorID: "bob", Content: "good", CreatedAt: now.Add(-time.Minute)})

	wrapped := &failingFeedRepo{fakeFeedRepo: feed, failID: bad}
	trendingSvc := NewTrendingService(wrapped, reactions, newFakeCommentRepo(), trendingRepo, zerolog.Nop())
	recSvc := NewRecommendationService(wrapped, reactions, newFakeHashtagRepo(), newFakeTopicFollowRepo(),
		newFakeSubscriptionRepo(), trendingRepo, newFakeRecommendationRepo(), zerolog.Nop())

	sched := NewScheduler(SchedulerConfig{
		Interval:          time.Hour,
		TrendingBatchSize: 100,
		ActiveUserWindow:  30 * 24 * time.Hour,
	}, wrapped, reactions, trendingSvc, recSvc, zerolog.Nop())

	stats, err := sched.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ItemsScored, "the healthy item is still scored")
	assert.Equal(t, 1, stats.ItemErrors)

	snap, err := trendingRepo.Get(context.Background(), good)
	require.NoError(t, err)
	assert.NotNil(t, snap)
	snap, err = trendingRepo.Get(context.Background(), bad)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRunStopsOnCancel(t *testing.T) {
	sched, _, _, _, _ := newSchedulerFixture()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}
