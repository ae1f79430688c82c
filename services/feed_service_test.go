package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"unhinge_server/models"

	"github.com/stretchr/testify/require"
)

type candidateStoreStub struct {
	mu      sync.Mutex
	pages   [][]models.Meme
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (s *candidateStoreStub) FeedCandidates(_ context.Context, _ string, _ int) ([]models.Meme, error) {
	s.mu.Lock()
	s.calls++
	var page []models.Meme
	if len(s.pages) > 0 {
		page = s.pages[0]
		s.pages = s.pages[1:]
	}
	s.mu.Unlock()

	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return page, s.err
}

func (s *candidateStoreStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type exclusionStub struct {
	set map[string]struct{}
	err error
}

func (s *exclusionStub) Resolve(_ context.Context, _ string) (map[string]struct{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.set == nil {
		return map[string]struct{}{}, nil
	}
	return s.set, nil
}

func meme(id, owner string) models.Meme {
	return models.Meme{MemeID: id, ImageURL: "https://img/" + id + ".jpg", UploadedBy: owner}
}

func TestRefillFiltersOwnerAndExclusions(t *testing.T) {
	store := &candidateStoreStub{pages: [][]models.Meme{{
		meme("m1", "bob"),
		meme("m2", "bob"),   // excluded
		meme("m3", "alice"), // own upload
	}}}
	feed := NewFeedService(store, &exclusionStub{set: map[string]struct{}{"m2": {}}})

	require.NoError(t, feed.Refill(context.Background(), "alice"))

	current := feed.Current("alice")
	require.NotNil(t, current)
	require.Equal(t, "m1", current.MemeID)
	require.NotEqual(t, "alice", current.UploadedBy)

	next, err := feed.Advance("alice")
	require.NoError(t, err)
	require.Nil(t, next)
}

func TestRefillDeduplicatesAcrossRefills(t *testing.T) {
	store := &candidateStoreStub{pages: [][]models.Meme{
		{meme("m1", "bob"), meme("m2", "bob")},
		{meme("m2", "bob"), meme("m3", "carol")},
	}}
	feed := NewFeedService(store, &exclusionStub{})

	require.NoError(t, feed.Refill(context.Background(), "alice"))
	require.NoError(t, feed.Refill(context.Background(), "alice"))

	var ids []string
	for {
		current := feed.Current("alice")
		if current == nil {
			break
		}
		ids = append(ids, current.MemeID)
		_, err := feed.Advance("alice")
		require.NoError(t, err)
	}
	require.Equal(t, []string{"m1", "m2", "m3"}, ids)
}

func TestAdvanceBelowThresholdTriggersSingleRefill(t *testing.T) {
	store := &candidateStoreStub{
		pages:   [][]models.Meme{{meme("m1", "bob"), meme("m2", "bob"), meme("m3", "bob")}},
		started: make(chan struct{}, 10),
	}
	feed := NewFeedService(store, &exclusionStub{})

	require.NoError(t, feed.Refill(context.Background(), "alice"))
	<-store.started
	require.Equal(t, 1, store.callCount())

	// 2 remaining after the advance, below the threshold of 5
	_, err := feed.Advance("alice")
	require.NoError(t, err)

	select {
	case <-store.started:
	case <-time.After(2 * time.Second):
		t.Fatal("expected advance to trigger a refill")
	}
	require.Equal(t, 2, store.callCount())
}

func TestConcurrentRefillsCoalesce(t *testing.T) {
	store := &candidateStoreStub{
		pages:   [][]models.Meme{{meme("m1", "bob")}},
		started: make(chan struct{}, 10),
		release: make(chan struct{}),
	}
	feed := NewFeedService(store, &exclusionStub{})

	done := make(chan error, 1)
	go func() {
		done <- feed.Refill(context.Background(), "alice")
	}()
	<-store.started // first refill is now in flight

	// a second refill while one is pending is a no-op, not queued
	require.NoError(t, feed.Refill(context.Background(), "alice"))
	require.Equal(t, 1, store.callCount())

	close(store.release)
	require.NoError(t, <-done)
	require.Equal(t, 1, store.callCount())
}

func TestEmptyRefillDoesNotLoop(t *testing.T) {
	store := &candidateStoreStub{started: make(chan struct{}, 10)}
	feed := NewFeedService(store, &exclusionStub{})

	require.NoError(t, feed.Refill(context.Background(), "alice"))
	<-store.started
	require.Nil(t, feed.Current("alice"))

	_, err := feed.Advance("alice")
	require.NoError(t, err)
	select {
	case <-store.started:
	case <-time.After(2 * time.Second):
		t.Fatal("expected advance to attempt one refill")
	}

	// one attempt per advance, nothing beyond it
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 2, store.callCount())
	require.Nil(t, feed.Current("alice"))
}

func TestRefillErrorSurfacesAndClearsInFlight(t *testing.T) {
	store := &candidateStoreStub{err: errors.New("backend down")}
	feed := NewFeedService(store, &exclusionStub{})

	require.Error(t, feed.Refill(context.Background(), "alice"))
	// the in-flight flag is released, so a retry reaches the store again
	require.Error(t, feed.Refill(context.Background(), "alice"))
	require.Equal(t, 2, store.callCount())
}

func TestApplyUploaderOnlyWhenStillCurrent(t *testing.T) {
	store := &candidateStoreStub{pages: [][]models.Meme{{
		meme("m1", "bob"), meme("m2", "carol"),
		meme("m3", "bob"), meme("m4", "bob"),
		meme("m5", "bob"), meme("m6", "bob"), meme("m7", "bob"),
	}}}
	feed := NewFeedService(store, &exclusionStub{})
	require.NoError(t, feed.Refill(context.Background(), "alice"))

	profile := &models.UserProfile{UserID: "bob", Name: "Bob"}
	require.True(t, feed.ApplyUploader("alice", "m1", profile))
	require.Equal(t, "Bob", feed.CurrentUploader("alice").Name)

	_, err := feed.Advance("alice")
	require.NoError(t, err)

	// the fetch for m1 resolves after the user moved on: discarded
	require.Nil(t, feed.CurrentUploader("alice"))
	require.False(t, feed.ApplyUploader("alice", "m1", profile))
	require.Nil(t, feed.CurrentUploader("alice"))

	require.True(t, feed.ApplyUploader("alice", "m2", &models.UserProfile{UserID: "carol"}))
	require.NotNil(t, feed.CurrentUploader("alice"))
}

func TestEndSessionDiscardsStateAndCancels(t *testing.T) {
	store := &candidateStoreStub{pages: [][]models.Meme{{meme("m1", "bob")}}}
	feed := NewFeedService(store, &exclusionStub{})
	require.NoError(t, feed.Refill(context.Background(), "alice"))
	require.NotNil(t, feed.Current("alice"))

	ctx := feed.SessionContext("alice")
	feed.EndSession("alice")

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("expected session context to be canceled")
	}
	require.Nil(t, feed.Current("alice"))
}

func TestLateRefillAfterEndSessionDoesNotResurrect(t *testing.T) {
	store := &candidateStoreStub{pages: [][]models.Meme{
		{meme("m1", "bob")},
		{meme("m2", "carol")},
	}}
	feed := NewFeedService(store, &exclusionStub{})
	require.NoError(t, feed.Refill(context.Background(), "alice"))

	sess := feed.session("alice")
	ctx := sess.ctx
	feed.EndSession("alice")

	// A refill spawned by Advance just before EndSession may only start
	// running afterwards. It works on the captured session and must not
	// put a fresh entry back into the map.
	require.NoError(t, feed.refill(ctx, "alice", sess))

	feed.mu.Lock()
	_, resurrected := feed.sessions["alice"]
	feed.mu.Unlock()
	require.False(t, resurrected)
}

func TestFeedRequiresUser(t *testing.T) {
	feed := NewFeedService(&candidateStoreStub{}, &exclusionStub{})

	_, err := feed.Advance("")
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.ErrorIs(t, feed.Refill(context.Background(), ""), ErrNotAuthenticated)
}
