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

type swipePutStub struct {
	mu     sync.Mutex
	swipes []*models.Swipe
	err    error
}

func (s *swipePutStub) PutSwipe(_ context.Context, swipe *models.Swipe) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	s.swipes = append(s.swipes, swipe)
	s.mu.Unlock()
	return nil
}

type counterStub struct {
	mu    sync.Mutex
	likes map[string]int
}

func (s *counterStub) IncrementCounters(_ context.Context, memeID string, likes, _ int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.likes == nil {
		s.likes = make(map[string]int)
	}
	s.likes[memeID] += likes
	return nil
}

type matcherStub struct {
	mu    sync.Mutex
	calls [][3]string
	done  chan struct{}
}

func (s *matcherStub) CheckAndCreateMatch(_ context.Context, likerID, ownerID, memeID string) {
	s.mu.Lock()
	s.calls = append(s.calls, [3]string{likerID, ownerID, memeID})
	s.mu.Unlock()
	if s.done != nil {
		s.done <- struct{}{}
	}
}

func (s *matcherStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestRecordSwipeAppendsEvent(t *testing.T) {
	swipes := &swipePutStub{}
	matcher := &matcherStub{}
	svc := &SwipeService{Swipes: swipes, Matcher: matcher}
	target := meme("m1", "bob")

	swipe, err := svc.RecordSwipe(context.Background(), "alice", &target, models.DecisionDislike)
	require.NoError(t, err)
	require.NotEmpty(t, swipe.SwipeID)
	require.Equal(t, "alice", swipe.SwiperID)
	require.Equal(t, "m1", swipe.MemeID)
	require.Equal(t, "bob", swipe.MemeOwnerID)
	require.Equal(t, models.DecisionDislike, swipe.Decision)
	require.NotEmpty(t, swipe.CreatedAt)
	require.Len(t, swipes.swipes, 1)
}

func TestRecordSwipeDislikeSkipsDetection(t *testing.T) {
	matcher := &matcherStub{}
	svc := &SwipeService{Swipes: &swipePutStub{}, Matcher: matcher}
	target := meme("m1", "bob")

	_, err := svc.RecordSwipe(context.Background(), "alice", &target, models.DecisionDislike)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	require.Zero(t, matcher.callCount())
}

func TestRecordSwipeLikeTriggersDetection(t *testing.T) {
	counters := &counterStub{}
	matcher := &matcherStub{done: make(chan struct{}, 1)}
	svc := &SwipeService{Swipes: &swipePutStub{}, Memes: counters, Matcher: matcher}
	target := meme("m1", "bob")

	_, err := svc.RecordSwipe(context.Background(), "alice", &target, models.DecisionLike)
	require.NoError(t, err)

	select {
	case <-matcher.done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected match detection to run")
	}
	require.Equal(t, [3]string{"alice", "bob", "m1"}, matcher.calls[0])

	counters.mu.Lock()
	defer counters.mu.Unlock()
	require.Equal(t, 1, counters.likes["m1"])
}

func TestRecordSwipeWriteFailure(t *testing.T) {
	matcher := &matcherStub{}
	svc := &SwipeService{Swipes: &swipePutStub{err: errors.New("backend down")}, Matcher: matcher}
	target := meme("m1", "bob")

	_, err := svc.RecordSwipe(context.Background(), "alice", &target, models.DecisionLike)
	require.Error(t, err)

	time.Sleep(50 * time.Millisecond)
	require.Zero(t, matcher.callCount())
}

func TestRecordSwipeValidation(t *testing.T) {
	swipes := &swipePutStub{}
	svc := &SwipeService{Swipes: swipes, Matcher: &matcherStub{}}
	target := meme("m1", "bob")

	_, err := svc.RecordSwipe(context.Background(), "", &target, models.DecisionLike)
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.RecordSwipe(context.Background(), "alice", nil, models.DecisionLike)
	require.ErrorIs(t, err, ErrMemeNotFound)

	_, err = svc.RecordSwipe(context.Background(), "alice", &target, "superlike")
	require.ErrorIs(t, err, ErrUnsupportedDecision)

	require.Empty(t, swipes.swipes)
}
