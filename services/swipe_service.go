package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"unhinge_server/models"

	"github.com/google/uuid"
)

// SwipeStore appends swipe events
type SwipeStore interface {
	PutSwipe(ctx context.Context, swipe *models.Swipe) error
}

// MemeCounterStore bumps meme counters
type MemeCounterStore interface {
	IncrementCounters(ctx context.Context, memeID string, likes, views int) error
}

// MatchChecker runs reciprocal-match detection for a recorded like
type MatchChecker interface {
	CheckAndCreateMatch(ctx context.Context, likerID, ownerID, memeID string)
}

// SwipeService durably records swipe decisions. A like additionally kicks off
// match detection, decoupled from feed progression: the caller advances as
// soon as the swipe write lands and hears about a match through the
// notification channel.
type SwipeService struct {
	Swipes  SwipeStore
	Memes   MemeCounterStore
	Matcher MatchChecker
}

// RecordSwipe appends one swipe event. If the write fails nothing else
// happens: the swipe is not recorded and the caller must not advance the
// feed, since an optimistic local commit would let the user bypass exclusion
// on retry.
func (s *SwipeService) RecordSwipe(ctx context.Context, swiperID string, meme *models.Meme, decision string) (*models.Swipe, error) {
	if swiperID == "" {
		return nil, ErrNotAuthenticated
	}
	if meme == nil || meme.MemeID == "" {
		return nil, ErrMemeNotFound
	}
	if decision != models.DecisionLike && decision != models.DecisionDislike {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDecision, decision)
	}

	swipe := &models.Swipe{
		SwipeID:     uuid.NewString(),
		SwiperID:    swiperID,
		MemeID:      meme.MemeID,
		MemeOwnerID: meme.UploadedBy,
		Decision:    decision,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Swipes.PutSwipe(ctx, swipe); err != nil {
		return nil, err
	}
	log.Printf("✅ Swipe recorded: %s %sd meme %s", swiperID, decision, meme.MemeID)

	if decision == models.DecisionLike {
		ownerID := meme.UploadedBy
		memeID := meme.MemeID
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("❌ Match detection panicked for swipe by %s on %s: %v", swiperID, memeID, r)
				}
			}()
			detectCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if s.Memes != nil {
				if err := s.Memes.IncrementCounters(detectCtx, memeID, 1, 0); err != nil {
					log.Printf("⚠️ Failed to bump like counter for meme %s: %v", memeID, err)
				}
			}
			s.Matcher.CheckAndCreateMatch(detectCtx, swiperID, ownerID, memeID)
		}()
	}

	return swipe, nil
}
