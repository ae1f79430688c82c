package services

import (
	"context"
	"log"

	"unhinge_server/models"
)

// ExclusionMemeStore lists meme ids by uploader
type ExclusionMemeStore interface {
	ListIDsByUploader(ctx context.Context, userID string) ([]string, error)
}

// ExclusionSwipeStore lists the meme ids a user has swiped on
type ExclusionSwipeStore interface {
	ListMemeIDsBySwiper(ctx context.Context, swiperID string) ([]string, error)
}

// ExclusionMatchStore lists a user's matches
type ExclusionMatchStore interface {
	ListForUser(ctx context.Context, userID string) ([]models.Match, error)
}

// ExclusionService computes the set of meme ids that must not be re-served to
// a user: their own uploads, everything they already swiped on, and every
// upload of a user they are already matched with.
type ExclusionService struct {
	Memes   ExclusionMemeStore
	Swipes  ExclusionSwipeStore
	Matches ExclusionMatchStore
}

// Resolve returns the exclusion set for a user. A failed sub-query degrades
// completeness but never fails the whole resolve: serving an already-swiped
// meme again is a minor UX defect, while an empty feed is not.
func (s *ExclusionService) Resolve(ctx context.Context, userID string) (map[string]struct{}, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	excluded := make(map[string]struct{})

	ownIDs, err := s.Memes.ListIDsByUploader(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Exclusion: failed to fetch own uploads for %s: %v", userID, err)
	}
	for _, id := range ownIDs {
		excluded[id] = struct{}{}
	}

	swipedIDs, err := s.Swipes.ListMemeIDsBySwiper(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Exclusion: failed to fetch swipe history for %s: %v", userID, err)
	}
	for _, id := range swipedIDs {
		excluded[id] = struct{}{}
	}

	matches, err := s.Matches.ListForUser(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Exclusion: failed to fetch matches for %s: %v", userID, err)
		return excluded, nil
	}
	for _, match := range matches {
		for _, participant := range match.Participants {
			if participant == userID {
				continue
			}
			partnerIDs, err := s.Memes.ListIDsByUploader(ctx, participant)
			if err != nil {
				log.Printf("⚠️ Exclusion: failed to fetch uploads of matched user %s: %v", participant, err)
				continue
			}
			for _, id := range partnerIDs {
				excluded[id] = struct{}{}
			}
		}
	}

	return excluded, nil
}
