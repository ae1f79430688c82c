package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"unhinge_server/models"
	"unhinge_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ReciprocityStore checks the swipe log for a like in the opposite direction
type ReciprocityStore interface {
	HasReciprocalLike(ctx context.Context, ownerID, likerID string) (bool, error)
}

// MatchStore persists and queries match records
type MatchStore interface {
	PutMatch(ctx context.Context, match *models.Match) error
	ListForUser(ctx context.Context, userID string) ([]models.Match, error)
	MarkSeen(ctx context.Context, matchID string) error
}

// ProfileItemStore reads raw profile attribute maps for enrichment
type ProfileItemStore interface {
	GetProfileItem(ctx context.Context, userID string) (map[string]types.AttributeValue, error)
}

// MatchNotifier surfaces a freshly created match to the participants
type MatchNotifier interface {
	NotifyNewMatch(match *models.Match)
}

// MatchService detects reciprocal likes and materializes match records
type MatchService struct {
	Swipes   ReciprocityStore
	Matches  MatchStore
	Profiles ProfileItemStore
	Notifier MatchNotifier // optional
}

// MatchID derives the deterministic id for an unordered user pair, so both
// sides of a mutual like converge on the same record
func MatchID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

// CheckAndCreateMatch looks for a like from ownerID back at likerID and, if
// found, writes the match record. The write is an unconditional overwrite at
// the deterministic id: concurrent detection from both devices double-writes
// the same id with differing createdAt/isNew, which at worst duplicates a
// "new match" notification. Failures are logged and swallowed; a missed
// match is re-detected the next time either party swipes.
func (s *MatchService) CheckAndCreateMatch(ctx context.Context, likerID, ownerID, memeID string) {
	if likerID == "" || ownerID == "" || likerID == ownerID {
		return
	}

	reciprocal, err := s.Swipes.HasReciprocalLike(ctx, ownerID, likerID)
	if err != nil {
		log.Printf("⚠️ Match check for %s/%s failed: %v", likerID, ownerID, err)
		return
	}
	if !reciprocal {
		return
	}

	participants := []string{likerID, ownerID}
	sort.Strings(participants)
	match := &models.Match{
		MatchID:      MatchID(likerID, ownerID),
		Participants: participants,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		IsNew:        true,
	}

	if err := s.Matches.PutMatch(ctx, match); err != nil {
		log.Printf("⚠️ Failed to write match %s: %v", match.MatchID, err)
		return
	}
	log.Printf("🎉 Match created: %s ❤️ %s (via meme %s)", likerID, ownerID, memeID)

	if s.Notifier != nil {
		s.Notifier.NotifyNewMatch(match)
	}
}

// GetCurrentMatches returns the user's matches enriched with partner profile
// details. A partner whose profile cannot be fetched still appears, just
// without name and photo.
func (s *MatchService) GetCurrentMatches(ctx context.Context, userID string) ([]models.MatchWithProfile, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	matches, err := s.Matches.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	enriched := make([]models.MatchWithProfile, 0, len(matches))
	for _, match := range matches {
		partnerID := ""
		for _, participant := range match.Participants {
			if participant != userID {
				partnerID = participant
				break
			}
		}

		result := models.MatchWithProfile{
			MatchID:   match.MatchID,
			PartnerID: partnerID,
			CreatedAt: match.CreatedAt,
			IsNew:     match.IsNew,
		}

		if partnerID != "" && s.Profiles != nil {
			item, err := s.Profiles.GetProfileItem(ctx, partnerID)
			if err == nil && item != nil {
				result.PartnerName = utils.ExtractString(item, "name")
				result.PartnerPhotoURL = utils.ExtractString(item, "photoUrl")
			}
		}
		enriched = append(enriched, result)
	}
	return enriched, nil
}

// MarkMatchSeen flips isNew off once the notification has been consumed
func (s *MatchService) MarkMatchSeen(ctx context.Context, matchID string) error {
	if matchID == "" {
		return fmt.Errorf("matchId cannot be empty")
	}
	return s.Matches.MarkSeen(ctx, matchID)
}
