package services

import (
	"context"
	"log"

	"unhinge_server/models"
)

// UploaderProfileStore fetches uploader profiles
type UploaderProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// UploaderSink receives a fetched uploader, rejecting it when stale
type UploaderSink interface {
	ApplyUploader(userID, memeID string, profile *models.UserProfile) bool
}

// EnrichmentService asynchronously attaches the uploader's profile to the
// meme currently on screen. The fetch result is only applied if that meme is
// still current when it lands; the user swiping past it first just discards
// the result. No retry: a missing uploader name degrades the card, nothing
// else.
type EnrichmentService struct {
	Profiles UploaderProfileStore
	Feed     UploaderSink
}

// EnrichCurrent fires the uploader fetch for the given meme and returns
// immediately
func (s *EnrichmentService) EnrichCurrent(ctx context.Context, userID string, meme *models.Meme) {
	if meme == nil || meme.UploadedBy == "" {
		return
	}
	go s.fetchAndApply(ctx, userID, meme)
}

func (s *EnrichmentService) fetchAndApply(ctx context.Context, userID string, meme *models.Meme) {
	profile, err := s.Profiles.GetProfile(ctx, meme.UploadedBy)
	if err != nil {
		log.Printf("⚠️ Failed to fetch uploader %s for meme %s: %v", meme.UploadedBy, meme.MemeID, err)
		return
	}
	if !s.Feed.ApplyUploader(userID, meme.MemeID, profile) {
		log.Printf("ℹ️ Uploader fetch for meme %s landed after the feed moved on, discarded", meme.MemeID)
	}
}
