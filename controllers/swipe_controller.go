package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"unhinge_server/services"
)

// SwipeController records swipe decisions and advances the feed
type SwipeController struct {
	Swipes   *services.SwipeService
	Memes    *services.MemeRepository
	Feed     *services.FeedService
	Enricher *services.EnrichmentService
}

// NewSwipeController initializes the controller
func NewSwipeController(swipes *services.SwipeService, memes *services.MemeRepository, feed *services.FeedService, enricher *services.EnrichmentService) *SwipeController {
	return &SwipeController{Swipes: swipes, Memes: memes, Feed: feed, Enricher: enricher}
}

// HandleSwipe - Record a like/dislike on a meme. The feed only advances once
// the swipe write has succeeded; on failure the same card stays current so
// the client can retry.
func (c *SwipeController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SwiperID string `json:"swiperId"`
		MemeID   string `json:"memeId"`
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	meme, err := c.Memes.GetMeme(r.Context(), request.MemeID)
	if err != nil {
		if errors.Is(err, services.ErrMemeNotFound) {
			http.Error(w, `{"error": "Meme not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error": "Failed to load meme"}`, http.StatusInternalServerError)
		return
	}

	swipe, err := c.Swipes.RecordSwipe(r.Context(), request.SwiperID, meme, request.Decision)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAuthenticated):
			http.Error(w, `{"error": "Not authenticated"}`, http.StatusUnauthorized)
		case errors.Is(err, services.ErrUnsupportedDecision):
			http.Error(w, `{"error": "Unsupported decision"}`, http.StatusBadRequest)
		default:
			log.Printf("❌ Failed to record swipe: %v", err)
			http.Error(w, `{"error": "Failed to record swipe"}`, http.StatusInternalServerError)
		}
		return
	}

	next, err := c.Feed.Advance(request.SwiperID)
	if err == nil {
		c.Enricher.EnrichCurrent(c.Feed.SessionContext(request.SwiperID), request.SwiperID, next)
	}

	response := map[string]interface{}{
		"status": "success",
		"swipe":  swipe,
	}
	if next != nil {
		response["next"] = next
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
