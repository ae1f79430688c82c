package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"unhinge_server/services"
)

// FeedController serves the swipe feed
type FeedController struct {
	Feed     *services.FeedService
	Enricher *services.EnrichmentService
}

// NewFeedController initializes the controller
func NewFeedController(feed *services.FeedService, enricher *services.EnrichmentService) *FeedController {
	return &FeedController{Feed: feed, Enricher: enricher}
}

type feedResponse struct {
	Meme     interface{} `json:"meme"`
	Uploader interface{} `json:"uploader,omitempty"`
}

// HandleRefresh - Fill the caller's feed session and return the current card
func (c *FeedController) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.Feed.Refill(r.Context(), request.UserID); err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			http.Error(w, `{"error": "Not authenticated"}`, http.StatusUnauthorized)
			return
		}
		http.Error(w, `{"error": "Failed to refresh feed"}`, http.StatusInternalServerError)
		return
	}

	current := c.Feed.Current(request.UserID)
	c.Enricher.EnrichCurrent(c.Feed.SessionContext(request.UserID), request.UserID, current)
	c.writeCurrent(w, request.UserID)
}

// HandleCurrent - Return the card currently at the head of the feed
func (c *FeedController) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "Not authenticated"}`, http.StatusUnauthorized)
		return
	}
	c.writeCurrent(w, userID)
}

// HandleAdvance - Discard the current card and move to the next one
func (c *FeedController) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	next, err := c.Feed.Advance(request.UserID)
	if err != nil {
		http.Error(w, `{"error": "Not authenticated"}`, http.StatusUnauthorized)
		return
	}
	c.Enricher.EnrichCurrent(c.Feed.SessionContext(request.UserID), request.UserID, next)
	c.writeCurrent(w, request.UserID)
}

// HandleEnd - Tear down the caller's feed session
func (c *FeedController) HandleEnd(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	c.Feed.EndSession(request.UserID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

func (c *FeedController) writeCurrent(w http.ResponseWriter, userID string) {
	response := feedResponse{}
	if meme := c.Feed.Current(userID); meme != nil {
		response.Meme = meme
	}
	if uploader := c.Feed.CurrentUploader(userID); uploader != nil {
		response.Uploader = uploader
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
