package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"unhinge_server/services"
)

// MatchController serves match listings and seen acknowledgements
type MatchController struct {
	Matches *services.MatchService
}

// NewMatchController initializes the controller
func NewMatchController(matches *services.MatchService) *MatchController {
	return &MatchController{Matches: matches}
}

// HandleGetMatches - Fetch all matches for a user, enriched with partner profiles
func (c *MatchController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	matches, err := c.Matches.GetCurrentMatches(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			http.Error(w, `{"error": "Not authenticated"}`, http.StatusUnauthorized)
			return
		}
		http.Error(w, `{"error": "Failed to fetch matches"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}

// HandleMarkSeen - Acknowledge a new-match notification
func (c *MatchController) HandleMarkSeen(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.Matches.MarkMatchSeen(r.Context(), request.MatchID); err != nil {
		http.Error(w, `{"error": "Failed to mark match seen"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}
