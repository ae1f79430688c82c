package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"unhinge_server/models"
	"unhinge_server/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// MemeController handles meme creation and listing
type MemeController struct {
	Memes *services.MemeRepository
}

// NewMemeController initializes the controller
func NewMemeController(memes *services.MemeRepository) *MemeController {
	return &MemeController{Memes: memes}
}

// HandleCreateMeme - Create the meme document once the image sits in S3
func (c *MemeController) HandleCreateMeme(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UploadedBy string   `json:"uploadedBy"`
		ImageURL   string   `json:"imageUrl"`
		Caption    string   `json:"caption"`
		Tags       []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UploadedBy == "" {
		http.Error(w, `{"error": "Not authenticated"}`, http.StatusUnauthorized)
		return
	}
	if request.ImageURL == "" {
		http.Error(w, `{"error": "imageUrl is required"}`, http.StatusBadRequest)
		return
	}

	meme := &models.Meme{
		MemeID:     uuid.NewString(),
		ImageURL:   request.ImageURL,
		Caption:    request.Caption,
		Tags:       request.Tags,
		UploadedBy: request.UploadedBy,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := c.Memes.PutMeme(r.Context(), meme); err != nil {
		log.Printf("❌ Failed to create meme: %v", err)
		http.Error(w, `{"error": "Failed to create meme"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meme)
}

// HandleListUserMemes - Fetch all memes a user has uploaded
func (c *MemeController) HandleListUserMemes(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	memes, err := c.Memes.ListByUploader(r.Context(), userID)
	if err != nil {
		http.Error(w, `{"error": "Failed to fetch memes"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(memes)
}

// HandleTrackView - Best-effort view counter bump
func (c *MemeController) HandleTrackView(w http.ResponseWriter, r *http.Request) {
	memeID := mux.Vars(r)["memeId"]
	if memeID == "" {
		http.Error(w, `{"error": "memeId is required"}`, http.StatusBadRequest)
		return
	}

	if err := c.Memes.IncrementCounters(r.Context(), memeID, 0, 1); err != nil {
		log.Printf("⚠️ Failed to bump view counter for meme %s: %v", memeID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}
