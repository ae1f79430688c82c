package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"unhinge_server/models"
	"unhinge_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles profile reads and writes
type UserProfileController struct {
	Profiles *services.ProfileRepository
}

// NewUserProfileController initializes the controller
func NewUserProfileController(profiles *services.ProfileRepository) *UserProfileController {
	return &UserProfileController{Profiles: profiles}
}

// HandleGetProfile - Fetch a user profile by id
func (c *UserProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.Profiles.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			http.Error(w, `{"error": "Profile not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error": "Failed to fetch profile"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// HandlePutProfile - Create or replace a user profile
func (c *UserProfileController) HandlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	profile.UserID = userID

	if err := c.Profiles.PutProfile(r.Context(), &profile); err != nil {
		http.Error(w, `{"error": "Failed to save profile"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}
