package controllers

import (
	"encoding/json"
	"net/http"

	"unhinge_server/services"
)

// HandleGenerateUploadURL - Presigned URL for uploading a meme image
func HandleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.FileType == "" {
		request.FileType = "image/jpeg"
	}

	url, key, err := services.GenerateMemeUploadURL(request.FileType)
	if err != nil {
		http.Error(w, `{"error": "Failed to generate upload URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"uploadUrl": url, "key": key})
}

// HandleGenerateReadURL - Presigned URL for reading a stored image
func HandleGenerateReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, `{"error": "key is required"}`, http.StatusBadRequest)
		return
	}

	url, err := services.GenerateReadURL(key)
	if err != nil {
		http.Error(w, `{"error": "Failed to generate read URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"readUrl": url})
}
