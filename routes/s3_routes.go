package routes

import (
	"unhinge_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for presigned media URLs under /api/s3
func RegisterS3Routes(r *mux.Router) {
	s3Router := r.PathPrefix("/api/s3").Subrouter()
	s3Router.HandleFunc("/upload-url", controllers.HandleGenerateUploadURL).Methods("POST")
	s3Router.HandleFunc("/read-url", controllers.HandleGenerateReadURL).Methods("GET")
}
