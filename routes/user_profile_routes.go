package routes

import (
	"unhinge_server/controllers"
	"unhinge_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for profiles under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, profileRepository *services.ProfileRepository) {
	controller := controllers.NewUserProfileController(profileRepository)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("/{userId}", controller.HandleGetProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.HandlePutProfile).Methods("PUT")
}
