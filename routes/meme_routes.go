package routes

import (
	"unhinge_server/controllers"
	"unhinge_server/services"

	"github.com/gorilla/mux"
)

// RegisterMemeRoutes sets up routes for meme management under /api/memes
func RegisterMemeRoutes(r *mux.Router, memeRepository *services.MemeRepository) {
	controller := controllers.NewMemeController(memeRepository)

	memeRouter := r.PathPrefix("/api/memes").Subrouter()
	memeRouter.HandleFunc("", controller.HandleCreateMeme).Methods("POST")
	memeRouter.HandleFunc("/user/{userId}", controller.HandleListUserMemes).Methods("GET")
	memeRouter.HandleFunc("/{memeId}/view", controller.HandleTrackView).Methods("POST")
}
