package routes

import (
	"unhinge_server/controllers"
	"unhinge_server/services"

	"github.com/gorilla/mux"
)

// RegisterSwipeRoutes sets up routes for swipe recording under /api/swipes
func RegisterSwipeRoutes(r *mux.Router, swipeService *services.SwipeService, memeRepository *services.MemeRepository, feedService *services.FeedService, enrichmentService *services.EnrichmentService) {
	controller := controllers.NewSwipeController(swipeService, memeRepository, feedService, enrichmentService)

	swipeRouter := r.PathPrefix("/api/swipes").Subrouter()
	swipeRouter.HandleFunc("", controller.HandleSwipe).Methods("POST")
}
