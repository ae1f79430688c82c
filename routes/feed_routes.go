package routes

import (
	"unhinge_server/controllers"
	"unhinge_server/services"

	"github.com/gorilla/mux"
)

// RegisterFeedRoutes sets up routes for the swipe feed under /api/feed
func RegisterFeedRoutes(r *mux.Router, feedService *services.FeedService, enrichmentService *services.EnrichmentService) {
	controller := controllers.NewFeedController(feedService, enrichmentService)

	feedRouter := r.PathPrefix("/api/feed").Subrouter()
	feedRouter.HandleFunc("/refresh", controller.HandleRefresh).Methods("POST")
	feedRouter.HandleFunc("/current", controller.HandleCurrent).Methods("GET")
	feedRouter.HandleFunc("/advance", controller.HandleAdvance).Methods("POST")
	feedRouter.HandleFunc("/end", controller.HandleEnd).Methods("POST")
}
