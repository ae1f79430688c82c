package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"unhinge_server/routes"
	"unhinge_server/services"
	"unhinge_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Repositories
	memeRepository := &services.MemeRepository{Dynamo: dynamoService}
	swipeRepository := &services.SwipeRepository{Dynamo: dynamoService}
	matchRepository := &services.MatchRepository{Dynamo: dynamoService}
	profileRepository := &services.ProfileRepository{Dynamo: dynamoService}

	// Socket.IO server for match notifications
	socketServer := socket.NewSocketServer()
	go socketServer.Serve()
	defer socketServer.Close()

	// Services
	exclusionService := &services.ExclusionService{
		Memes:   memeRepository,
		Swipes:  swipeRepository,
		Matches: matchRepository,
	}
	matchService := &services.MatchService{
		Swipes:   swipeRepository,
		Matches:  matchRepository,
		Profiles: profileRepository,
		Notifier: &socket.MatchBroadcaster{Server: socketServer},
	}
	feedService := services.NewFeedService(memeRepository, exclusionService)
	swipeService := &services.SwipeService{
		Swipes:  swipeRepository,
		Memes:   memeRepository,
		Matcher: matchService,
	}
	enrichmentService := &services.EnrichmentService{
		Profiles: profileRepository,
		Feed:     feedService,
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to UnHinge")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterFeedRoutes(r, feedService, enrichmentService)
	routes.RegisterSwipeRoutes(r, swipeService, memeRepository, feedService, enrichmentService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterMemeRoutes(r, memeRepository)
	routes.RegisterUserProfileRoutes(r, profileRepository)
	routes.RegisterS3Routes(r)
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
