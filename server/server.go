package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"movie-recommendation-engine/config"
	"movie-recommendation-engine/database"
	"movie-recommendation-engine/handlers"
	"movie-recommendation-engine/models"
	"movie-recommendation-engine/services"
)

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	router     *mux.Router
	httpServer *http.Server
	logger     services.Logger
	catalog    *services.CatalogCache
	postgres   *database.PostgresService

	recommendationHandler *handlers.RecommendationHandler
	catalogHandler        *handlers.CatalogHandler
}

// NewServer creates a new server instance and wires all services.
func NewServer(cfg *config.Config) *Server {
	logger := services.NewStructuredLogger(services.ParseLogLevel(cfg.Logging.Level), os.Stdout)

	moodTable, err := services.LoadMoodTable(cfg.Catalog.MoodTablePath)
	if err != nil {
		// Override file problems are not fatal: the compiled-in
		// defaults are always available.
		logger.Warn("mood table override not applied", services.String("error", err.Error()))
	}

	var classifier services.MoodClassifier
	if cfg.Classifier.APIKey != "" {
		classifier = services.NewClassifierClient(&cfg.Classifier)
	} else {
		logger.Info("no classifier API key set, mood resolution uses keywords only")
	}

	resolver := services.NewMoodResolver(moodTable, classifier, logger)
	recommender := services.NewRecommenderService(moodTable, resolver, logger)
	similarity := services.NewSimilarityRecommender(logger)
	loader := services.NewCatalogLoader(logger)

	var postgres *database.PostgresService
	var repository *database.MovieRepository
	var source services.CatalogSource

	switch cfg.Catalog.Source {
	case "postgres":
		postgres, err = database.NewPostgresService(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to catalog database: %v", err)
		}
		repository = database.NewMovieRepository(postgres.DB())
		if err := repository.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to prepare catalog schema: %v", err)
		}
		source = repository
	default:
		source = services.NewCSVCatalogSource(loader, cfg.Catalog.Path)
	}

	catalog := services.NewCatalogCache(source, cfg.Catalog.ReloadTTL, logger)

	var posters services.PosterService
	if cfg.Poster.APIKey != "" {
		posters = services.NewTMDBPosterClient(&cfg.Poster, logger)
	} else {
		posters = &services.NoopPosterService{PlaceholderURL: cfg.Poster.PlaceholderURL}
	}

	router := mux.NewRouter()

	server := &Server{
		config:   cfg,
		router:   router,
		logger:   logger,
		catalog:  catalog,
		postgres: postgres,
		recommendationHandler: handlers.NewRecommendationHandler(
			recommender, similarity, catalog, posters, logger,
		),
		catalogHandler: handlers.NewCatalogHandler(
			catalog, loader, repository, cfg.Catalog.Path, logger,
		),
		httpServer: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}

	server.setupRoutes()
	server.setupMiddleware()

	return server
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", s.healthCheck).Methods("GET")

	// Recommendation routes
	api.HandleFunc("/recommendations/mood", s.recommendationHandler.RecommendFromMood).Methods("POST", "OPTIONS")
	api.HandleFunc("/recommendations/similar", s.recommendationHandler.RecommendSimilar).Methods("POST", "OPTIONS")
	api.HandleFunc("/recommendations/preferences", s.recommendationHandler.RecommendFromPreferences).Methods("POST", "OPTIONS")

	// Catalog routes
	api.HandleFunc("/catalog/stats", s.catalogHandler.GetStats).Methods("GET")
	api.HandleFunc("/catalog/titles", s.catalogHandler.GetTitles).Methods("GET")
	api.HandleFunc("/catalog/reload", s.catalogHandler.Reload).Methods("POST")
	api.HandleFunc("/catalog/import", s.catalogHandler.Import).Methods("POST")
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// CORS must be first to handle preflight requests
	s.router.Use(s.corsMiddleware)
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.contentTypeMiddleware)
}

// Start starts the HTTP server and blocks until shutdown
func (s *Server) Start() error {
	s.logger.Info("starting server", services.String("port", s.config.Server.Port))

	// Warm the catalog so the first request does not pay the load.
	if snapshot := s.catalog.Snapshot(); snapshot.IsEmpty() {
		s.logger.Warn("catalog is empty at startup, recommendations unavailable until reload")
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.logger.Info("shutting down server")
	return s.Shutdown()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.postgres != nil {
		defer s.postgres.Close()
	}

	return s.httpServer.Shutdown(ctx)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	snapshot := s.catalog.Snapshot()

	status := "healthy"
	statusCode := http.StatusOK
	if snapshot.IsEmpty() {
		// The service runs but cannot recommend anything.
		status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, models.HealthResponse{
		Status:    status,
		Catalog:   snapshot.Len(),
		Timestamp: time.Now(),
	})
}
