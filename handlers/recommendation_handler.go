package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"movie-recommendation-engine/models"
	"movie-recommendation-engine/services"
)

// RecommendationHandler handles the three recommendation endpoints. It
// reads one immutable catalog snapshot per request; the recommenders
// never see a half-updated catalog.
type RecommendationHandler struct {
	recommender *services.RecommenderService
	similarity  *services.SimilarityRecommender
	catalog     *services.CatalogCache
	posters     services.PosterService
	logger      services.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(
	recommender *services.RecommenderService,
	similarity *services.SimilarityRecommender,
	catalog *services.CatalogCache,
	posters services.PosterService,
	logger services.Logger,
) *RecommendationHandler {
	if logger == nil {
		logger = services.NewDefaultLogger()
	}
	return &RecommendationHandler{
		recommender: recommender,
		similarity:  similarity,
		catalog:     catalog,
		posters:     posters,
		logger:      logger,
	}
}

// RecommendFromMood handles POST /api/v1/recommendations/mood
func (h *RecommendationHandler) RecommendFromMood(w http.ResponseWriter, r *http.Request) {
	var req models.MoodRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Text == "" {
		writeErrorResponse(w, http.StatusBadRequest, "text is required", "")
		return
	}

	snapshot := h.catalog.Snapshot()
	if snapshot.IsEmpty() {
		writeErrorResponse(w, http.StatusServiceUnavailable, "catalog is not loaded", "")
		return
	}

	mood, genres, results := h.recommender.RecommendFromText(r.Context(), req.Text, snapshot)

	response := models.RecommendationResponse{
		RequestID:    requestID(r),
		Mode:         "mood",
		DetectedMood: string(mood),
		TargetGenres: genres,
		Results:      h.annotate(r, req.IncludePosters, results),
		Count:        len(results),
		GeneratedAt:  time.Now(),
	}

	writeJSONResponse(w, http.StatusOK, response)
}

// RecommendSimilar handles POST /api/v1/recommendations/similar
func (h *RecommendationHandler) RecommendSimilar(w http.ResponseWriter, r *http.Request) {
	var req models.SimilarRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Title == "" {
		writeErrorResponse(w, http.StatusBadRequest, "title is required", "")
		return
	}

	snapshot := h.catalog.Snapshot()
	if snapshot.IsEmpty() {
		writeErrorResponse(w, http.StatusServiceUnavailable, "catalog is not loaded", "")
		return
	}

	// A missing reference title yields an empty result, not an error.
	results := h.similarity.RecommendSimilar(req.Title, snapshot)

	response := models.RecommendationResponse{
		RequestID:   requestID(r),
		Mode:        "similar",
		Results:     h.annotate(r, req.IncludePosters, results),
		Count:       len(results),
		GeneratedAt: time.Now(),
	}

	writeJSONResponse(w, http.StatusOK, response)
}

// RecommendFromPreferences handles POST /api/v1/recommendations/preferences
func (h *RecommendationHandler) RecommendFromPreferences(w http.ResponseWriter, r *http.Request) {
	var req models.PreferenceRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.Genres) == 0 {
		writeErrorResponse(w, http.StatusBadRequest, "at least one genre is required", "")
		return
	}
	if req.YearRange == "" {
		writeErrorResponse(w, http.StatusBadRequest, "year_range is required", "")
		return
	}

	snapshot := h.catalog.Snapshot()
	if snapshot.IsEmpty() {
		writeErrorResponse(w, http.StatusServiceUnavailable, "catalog is not loaded", "")
		return
	}

	results, err := h.recommender.RecommendFromPreferences(services.PreferenceRequest{
		Mood:       models.QuestionnaireMood(req.Mood),
		Purpose:    models.Purpose(req.Purpose),
		Genres:     req.Genres,
		Categories: req.Categories,
		YearRange:  req.YearRange,
	}, snapshot)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	response := models.RecommendationResponse{
		RequestID:   requestID(r),
		Mode:        "preferences",
		Results:     h.annotate(r, req.IncludePosters, results),
		Count:       len(results),
		GeneratedAt: time.Now(),
	}

	writeJSONResponse(w, http.StatusOK, response)
}

// annotate converts scored movies to the wire form, with poster URLs
// when the client asked for them.
func (h *RecommendationHandler) annotate(r *http.Request, includePosters bool, movies []models.ScoredMovie) []models.RecommendedMovie {
	if includePosters {
		return services.AttachPosters(r.Context(), h.posters, movies)
	}
	return services.AttachPosters(r.Context(), nil, movies)
}
