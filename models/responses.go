package models

import "time"

// RecommendedMovie is a scored catalog entry as returned to API clients,
// optionally enriched with a poster URL by the presentation layer.
type RecommendedMovie struct {
	ScoredMovie
	PosterURL string `json:"poster_url,omitempty"`
}

// RecommendationResponse is the common envelope of the three
// recommendation endpoints. Results are ordered by the recommender's
// ranking; the order is part of the contract, not just membership.
type RecommendationResponse struct {
	RequestID    string             `json:"request_id"`
	Mode         string             `json:"mode"`
	DetectedMood string             `json:"detected_mood,omitempty"`
	TargetGenres []string           `json:"target_genres,omitempty"`
	Results      []RecommendedMovie `json:"results"`
	Count        int                `json:"count"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

// CatalogStatsResponse describes the currently loaded catalog snapshot.
type CatalogStatsResponse struct {
	Movies    int       `json:"movies"`
	Source    string    `json:"source"`
	LoadedAt  time.Time `json:"loaded_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// CatalogReloadResponse reports the outcome of a manual reload.
type CatalogReloadResponse struct {
	Movies     int       `json:"movies"`
	ReloadedAt time.Time `json:"reloaded_at"`
}

// CatalogImportResponse reports the outcome of a CSV-to-Postgres import.
type CatalogImportResponse struct {
	Imported   int       `json:"imported"`
	ImportedAt time.Time `json:"imported_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Catalog   int       `json:"catalog_movies"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError is the wire form of an error response.
type APIError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
