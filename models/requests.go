package models

// MoodRecommendationRequest is the body of POST /recommendations/mood.
type MoodRecommendationRequest struct {
	Text           string `json:"text"`
	IncludePosters bool   `json:"include_posters,omitempty"`
}

// SimilarRecommendationRequest is the body of POST /recommendations/similar.
type SimilarRecommendationRequest struct {
	Title          string `json:"title"`
	IncludePosters bool   `json:"include_posters,omitempty"`
}

// PreferenceRecommendationRequest is the body of POST /recommendations/preferences.
// Genres and Categories carry at most three entries each; extra entries
// are ignored rather than rejected.
type PreferenceRecommendationRequest struct {
	Mood           string   `json:"mood"`
	Purpose        string   `json:"purpose"`
	Genres         []string `json:"genres"`
	Categories     []string `json:"categories,omitempty"`
	YearRange      string   `json:"year_range"`
	IncludePosters bool     `json:"include_posters,omitempty"`
}

// CatalogImportRequest is the body of POST /catalog/import, which copies
// the CSV catalog into the Postgres catalog store.
type CatalogImportRequest struct {
	Path string `json:"path,omitempty"`
}
