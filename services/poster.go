package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"movie-recommendation-engine/config"
	"movie-recommendation-engine/models"
)

// PosterService resolves a movie title to a poster image URL. It is a
// presentation-layer collaborator: recommenders never call it, and every
// failure degrades to the placeholder URL.
type PosterService interface {
	Lookup(ctx context.Context, title string, year *int) string
}

// TMDBPosterClient implements PosterService against the TMDB search API.
type TMDBPosterClient struct {
	config     *config.PosterConfig
	httpClient *http.Client
	logger     Logger
}

// NewTMDBPosterClient creates a new TMDB poster client
func NewTMDBPosterClient(cfg *config.PosterConfig, logger Logger) *TMDBPosterClient {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &TMDBPosterClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// posterSearchResponse is the subset of the TMDB search response the
// client reads
type posterSearchResponse struct {
	Results []struct {
		PosterPath string `json:"poster_path"`
	} `json:"results"`
}

// Lookup implements PosterService
func (c *TMDBPosterClient) Lookup(ctx context.Context, title string, year *int) string {
	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	params.Set("query", title)
	if year != nil {
		params.Set("year", strconv.Itoa(*year))
	}

	searchURL := fmt.Sprintf("%s/search/movie?%s", c.config.Endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return c.config.PlaceholderURL
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("poster lookup failed",
			String("title", title),
			String("error", err.Error()),
		)
		return c.config.PlaceholderURL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("poster lookup rejected",
			String("title", title),
			Int("status", resp.StatusCode),
		)
		return c.config.PlaceholderURL
	}

	var search posterSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return c.config.PlaceholderURL
	}

	if len(search.Results) == 0 || search.Results[0].PosterPath == "" {
		return c.config.PlaceholderURL
	}

	return c.config.ImageBaseURL + search.Results[0].PosterPath
}

// NoopPosterService always returns the placeholder. Used when no poster
// API key is configured.
type NoopPosterService struct {
	PlaceholderURL string
}

// Lookup implements PosterService
func (n *NoopPosterService) Lookup(ctx context.Context, title string, year *int) string {
	return n.PlaceholderURL
}

// AttachPosters annotates recommendation results with poster URLs.
func AttachPosters(ctx context.Context, posters PosterService, movies []models.ScoredMovie) []models.RecommendedMovie {
	results := make([]models.RecommendedMovie, len(movies))
	for i, movie := range movies {
		results[i] = models.RecommendedMovie{ScoredMovie: movie}
		if posters != nil {
			results[i].PosterURL = posters.Lookup(ctx, movie.Title, movie.Year)
		}
	}
	return results
}
