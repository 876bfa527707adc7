package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"movie-recommendation-engine/database"
	"movie-recommendation-engine/models"
	"movie-recommendation-engine/services"
)

// CatalogHandler exposes catalog lifecycle operations: stats, manual
// reload and CSV-to-Postgres import.
type CatalogHandler struct {
	catalog     *services.CatalogCache
	loader      *services.CatalogLoader
	repository  *database.MovieRepository
	defaultPath string
	logger      services.Logger
}

// NewCatalogHandler creates a new catalog handler. The repository may be
// nil when the service runs without Postgres; import requests then fail
// with 503.
func NewCatalogHandler(
	catalog *services.CatalogCache,
	loader *services.CatalogLoader,
	repository *database.MovieRepository,
	defaultPath string,
	logger services.Logger,
) *CatalogHandler {
	if logger == nil {
		logger = services.NewDefaultLogger()
	}
	return &CatalogHandler{
		catalog:     catalog,
		loader:      loader,
		repository:  repository,
		defaultPath: defaultPath,
		logger:      logger,
	}
}

// GetStats handles GET /api/v1/catalog/stats
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.catalog.Stats()

	writeJSONResponse(w, http.StatusOK, models.CatalogStatsResponse{
		Movies:    stats.Movies,
		Source:    stats.Source,
		LoadedAt:  stats.LoadedAt,
		ExpiresAt: stats.ExpiresAt,
	})
}

// GetTitles handles GET /api/v1/catalog/titles. Clients use the list to
// populate the reference-title picker of the similarity mode.
func (h *CatalogHandler) GetTitles(w http.ResponseWriter, r *http.Request) {
	snapshot := h.catalog.Snapshot()

	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"titles": snapshot.Titles(),
		"count":  snapshot.Len(),
	})
}

// Reload handles POST /api/v1/catalog/reload
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalog.Reload()
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, models.CatalogReloadResponse{
		Movies:     catalog.Len(),
		ReloadedAt: time.Now(),
	})
}

// Import handles POST /api/v1/catalog/import: it cleans the CSV file and
// upserts the result into the Postgres catalog store.
func (h *CatalogHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h.repository == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "catalog store is not configured", "")
		return
	}

	var req models.CatalogImportRequest
	if r.Body != nil {
		// The body is optional; an empty or absent body imports the
		// configured catalog path.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	path := req.Path
	if path == "" {
		path = h.defaultPath
	}

	catalog, err := h.loader.LoadCatalog(path)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	if err := h.repository.EnsureSchema(r.Context()); err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	imported, err := h.repository.ImportCatalog(r.Context(), catalog)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	h.logger.Info("catalog imported",
		services.String("path", path),
		services.Int("imported", imported),
	)

	writeJSONResponse(w, http.StatusOK, models.CatalogImportResponse{
		Imported:   imported,
		ImportedAt: time.Now(),
	})
}
