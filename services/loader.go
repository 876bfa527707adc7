package services

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"movie-recommendation-engine/errors"
	"movie-recommendation-engine/models"
)

// requiredColumns is the header contract of the catalog file.
var requiredColumns = []string{"title", "year", "genre", "description", "rating"}

// CatalogLoader validates and cleans raw tabular movie data into a
// canonical in-memory catalog. Every failure path returns the empty
// catalog alongside the error: callers treat an empty catalog as the
// uniform not-ready signal and the process never crashes on bad data.
type CatalogLoader struct {
	logger Logger
}

// NewCatalogLoader creates a new catalog loader
func NewCatalogLoader(logger Logger) *CatalogLoader {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &CatalogLoader{logger: logger}
}

// LoadCatalog reads and normalizes the catalog CSV at the given path.
func (l *CatalogLoader) LoadCatalog(path string) (models.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		appErr := errors.NewNotFoundError(
			errors.ErrCodeCatalogFileNotFound,
			"Catalog file not found: "+path,
			err,
		)
		l.logger.Error("catalog file missing", appErr, String("path", path))
		return models.EmptyCatalog(), appErr
	}
	defer f.Close()

	catalog, err := l.Parse(f)
	if err != nil {
		return models.EmptyCatalog(), err
	}

	l.logger.Info("catalog loaded",
		String("path", path),
		Int("movies", catalog.Len()),
	)
	return catalog, nil
}

// Parse normalizes raw CSV catalog data from a reader. Quoted fields may
// contain embedded commas and newlines. Cleaning steps, in order: header
// validation, numeric coercion of year and rating (unparsable values
// become missing rather than failing the load), empty-string defaults for
// genre and description, dedup by title keeping the first occurrence in
// source order, and dropping rows without a title.
func (l *CatalogLoader) Parse(r io.Reader) (models.Catalog, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		appErr := errors.NewValidationError(
			errors.ErrCodeCatalogParseFailed,
			"Catalog data is empty or unreadable",
			err,
		)
		l.logger.Error("catalog parse failed", appErr)
		return models.EmptyCatalog(), appErr
	}

	columns, missing := indexColumns(header)
	if len(missing) > 0 {
		appErr := errors.NewValidationError(
			errors.ErrCodeCatalogMissingColumn,
			"Catalog is missing required columns: "+strings.Join(missing, ", "),
			nil,
		)
		l.logger.Error("catalog schema invalid", appErr, Any("missing_columns", missing))
		return models.EmptyCatalog(), appErr
	}

	var movies []models.MovieRecord
	seen := make(map[string]bool)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Ambiguous quoting or ragged rows make the whole file
			// untrustworthy, so the load degrades to empty instead of
			// keeping a partial catalog.
			appErr := errors.NewValidationError(
				errors.ErrCodeCatalogParseFailed,
				"Catalog data is malformed",
				err,
			)
			l.logger.Error("catalog parse failed", appErr)
			return models.EmptyCatalog(), appErr
		}

		movie := models.MovieRecord{
			Title:       strings.TrimSpace(record[columns["title"]]),
			Year:        parseYear(record[columns["year"]]),
			Genre:       strings.TrimSpace(record[columns["genre"]]),
			Description: strings.TrimSpace(record[columns["description"]]),
			Rating:      parseRating(record[columns["rating"]]),
		}

		// Rows without a title cannot be keyed and are dropped.
		if movie.Title == "" {
			continue
		}
		// First occurrence wins on duplicate titles.
		if seen[movie.Title] {
			continue
		}
		seen[movie.Title] = true

		movies = append(movies, movie)
	}

	if len(movies) == 0 {
		appErr := errors.NewValidationError(
			errors.ErrCodeCatalogEmpty,
			"Catalog is empty after cleaning",
			nil,
		)
		l.logger.Warn("catalog empty after cleaning")
		return models.EmptyCatalog(), appErr
	}

	return models.NewCatalog(movies), nil
}

// indexColumns maps required column names to their header positions and
// reports which required columns are absent. Column order is not part of
// the contract.
func indexColumns(header []string) (map[string]int, []string) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	columns := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, name := range requiredColumns {
		pos, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = pos
	}
	return columns, missing
}

// parseYear coerces a year field to an int, or missing when unparsable.
func parseYear(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	// Tolerate years exported as floats ("1994.0").
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		year := int(f)
		return &year
	}
	return nil
}

// parseRating coerces a rating field to a float, or missing when unparsable.
func parseRating(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return &f
	}
	return nil
}
