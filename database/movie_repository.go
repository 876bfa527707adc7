package database

import (
	"context"
	"database/sql"
	"time"

	"movie-recommendation-engine/errors"
	"movie-recommendation-engine/models"
)

// loadTimeout bounds catalog loads issued without a caller context.
const loadTimeout = 10 * time.Second

// MovieRepository stores and loads the movie catalog in the movies
// table. Insertion order is preserved via the serial id so a catalog
// loaded from Postgres keeps the source order of the imported CSV.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// EnsureSchema creates the movies table if it does not exist.
func (r *MovieRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS movies (
			id          SERIAL PRIMARY KEY,
			title       TEXT NOT NULL UNIQUE,
			year        INTEGER,
			genre       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			rating      DOUBLE PRECISION
		)`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return errors.NewDatabaseError(
			errors.ErrCodeDatabaseQuery,
			"Failed to create movies table",
			err,
		)
	}
	return nil
}

// ImportCatalog upserts a cleaned catalog into the movies table and
// returns the number of rows written. Existing titles are updated in
// place, so re-importing the same CSV is idempotent.
func (r *MovieRepository) ImportCatalog(ctx context.Context, catalog models.Catalog) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.NewDatabaseError(
			errors.ErrCodeDatabaseConnection,
			"Failed to begin import transaction",
			err,
		)
	}
	defer tx.Rollback()

	const upsert = `
		INSERT INTO movies (title, year, genre, description, rating)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (title) DO UPDATE SET
			year = EXCLUDED.year,
			genre = EXCLUDED.genre,
			description = EXCLUDED.description,
			rating = EXCLUDED.rating`

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return 0, errors.NewDatabaseError(
			errors.ErrCodeDatabaseQuery,
			"Failed to prepare import statement",
			err,
		)
	}
	defer stmt.Close()

	imported := 0
	for _, movie := range catalog.Movies {
		if _, err := stmt.ExecContext(ctx,
			movie.Title,
			nullableInt(movie.Year),
			movie.Genre,
			movie.Description,
			nullableFloat(movie.Rating),
		); err != nil {
			return 0, errors.NewDatabaseError(
				errors.ErrCodeDatabaseQuery,
				"Failed to import movie: "+movie.Title,
				err,
			)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.NewDatabaseError(
			errors.ErrCodeDatabaseQuery,
			"Failed to commit import transaction",
			err,
		)
	}

	return imported, nil
}

// LoadCatalog reads the full catalog from the movies table in insertion
// order.
func (r *MovieRepository) LoadCatalog(ctx context.Context) (models.Catalog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT title, year, genre, description, rating FROM movies ORDER BY id`)
	if err != nil {
		return models.EmptyCatalog(), errors.NewDatabaseError(
			errors.ErrCodeDatabaseQuery,
			"Failed to query movies table",
			err,
		)
	}
	defer rows.Close()

	var movies []models.MovieRecord
	for rows.Next() {
		var (
			movie  models.MovieRecord
			year   sql.NullInt64
			rating sql.NullFloat64
		)
		if err := rows.Scan(&movie.Title, &year, &movie.Genre, &movie.Description, &rating); err != nil {
			return models.EmptyCatalog(), errors.NewDatabaseError(
				errors.ErrCodeDatabaseQuery,
				"Failed to scan movie row",
				err,
			)
		}
		if year.Valid {
			movie.Year = models.IntPtr(int(year.Int64))
		}
		if rating.Valid {
			movie.Rating = models.Float64Ptr(rating.Float64)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return models.EmptyCatalog(), errors.NewDatabaseError(
			errors.ErrCodeDatabaseQuery,
			"Failed to iterate movie rows",
			err,
		)
	}

	if len(movies) == 0 {
		return models.EmptyCatalog(), nil
	}
	return models.NewCatalog(movies), nil
}

// Load implements the catalog source contract over the movies table.
func (r *MovieRepository) Load() (models.Catalog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	return r.LoadCatalog(ctx)
}

// Name implements the catalog source contract.
func (r *MovieRepository) Name() string {
	return "postgres:movies"
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
