package models

import "strings"

// MovieRecord represents a single movie in the catalog.
// Year and Rating are pointers because the source data may carry
// unparsable values; a nil field means the value is missing.
type MovieRecord struct {
	Title       string   `json:"title"`
	Year        *int     `json:"year"`
	Genre       string   `json:"genre"`
	Description string   `json:"description"`
	Rating      *float64 `json:"rating,omitempty"`
}

// HasYear reports whether the record carries a parsed year.
func (m *MovieRecord) HasYear() bool {
	return m.Year != nil
}

// HasRating reports whether the record carries a parsed rating.
func (m *MovieRecord) HasRating() bool {
	return m.Rating != nil
}

// RatingOrZero returns the rating, or 0 when it is missing.
func (m *MovieRecord) RatingOrZero() float64 {
	if m.Rating == nil {
		return 0
	}
	return *m.Rating
}

// GenreContains reports whether the genre field contains the given
// genre name as a case-insensitive substring. The genre field is
// free-form text, so this is deliberately substring containment,
// not set membership.
func (m *MovieRecord) GenreContains(genre string) bool {
	return strings.Contains(strings.ToLower(m.Genre), strings.ToLower(genre))
}

// DescriptionContains reports whether the description contains the
// given keyword as a case-insensitive substring.
func (m *MovieRecord) DescriptionContains(keyword string) bool {
	return strings.Contains(strings.ToLower(m.Description), strings.ToLower(keyword))
}

// ScoredMovie is a MovieRecord annotated with the transient scoring
// fields a recommender computed for it. Scores are never written back
// into the catalog.
type ScoredMovie struct {
	MovieRecord
	Score           float64 `json:"score,omitempty"`
	GenreMatch      int     `json:"genre_match,omitempty"`
	SimilarityScore float64 `json:"similarity_score,omitempty"`
	CombinedScore   float64 `json:"combined_score,omitempty"`
}

// Catalog is the cleaned, deduplicated, ordered collection of movie
// records. It is loaded once and treated as read-only: recommenders
// receive it by value and compute into their own copies.
type Catalog struct {
	Movies []MovieRecord `json:"movies"`
}

// NewCatalog creates a catalog from an ordered slice of records.
func NewCatalog(movies []MovieRecord) Catalog {
	return Catalog{Movies: movies}
}

// EmptyCatalog returns the uniform not-ready catalog value. Callers
// must treat an empty catalog as the degraded state, never nil.
func EmptyCatalog() Catalog {
	return Catalog{Movies: []MovieRecord{}}
}

// Len returns the number of movies in the catalog.
func (c Catalog) Len() int {
	return len(c.Movies)
}

// IsEmpty reports whether the catalog has no movies.
func (c Catalog) IsEmpty() bool {
	return len(c.Movies) == 0
}

// Find returns the record with the given exact title and its index,
// or ok=false when the title is not in the catalog.
func (c Catalog) Find(title string) (MovieRecord, int, bool) {
	for i, m := range c.Movies {
		if m.Title == title {
			return m, i, true
		}
	}
	return MovieRecord{}, -1, false
}

// Titles returns the catalog titles in source order.
func (c Catalog) Titles() []string {
	titles := make([]string, len(c.Movies))
	for i, m := range c.Movies {
		titles[i] = m.Title
	}
	return titles
}

// IntPtr returns a pointer to the given int. Helper for building records.
func IntPtr(v int) *int {
	return &v
}

// Float64Ptr returns a pointer to the given float64. Helper for building records.
func Float64Ptr(v float64) *float64 {
	return &v
}
