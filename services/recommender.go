package services

import (
	"context"
	"sort"
	"strings"

	"movie-recommendation-engine/errors"
	"movie-recommendation-engine/models"
)

// maxRecommendations caps the genre and preference result lists.
const maxRecommendations = 5

// maxSelections caps the explicit genre and category picks of the
// questionnaire; extra entries are ignored.
const maxSelections = 3

// RecommenderService scores and ranks catalog entries. All methods are
// pure over their inputs: the catalog is never mutated, each call
// computes into its own derived slice, and identical inputs yield
// identical ordered output.
type RecommenderService struct {
	table    *MoodTable
	resolver *MoodResolver
	logger   Logger
}

// NewRecommenderService creates a new recommender service
func NewRecommenderService(table *MoodTable, resolver *MoodResolver, logger Logger) *RecommenderService {
	if table == nil {
		table = DefaultMoodTable()
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &RecommenderService{
		table:    table,
		resolver: resolver,
		logger:   logger,
	}
}

// RecommendFromText resolves the mood of the free text, maps it to
// target genres and ranks the catalog against them. It returns the
// detected mood and genres so callers can surface them.
func (s *RecommenderService) RecommendFromText(ctx context.Context, text string, catalog models.Catalog) (models.Mood, []string, []models.ScoredMovie) {
	mood := s.resolver.ResolveMood(ctx, text)
	genres := s.table.GenresForMood(mood)

	s.logger.Info("recommending from text",
		String("mood", string(mood)),
		Any("genres", genres),
	)

	return mood, genres, s.RecommendByGenres(genres, catalog)
}

// RecommendByGenres ranks catalog entries against a target genre list.
// A movie is a candidate when any target genre appears in its genre
// field as a case-insensitive substring; candidates sort by genre match
// count, then rating. An empty genre list yields an empty result.
func (s *RecommenderService) RecommendByGenres(genres []string, catalog models.Catalog) []models.ScoredMovie {
	if len(genres) == 0 {
		return []models.ScoredMovie{}
	}

	var candidates []models.ScoredMovie
	for _, movie := range catalog.Movies {
		match := genreMatchCount(movie.Genre, genres)
		if match == 0 {
			continue
		}
		candidates = append(candidates, models.ScoredMovie{
			MovieRecord: movie,
			GenreMatch:  match,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].GenreMatch != candidates[j].GenreMatch {
			return candidates[i].GenreMatch > candidates[j].GenreMatch
		}
		return ratingLess(candidates[j].MovieRecord, candidates[i].MovieRecord)
	})

	return truncate(candidates, maxRecommendations)
}

// PreferenceRequest carries the questionnaire answers of one
// recommendation call.
type PreferenceRequest struct {
	Mood       models.QuestionnaireMood
	Purpose    models.Purpose
	Genres     []string
	Categories []string
	YearRange  string
}

// RecommendFromPreferences runs the additive multi-factor questionnaire
// scorer: a year-bucket filter followed by weighted substring matches of
// explicit genres (+2), description categories (+1), mood genres (+1.5)
// and purpose genres (+1.5). Unrecognized mood or purpose labels
// contribute nothing. An unknown year bucket is a validation error.
func (s *RecommenderService) RecommendFromPreferences(req PreferenceRequest, catalog models.Catalog) ([]models.ScoredMovie, error) {
	yearRange, ok := ResolveYearRange(req.YearRange)
	if !ok {
		return []models.ScoredMovie{}, errors.NewValidationError(
			errors.ErrCodeInvalidInput,
			"Unknown year range: "+req.YearRange,
			nil,
		)
	}

	genres := truncateStrings(req.Genres, maxSelections)
	categories := truncateStrings(req.Categories, maxSelections)
	moodGenres := GenresForQuestionnaireMood(req.Mood)
	purposeHints := GenresForPurpose(req.Purpose)

	var candidates []models.ScoredMovie
	for _, movie := range catalog.Movies {
		// Movies without a parsed year never pass the era filter.
		if movie.Year == nil || !yearRange.Contains(*movie.Year) {
			continue
		}

		score := 0.0
		for _, genre := range genres {
			if movie.GenreContains(genre) {
				score += 2
			}
		}
		for _, category := range categories {
			if movie.DescriptionContains(category) {
				score += 1
			}
		}
		for _, genre := range moodGenres {
			if movie.GenreContains(genre) {
				score += 1.5
			}
		}
		for _, genre := range purposeHints {
			if movie.GenreContains(genre) {
				score += 1.5
			}
		}

		candidates = append(candidates, models.ScoredMovie{
			MovieRecord: movie,
			Score:       score,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return ratingLess(candidates[j].MovieRecord, candidates[i].MovieRecord)
	})

	return truncate(candidates, maxRecommendations), nil
}

// genreMatchCount counts occurrences of the target genres inside the
// free-form genre field. Repeated substring occurrences count every
// time, so the count can exceed the number of target genres.
func genreMatchCount(genreField string, genres []string) int {
	lower := strings.ToLower(genreField)
	count := 0
	for _, genre := range genres {
		count += strings.Count(lower, strings.ToLower(genre))
	}
	return count
}

// ratingLess orders movies by rating ascending with missing ratings
// first, so that "greater" means present-and-higher.
func ratingLess(a, b models.MovieRecord) bool {
	switch {
	case a.Rating == nil && b.Rating == nil:
		return false
	case a.Rating == nil:
		return true
	case b.Rating == nil:
		return false
	default:
		return *a.Rating < *b.Rating
	}
}

func truncate(movies []models.ScoredMovie, limit int) []models.ScoredMovie {
	if movies == nil {
		return []models.ScoredMovie{}
	}
	if len(movies) > limit {
		return movies[:limit]
	}
	return movies
}

func truncateStrings(values []string, limit int) []string {
	if len(values) > limit {
		return values[:limit]
	}
	return values
}
