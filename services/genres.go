package services

import (
	"os"

	"gopkg.in/yaml.v2"

	"movie-recommendation-engine/errors"
	"movie-recommendation-engine/models"
)

// MoodTable carries the keyword and genre mappings of the free-text
// path. The defaults are compiled in; a YAML file can override
// individual moods without redefining the whole table.
type MoodTable struct {
	Keywords map[models.Mood][]string
	Genres   map[models.Mood][]string
}

// DefaultMoodTable returns the built-in free-text mood mappings.
func DefaultMoodTable() *MoodTable {
	return &MoodTable{
		Keywords: map[models.Mood][]string{
			models.MoodBosan:     {"bosan", "jenuh", "monoton", "capek", "rutinitas"},
			models.MoodSedih:     {"sedih", "galau", "kecewa", "murung", "patah hati"},
			models.MoodSenang:    {"senang", "bahagia", "gembira", "suka", "ceria"},
			models.MoodSemangat:  {"semangat", "antusias", "energik", "excited"},
			models.MoodTakut:     {"takut", "cemas", "khawatir", "ngeri"},
			models.MoodPenasaran: {"penasaran", "ingin tahu", "curious"},
			models.MoodMarah:     {"marah", "kesal", "jengkel", "emosi"},
			models.MoodCinta:     {"cinta", "sayang", "romantis", "love"},
			models.MoodTegang:    {"tegang", "stress", "tertekan", "pressure"},
		},
		Genres: map[models.Mood][]string{
			models.MoodSenang:    {"Comedy", "Adventure", "Animation"},
			models.MoodSedih:     {"Drama", "Romance"},
			models.MoodSemangat:  {"Action", "Adventure", "Sport"},
			models.MoodTakut:     {"Horror", "Thriller"},
			models.MoodPenasaran: {"Mystery", "Crime", "Thriller"},
			models.MoodMarah:     {"Action", "Crime", "Drama"},
			models.MoodBosan:     {"Adventure", "Fantasy", "Sci-Fi"},
			models.MoodCinta:     {"Romance", "Drama", "Comedy"},
			models.MoodTegang:    {"Thriller", "Mystery", "Crime"},
		},
	}
}

// moodTableFile is the YAML form of a mood table override.
type moodTableFile struct {
	Keywords map[string][]string `yaml:"keywords"`
	Genres   map[string][]string `yaml:"genres"`
}

// LoadMoodTable returns the default table with overrides from the given
// YAML file applied on top. Overrides for unknown mood labels are
// ignored. An empty path returns the defaults unchanged.
func LoadMoodTable(path string) (*MoodTable, error) {
	table := DefaultMoodTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return table, errors.NewInternalError(
			errors.ErrCodeConfigurationError,
			"Failed to read mood table file: "+path,
			err,
		)
	}

	var file moodTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return table, errors.NewInternalError(
			errors.ErrCodeConfigurationError,
			"Failed to parse mood table file: "+path,
			err,
		)
	}

	for label, keywords := range file.Keywords {
		mood := models.Mood(label)
		if mood.IsValid() && len(keywords) > 0 {
			table.Keywords[mood] = keywords
		}
	}
	for label, genres := range file.Genres {
		mood := models.Mood(label)
		if mood.IsValid() && len(genres) > 0 {
			table.Genres[mood] = genres
		}
	}

	return table, nil
}

// GenresForMood maps a free-text mood to its target genres. Unknown
// moods fall back to a broad default so the free-text path always has
// something to recommend against.
func (t *MoodTable) GenresForMood(mood models.Mood) []string {
	if genres, ok := t.Genres[mood]; ok {
		return genres
	}
	return []string{"Drama", "Action"}
}

// questionnaireMoodGenres maps the questionnaire mood vocabulary to
// genre hints. This table deliberately differs from the free-text one:
// the two vocabularies have different label sets and mappings and are
// never unified.
var questionnaireMoodGenres = map[models.QuestionnaireMood][]string{
	models.QMoodSenang:    {"Comedy", "Romance", "Adventure"},
	models.QMoodSedih:     {"Drama", "Romance"},
	models.QMoodBosan:     {"Action", "Adventure", "Sci-Fi"},
	models.QMoodSemangat:  {"Action", "Sport", "Adventure"},
	models.QMoodPenasaran: {"Mystery", "Thriller", "Crime"},
}

// purposeGenres maps who the user watches with to genre hints.
var purposeGenres = map[models.Purpose][]string{
	models.PurposeAlone:   {"Drama", "Thriller", "Mystery"},
	models.PurposeFamily:  {"Animation", "Adventure", "Family"},
	models.PurposePartner: {"Romance", "Comedy", "Drama"},
	models.PurposeFriends: {"Action", "Comedy", "Horror"},
}

// GenresForQuestionnaireMood maps a questionnaire mood label to genre
// hints. Unrecognized labels contribute nothing.
func GenresForQuestionnaireMood(mood models.QuestionnaireMood) []string {
	return questionnaireMoodGenres[mood]
}

// GenresForPurpose maps a purpose label to genre hints. Unrecognized
// labels contribute nothing.
func GenresForPurpose(purpose models.Purpose) []string {
	return purposeGenres[purpose]
}

// YearRange is an inclusive [Min, Max] year filter.
type YearRange struct {
	Min int
	Max int
}

// Contains reports whether the year falls inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

// yearRanges maps the four named era buckets of the questionnaire to
// inclusive year ranges.
var yearRanges = map[string]YearRange{
	"Film Terbaru (2020+)":                 {Min: 2020, Max: 2025},
	"Film 5-10 Tahun Terakhir (2015-2020)": {Min: 2015, Max: 2020},
	"Film Klasik (2000-2015)":              {Min: 2000, Max: 2015},
	"Film Lawas (Sebelum 2000)":            {Min: 1900, Max: 2000},
}

// ResolveYearRange maps a named era bucket to its year range.
func ResolveYearRange(key string) (YearRange, bool) {
	r, ok := yearRanges[key]
	return r, ok
}
