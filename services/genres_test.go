package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-engine/models"
)

func TestGenresForMood(t *testing.T) {
	table := DefaultMoodTable()

	tests := []struct {
		mood     models.Mood
		expected []string
	}{
		{models.MoodSenang, []string{"Comedy", "Adventure", "Animation"}},
		{models.MoodSedih, []string{"Drama", "Romance"}},
		{models.MoodBosan, []string{"Adventure", "Fantasy", "Sci-Fi"}},
		{models.MoodTegang, []string{"Thriller", "Mystery", "Crime"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mood), func(t *testing.T) {
			assert.Equal(t, tt.expected, table.GenresForMood(tt.mood))
		})
	}

	t.Run("unknown mood falls back to broad default", func(t *testing.T) {
		assert.Equal(t, []string{"Drama", "Action"}, table.GenresForMood(models.Mood("unknown")))
	})
}

func TestQuestionnaireVocabulariesAreSeparate(t *testing.T) {
	table := DefaultMoodTable()

	// "senang" and "Senang" belong to different vocabularies and map to
	// different genre lists.
	freeText := table.GenresForMood(models.MoodSenang)
	questionnaire := GenresForQuestionnaireMood(models.QMoodSenang)

	assert.Equal(t, []string{"Comedy", "Adventure", "Animation"}, freeText)
	assert.Equal(t, []string{"Comedy", "Romance", "Adventure"}, questionnaire)
	assert.NotEqual(t, freeText, questionnaire)
}

func TestGenresForQuestionnaireMood(t *testing.T) {
	assert.Equal(t, []string{"Action", "Adventure", "Sci-Fi"}, GenresForQuestionnaireMood(models.QMoodBosan))
	assert.Equal(t, []string{"Mystery", "Thriller", "Crime"}, GenresForQuestionnaireMood(models.QMoodPenasaran))
	assert.Nil(t, GenresForQuestionnaireMood(models.QuestionnaireMood("tidak dikenal")))
}

func TestGenresForPurpose(t *testing.T) {
	assert.Equal(t, []string{"Animation", "Adventure", "Family"}, GenresForPurpose(models.PurposeFamily))
	assert.Equal(t, []string{"Romance", "Comedy", "Drama"}, GenresForPurpose(models.PurposePartner))
	assert.Nil(t, GenresForPurpose(models.Purpose("tidak dikenal")))
}

func TestResolveYearRange(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		year     int
		contains bool
	}{
		{"terbaru includes 2020", "Film Terbaru (2020+)", 2020, true},
		{"terbaru excludes 2019", "Film Terbaru (2020+)", 2019, false},
		{"klasik includes 2010", "Film Klasik (2000-2015)", 2010, true},
		{"klasik includes boundary 2015", "Film Klasik (2000-2015)", 2015, true},
		{"klasik excludes 2018", "Film Klasik (2000-2015)", 2018, false},
		{"lawas includes 1985", "Film Lawas (Sebelum 2000)", 1985, true},
		{"lawas includes boundary 2000", "Film Lawas (Sebelum 2000)", 2000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := ResolveYearRange(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.contains, r.Contains(tt.year))
		})
	}

	t.Run("unknown bucket", func(t *testing.T) {
		_, ok := ResolveYearRange("Film Bulan Depan")
		assert.False(t, ok)
	})
}

func TestLoadMoodTable(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		table, err := LoadMoodTable("")
		require.NoError(t, err)
		assert.Equal(t, DefaultMoodTable().Genres, table.Genres)
	})

	t.Run("override replaces single mood", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "moods.yaml")
		data := "keywords:\n  bosan:\n    - bete\ngenres:\n  bosan:\n    - Documentary\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		table, err := LoadMoodTable(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"bete"}, table.Keywords[models.MoodBosan])
		assert.Equal(t, []string{"Documentary"}, table.Genres[models.MoodBosan])
		// Untouched moods keep their defaults.
		assert.Equal(t, []string{"Drama", "Romance"}, table.Genres[models.MoodSedih])
	})

	t.Run("unknown mood labels are ignored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "moods.yaml")
		data := "genres:\n  melankolis:\n    - Drama\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		table, err := LoadMoodTable(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultMoodTable().Genres, table.Genres)
	})

	t.Run("missing file returns defaults with error", func(t *testing.T) {
		table, err := LoadMoodTable("testdata/absent.yaml")
		require.Error(t, err)
		require.NotNil(t, table)
		assert.Equal(t, DefaultMoodTable().Genres, table.Genres)
	})

	t.Run("invalid yaml returns defaults with error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "moods.yaml")
		require.NoError(t, os.WriteFile(path, []byte("genres: [broken"), 0o644))

		table, err := LoadMoodTable(path)
		require.Error(t, err)
		require.NotNil(t, table)
		assert.Equal(t, DefaultMoodTable().Genres, table.Genres)
	})
}
