package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-engine/models"
)

func TestResolveMoodKeywords(t *testing.T) {
	resolver := NewMoodResolver(nil, nil, testLogger())

	tests := []struct {
		name     string
		text     string
		expected models.Mood
	}{
		{"bosan keyword", "aku sangat bosan dengan rutinitas", models.MoodBosan},
		{"sedih keyword", "lagi galau banget hari ini", models.MoodSedih},
		{"senang keyword", "hari ini aku bahagia sekali", models.MoodSenang},
		{"semangat keyword", "lagi semangat nonton film", models.MoodSemangat},
		{"takut keyword", "aku ngeri sendirian di rumah", models.MoodTakut},
		{"penasaran keyword", "jadi penasaran sama ceritanya", models.MoodPenasaran},
		{"marah keyword", "kesal banget sama macet", models.MoodMarah},
		{"cinta keyword", "lagi romantis nih suasananya", models.MoodCinta},
		{"tegang keyword", "kerjaan bikin stress terus", models.MoodTegang},
		{"case insensitive", "BOSAN BANGET", models.MoodBosan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mood := resolver.ResolveMood(context.Background(), tt.text)
			assert.Equal(t, tt.expected, mood)
		})
	}
}

func TestResolveMoodKeywordPriority(t *testing.T) {
	resolver := NewMoodResolver(nil, nil, testLogger())

	// Both bosan and sedih keywords appear; bosan wins because moods are
	// scanned in a fixed order and the first hit ends the scan.
	mood := resolver.ResolveMood(context.Background(), "jenuh dan galau sekaligus")
	assert.Equal(t, models.MoodBosan, mood)
}

func TestResolveMoodSkipsClassifierOnKeywordHit(t *testing.T) {
	classifier := NewMockMoodClassifier()
	resolver := NewMoodResolver(nil, classifier, testLogger())

	mood := resolver.ResolveMood(context.Background(), "aku sangat bosan dengan rutinitas")

	assert.Equal(t, models.MoodBosan, mood)
	assert.Empty(t, classifier.Calls)
}

func TestResolveMoodUsesClassifier(t *testing.T) {
	classifier := &MockMoodClassifier{
		ClassifyFunc: func(ctx context.Context, text string) (models.Mood, error) {
			return models.MoodPenasaran, nil
		},
	}
	resolver := NewMoodResolver(nil, classifier, testLogger())

	mood := resolver.ResolveMood(context.Background(), "cerita film detektif itu bagaimana ya")

	assert.Equal(t, models.MoodPenasaran, mood)
	require.Len(t, classifier.Calls, 1)
}

func TestResolveMoodClassifierFailure(t *testing.T) {
	t.Run("fallback keyword after failure", func(t *testing.T) {
		// The primary table is narrowed so "capek" is only reachable via
		// the post-failure fallback pass.
		table := DefaultMoodTable()
		table.Keywords[models.MoodBosan] = []string{"bosan"}
		resolver := NewMoodResolver(table, &FailingMoodClassifier{}, testLogger())

		mood := resolver.ResolveMood(context.Background(), "badan capek")
		assert.Equal(t, models.MoodBosan, mood)
	})

	t.Run("default mood when nothing matches", func(t *testing.T) {
		resolver := NewMoodResolver(nil, &FailingMoodClassifier{}, testLogger())

		mood := resolver.ResolveMood(context.Background(), "mau nonton film apa ya malam ini")
		assert.Equal(t, models.MoodBosan, mood)
	})
}

func TestResolveMoodWithoutClassifier(t *testing.T) {
	resolver := NewMoodResolver(nil, nil, testLogger())

	mood := resolver.ResolveMood(context.Background(), "tidak ada kata kunci di sini")
	assert.Equal(t, models.MoodBosan, mood)
}

func TestResolveMoodIdempotent(t *testing.T) {
	resolver := NewMoodResolver(nil, nil, testLogger())

	first := resolver.ResolveMood(context.Background(), "lagi galau banget")
	second := resolver.ResolveMood(context.Background(), "lagi galau banget")
	assert.Equal(t, first, second)
}
