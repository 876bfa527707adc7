package services

import (
	"context"
	"strings"

	"movie-recommendation-engine/models"
)

// defaultMood is produced whenever neither keywords nor the classifier
// can place the text. The free-text path must always yield a mood.
const defaultMood = models.MoodBosan

// fallbackKeywords are rechecked after a classifier failure before
// settling on the default mood.
var fallbackKeywords = []string{"capek", "rutinitas"}

// MoodResolver maps free user text to one of the nine mood labels. The
// keyword table is the fast, deterministic path; the classifier is an
// optional enhancement consulted only when no keyword hits, and its
// failures are fully absorbed. The resolver never returns an error.
type MoodResolver struct {
	table      *MoodTable
	classifier MoodClassifier
	logger     Logger
}

// NewMoodResolver creates a new mood resolver. The classifier may be nil,
// in which case resolution uses keywords and the fixed default only.
func NewMoodResolver(table *MoodTable, classifier MoodClassifier, logger Logger) *MoodResolver {
	if table == nil {
		table = DefaultMoodTable()
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &MoodResolver{
		table:      table,
		classifier: classifier,
		logger:     logger,
	}
}

// ResolveMood resolves free text to a mood label. Moods are scanned in
// declaration order and the first keyword hit wins: ties between moods
// are broken by mood order, never by keyword specificity.
func (r *MoodResolver) ResolveMood(ctx context.Context, text string) models.Mood {
	lower := strings.ToLower(text)

	for _, mood := range models.AllMoods {
		for _, keyword := range r.table.Keywords[mood] {
			if strings.Contains(lower, keyword) {
				r.logger.Info("mood detected",
					String("mood", string(mood)),
					String("source", "keyword"),
					String("keyword", keyword),
				)
				return mood
			}
		}
	}

	if r.classifier != nil {
		mood, err := r.classifier.Classify(ctx, text)
		if err == nil && mood.IsValid() {
			r.logger.Info("mood detected",
				String("mood", string(mood)),
				String("source", "classifier"),
			)
			return mood
		}
		if err != nil {
			r.logger.Warn("mood classifier failed, falling back",
				String("error", err.Error()),
			)
		}
	}

	for _, keyword := range fallbackKeywords {
		if strings.Contains(lower, keyword) {
			r.logger.Info("mood detected",
				String("mood", string(defaultMood)),
				String("source", "fallback_keyword"),
				String("keyword", keyword),
			)
			return defaultMood
		}
	}

	r.logger.Info("mood detected",
		String("mood", string(defaultMood)),
		String("source", "default"),
	)
	return defaultMood
}
