package services

import (
	"context"
	"strings"

	"movie-recommendation-engine/errors"
	"movie-recommendation-engine/models"
)

// MockMoodClassifier implements MoodClassifier for testing. Without a
// custom ClassifyFunc it guesses a mood from the text using the default
// keyword table, which is good enough for deterministic tests.
type MockMoodClassifier struct {
	ClassifyFunc func(ctx context.Context, text string) (models.Mood, error)

	// Calls records the texts passed to Classify, so tests can assert
	// whether the classifier path was taken at all.
	Calls []string
}

// NewMockMoodClassifier creates a new mock mood classifier
func NewMockMoodClassifier() *MockMoodClassifier {
	return &MockMoodClassifier{}
}

// Classify implements MoodClassifier
func (m *MockMoodClassifier) Classify(ctx context.Context, text string) (models.Mood, error) {
	m.Calls = append(m.Calls, text)

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text)
	}

	lower := strings.ToLower(text)
	table := DefaultMoodTable()
	for _, mood := range models.AllMoods {
		for _, keyword := range table.Keywords[mood] {
			if strings.Contains(lower, keyword) {
				return mood, nil
			}
		}
	}

	return "", errors.NewExternalServiceError(
		errors.ErrCodeClassifierFailed,
		"Mock classifier has no answer for: "+text,
		nil,
	)
}

// FailingMoodClassifier always fails, for exercising fallback paths.
type FailingMoodClassifier struct{}

// Classify implements MoodClassifier
func (f *FailingMoodClassifier) Classify(ctx context.Context, text string) (models.Mood, error) {
	return "", errors.NewExternalServiceError(
		errors.ErrCodeClassifierFailed,
		"Classifier unavailable",
		nil,
	)
}
