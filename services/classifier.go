package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"movie-recommendation-engine/config"
	"movie-recommendation-engine/errors"
	"movie-recommendation-engine/models"
)

// MoodClassifier is the external mood classification capability. It is
// an optional enhancement of the mood resolver: implementations may fail
// or time out and the resolver degrades to its deterministic fallback.
type MoodClassifier interface {
	Classify(ctx context.Context, text string) (models.Mood, error)
}

// classifierPrompt instructs the model to answer with exactly one of the
// nine mood labels. The instruction is in Indonesian to match the user
// input vocabulary.
const classifierSystemPrompt = "Kamu adalah ahli analisis emosi yang selalu memberikan jawaban singkat satu kata."

const classifierPromptTemplate = `Analisis mood dari teks berikut ini. Pilih satu mood yang paling tepat:
bosan = jika terkait kebosanan, kejenuhan, rutinitas
sedih = jika terkait kesedihan, kekecewaan
senang = jika terkait kebahagiaan, keceriaan
semangat = jika terkait antusiasme, energi
takut = jika terkait ketakutan, kecemasan
penasaran = jika terkait rasa ingin tahu
marah = jika terkait kemarahan, kejengkelan
cinta = jika terkait perasaan romantis
tegang = jika terkait ketegangan, stress
Berikan jawaban dalam satu kata saja.
Teks: %s
Mood:`

// ClassifierClient implements MoodClassifier against an OpenAI-compatible
// chat completions endpoint.
type ClassifierClient struct {
	config     *config.ClassifierConfig
	httpClient *http.Client
	retryer    *errors.Retryer
}

// NewClassifierClient creates a new mood classifier client
func NewClassifierClient(cfg *config.ClassifierConfig) *ClassifierClient {
	return &ClassifierClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		retryer: errors.NewRetryer(errors.ClassifierRetryConfig()),
	}
}

// chatMessage is one message of a chat completions request
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest is the request body of the classifier call
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Stop        []string      `json:"stop,omitempty"`
}

// chatCompletionResponse is the subset of the response body the
// classifier reads
type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Classify implements MoodClassifier. It sends the free text with a
// fixed single-word instruction and maps the reply onto the closed mood
// set: an exact label wins, otherwise a reply containing a label as a
// substring resolves to that label.
func (c *ClassifierClient) Classify(ctx context.Context, text string) (models.Mood, error) {
	if text == "" {
		return "", errors.NewValidationError(
			errors.ErrCodeInvalidInput,
			"Text cannot be empty",
			nil,
		)
	}

	request := chatCompletionRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: classifierSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(classifierPromptTemplate, text)},
		},
		MaxTokens:   10,
		Temperature: 0.1,
		Stop:        []string{"\n", ".", ",", "!", "?"},
	}

	var response chatCompletionResponse
	err := c.retryer.Execute(ctx, func() error {
		return c.makeHTTPRequest(ctx, request, &response)
	})
	if err != nil {
		return "", errors.WrapError(err, errors.ErrTypeExternal,
			errors.ErrCodeClassifierFailed, "Mood classification request failed")
	}

	if response.Error != nil {
		return "", errors.NewExternalServiceError(
			errors.ErrCodeClassifierFailed,
			"Classifier API returned error: "+response.Error.Message,
			nil,
		)
	}

	if len(response.Choices) == 0 {
		return "", errors.NewExternalServiceError(
			errors.ErrCodeClassifierFailed,
			"Classifier API returned no choices",
			nil,
		)
	}

	reply := strings.ToLower(strings.TrimSpace(response.Choices[0].Message.Content))
	if mood := models.Mood(reply); mood.IsValid() {
		return mood, nil
	}
	// A verbose reply still counts when it contains a valid label.
	for _, mood := range models.AllMoods {
		if strings.Contains(reply, string(mood)) {
			return mood, nil
		}
	}

	return "", errors.NewExternalServiceError(
		errors.ErrCodeClassifierFailed,
		"Classifier reply is not a known mood: "+reply,
		nil,
	)
}

// makeHTTPRequest makes the actual HTTP request to the classifier API
func (c *ClassifierClient) makeHTTPRequest(ctx context.Context, request chatCompletionRequest, response *chatCompletionResponse) error {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return errors.NewInternalError(
			errors.ErrCodeSerializationError,
			"Failed to marshal classifier request",
			err,
		)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.Endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return errors.NewInternalError(
			errors.ErrCodeProcessingError,
			"Failed to create HTTP request",
			err,
		)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewNetworkError(
			errors.ErrCodeNetworkConnection,
			"Classifier API request failed",
			err,
		)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError(
			errors.ErrCodeNetworkConnection,
			"Failed to read classifier API response",
			err,
		)
	}

	if resp.StatusCode >= 500 {
		return errors.NewExternalServiceError(
			errors.ErrCodeClassifierFailed,
			"Classifier API server error",
			fmt.Errorf("HTTP %d: %s", resp.StatusCode, body),
		)
	}
	if resp.StatusCode >= 400 {
		return errors.NewValidationError(
			errors.ErrCodeClassifierFailed,
			"Classifier API rejected the request",
			fmt.Errorf("HTTP %d: %s", resp.StatusCode, body),
		)
	}

	if err := json.Unmarshal(body, response); err != nil {
		return errors.NewInternalError(
			errors.ErrCodeSerializationError,
			"Failed to unmarshal classifier API response",
			err,
		)
	}

	return nil
}
