package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-engine/config"
	"movie-recommendation-engine/errors"
	"movie-recommendation-engine/models"
)

func classifierTestConfig(endpoint string) *config.ClassifierConfig {
	return &config.ClassifierConfig{
		APIKey:   "test-key",
		Endpoint: endpoint,
		Model:    "test-model",
		Timeout:  5 * time.Second,
	}
}

func chatReply(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
}

func TestClassifierClassify(t *testing.T) {
	t.Run("exact label reply", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req["model"])

			json.NewEncoder(w).Encode(chatReply("sedih"))
		}))
		defer server.Close()

		client := NewClassifierClient(classifierTestConfig(server.URL))
		mood, err := client.Classify(context.Background(), "aku kecewa sekali")

		require.NoError(t, err)
		assert.Equal(t, models.MoodSedih, mood)
	})

	t.Run("label casing and padding are tolerated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(chatReply("  Senang "))
		}))
		defer server.Close()

		client := NewClassifierClient(classifierTestConfig(server.URL))
		mood, err := client.Classify(context.Background(), "hati berbunga")

		require.NoError(t, err)
		assert.Equal(t, models.MoodSenang, mood)
	})

	t.Run("verbose reply containing a label", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(chatReply("mood yang paling tepat adalah penasaran"))
		}))
		defer server.Close()

		client := NewClassifierClient(classifierTestConfig(server.URL))
		mood, err := client.Classify(context.Background(), "seperti apa ya endingnya")

		require.NoError(t, err)
		assert.Equal(t, models.MoodPenasaran, mood)
	})

	t.Run("reply without a label is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(chatReply("saya tidak yakin"))
		}))
		defer server.Close()

		client := NewClassifierClient(classifierTestConfig(server.URL))
		_, err := client.Classify(context.Background(), "teks ambigu")

		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeClassifierFailed, appErr.Code)
	})

	t.Run("api error body is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{"message": "model overloaded"},
			})
		}))
		defer server.Close()

		client := NewClassifierClient(classifierTestConfig(server.URL))
		_, err := client.Classify(context.Background(), "teks apapun")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "model overloaded")
	})

	t.Run("empty text is rejected without a request", func(t *testing.T) {
		client := NewClassifierClient(classifierTestConfig("http://localhost:0"))
		_, err := client.Classify(context.Background(), "")

		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrTypeValidation, appErr.Type)
	})

	t.Run("server errors are retried", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(chatReply("marah"))
		}))
		defer server.Close()

		client := NewClassifierClient(classifierTestConfig(server.URL))
		mood, err := client.Classify(context.Background(), "kesal sekali rasanya")

		require.NoError(t, err)
		assert.Equal(t, models.MoodMarah, mood)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClassifierClient(classifierTestConfig(server.URL))
		_, err := client.Classify(context.Background(), "teks apapun")

		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("cancelled context aborts retries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := NewClassifierClient(classifierTestConfig(server.URL))
		_, err := client.Classify(ctx, "teks apapun")
		require.Error(t, err)
	})
}
