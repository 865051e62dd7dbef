package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nutritrack-backend/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(baseURL string) *OpenAIMealAnalyzer {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewOpenAIMealAnalyzer(config.AIConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	}, log)
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func TestAnalyzeMeal(t *testing.T) {
	verdictJSON := `{"isValid":true,"confidence":87,"detectedFoods":["chicken","rice"],"missingFoods":[],"feedback":"Looks right","nutritionalMatch":92,"estimatedCalories":540}`

	t.Run("parses a plain JSON verdict", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req chatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-4o-mini", req.Model)
			assert.Equal(t, 500, req.MaxTokens)
			assert.Equal(t, 0.7, req.Temperature)
			require.Len(t, req.Messages, 2)

			w.Write([]byte(completionBody(verdictJSON)))
		}))
		defer server.Close()

		verdict, err := newTestAnalyzer(server.URL).AnalyzeMeal(context.Background(), "lunch", []string{"chicken", "rice"}, "A plate of chicken and rice")
		require.NoError(t, err)
		assert.True(t, verdict.IsValid)
		assert.Equal(t, 87.0, verdict.Confidence)
		assert.Equal(t, []string{"chicken", "rice"}, verdict.DetectedFoods)
		assert.Equal(t, 540, verdict.EstimatedCalories)
	})

	t.Run("strips markdown fences around the verdict", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("```json\n" + verdictJSON + "\n```")))
		}))
		defer server.Close()

		verdict, err := newTestAnalyzer(server.URL).AnalyzeMeal(context.Background(), "lunch", []string{"chicken"}, "")
		require.NoError(t, err)
		assert.True(t, verdict.IsValid)
	})

	t.Run("non-2xx maps to unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newTestAnalyzer(server.URL).AnalyzeMeal(context.Background(), "lunch", nil, "")
		assert.ErrorIs(t, err, ErrAnalyzerUnavailable)
	})

	t.Run("non-JSON content maps to malformed verdict", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("I could not analyze this meal, sorry.")))
		}))
		defer server.Close()

		_, err := newTestAnalyzer(server.URL).AnalyzeMeal(context.Background(), "lunch", nil, "")
		assert.ErrorIs(t, err, ErrMalformedVerdict)
	})

	t.Run("empty choices maps to malformed verdict", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := newTestAnalyzer(server.URL).AnalyzeMeal(context.Background(), "lunch", nil, "")
		assert.ErrorIs(t, err, ErrMalformedVerdict)
	})

	t.Run("unreachable server maps to unavailable", func(t *testing.T) {
		_, err := newTestAnalyzer("http://127.0.0.1:1").AnalyzeMeal(context.Background(), "lunch", nil, "")
		assert.ErrorIs(t, err, ErrAnalyzerUnavailable)
	})
}

func TestStripJSONFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripJSONFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripJSONFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripJSONFences(`{"a":1}`))
}
