package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"nutritrack-backend/config"

	"github.com/sirupsen/logrus"
)

var (
	// ErrAnalyzerUnavailable wraps any non-2xx answer from the completion API.
	ErrAnalyzerUnavailable = errors.New("meal analyzer service unavailable")
	// ErrMalformedVerdict is returned when the model reply is not the
	// expected JSON object. No repair or retry is attempted.
	ErrMalformedVerdict = errors.New("malformed verdict from meal analyzer")
)

// MealVerdict is the structured result of one analysis call. Confidence and
// NutritionalMatch are on the 0-100 display scale; persistence converts them
// to ratios.
type MealVerdict struct {
	IsValid           bool     `json:"isValid"`
	Confidence        float64  `json:"confidence"`
	DetectedFoods     []string `json:"detectedFoods"`
	MissingFoods      []string `json:"missingFoods"`
	Feedback          string   `json:"feedback"`
	NutritionalMatch  float64  `json:"nutritionalMatch"`
	EstimatedCalories int      `json:"estimatedCalories"`
}

// MealAnalyzer is the single external-call abstraction for meal validation.
// Implementations may be real or stubbed; the contract stays the same.
type MealAnalyzer interface {
	AnalyzeMeal(ctx context.Context, mealType string, expectedFoods []string, imageDescription string) (*MealVerdict, error)
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenAIMealAnalyzer calls the chat completions API with a strict-JSON
// prompt and parses the verdict out of the first choice.
type OpenAIMealAnalyzer struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	log     *logrus.Logger
}

func NewOpenAIMealAnalyzer(cfg config.AIConfig, log *logrus.Logger) *OpenAIMealAnalyzer {
	return &OpenAIMealAnalyzer{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}
}

const analyzerSystemPrompt = `You are a nutrition expert validating meals against a prescribed plan. Compare the meal image description with the expected foods and answer with a single JSON object:
{
  "isValid": boolean,
  "confidence": number (0-100),
  "detectedFoods": string[],
  "missingFoods": string[],
  "feedback": string,
  "nutritionalMatch": number (0-100),
  "estimatedCalories": number
}`

func (a *OpenAIMealAnalyzer) AnalyzeMeal(ctx context.Context, mealType string, expectedFoods []string, imageDescription string) (*MealVerdict, error) {
	if imageDescription == "" {
		imageDescription = "Photo of a meal"
	}

	userPrompt := fmt.Sprintf("Meal: %s\nExpected foods: %s\nImage description: %s",
		mealType, strings.Join(expectedFoods, ", "), imageDescription)

	reqBody := chatCompletionRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: analyzerSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalyzerUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.log.Warnf("Completion API returned status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", ErrAnalyzerUnavailable, resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedVerdict, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrMalformedVerdict)
	}

	var verdict MealVerdict
	content := stripJSONFences(completion.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		a.log.Warnf("Failed to parse verdict content: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedVerdict, err)
	}

	return &verdict, nil
}

// stripJSONFences removes a markdown code fence the model sometimes wraps
// around its JSON answer.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
