package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/quizforge/quizforge-go/internal/model"
)

const (
	defaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"
	groqModel      = "llama-3.3-70b-versatile"
)

// ErrAPIKeyMissing is returned when generation is requested but no Groq API
// key was configured.  Surfaces as a 500, matching the contract.
var ErrAPIKeyMissing = errors.New("GROQ_API_KEY is not configured")

// RateLimitError passes an upstream 429 through to the caller together with
// the retry hint from the Retry-After header.
type RateLimitError struct {
	RetryAfter int // seconds
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit reached, retry after %d seconds", e.RetryAfter)
}

// AIGenerator proxies question generation to the Groq completion API.  It
// makes a single attempt per request with no internal retry; the caller is
// expected to retry on 429/500.  The base URL is injectable for tests.
type AIGenerator struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewAIGenerator builds a generator.  An empty apiURL selects the real Groq
// endpoint.
func NewAIGenerator(apiKey, apiURL string) *AIGenerator {
	if apiURL == "" {
		apiURL = defaultGroqURL
	}
	return &AIGenerator{apiKey: apiKey, apiURL: apiURL, client: http.DefaultClient}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateQuestions asks the model for count questions about theme and
// parses the reply into validated question objects.
func (g *AIGenerator) GenerateQuestions(ctx context.Context, theme string, count int) ([]model.GeneratedQuestion, error) {
	if g.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	body, err := json.Marshal(chatRequest{
		Model:       groqModel,
		Messages:    []chatMessage{{Role: "user", Content: buildPrompt(theme, count)}},
		Temperature: 0.7,
		MaxTokens:   4096,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := 60
		if v := resp.Header.Get("Retry-After"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				retryAfter = n
			}
		}
		return nil, &RateLimitError{RetryAfter: retryAfter}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.Choices) == 0 || payload.Choices[0].Message.Content == "" {
		return nil, errors.New("groq returned an empty completion")
	}

	return parseGeneratedQuestions(payload.Choices[0].Message.Content)
}

// buildPrompt instructs the model to reply with bare JSON in the exact
// shape parseGeneratedQuestions expects.
func buildPrompt(theme string, count int) string {
	return fmt.Sprintf(`You are an expert at writing educational quizzes. Generate exactly %d multiple-choice questions about the following theme: "%s".

For each question:
- Write a clear and precise question
- Provide exactly 4 possible answers
- Exactly one answer must be correct
- Wrong answers must be plausible but clearly wrong

IMPORTANT: Reply ONLY with valid JSON, with no text before or after. The format must be exactly:

{
  "questions": [
    {
      "text": "The question here?",
      "answers": [
        { "text": "Answer A", "isCorrect": false },
        { "text": "Answer B", "isCorrect": true },
        { "text": "Answer C", "isCorrect": false },
        { "text": "Answer D", "isCorrect": false }
      ]
    }
  ]
}

Now generate %d questions about "%s":`, count, theme, count, theme)
}

// parseGeneratedQuestions cleans up the completion text and validates the
// question list.  Models love wrapping JSON in markdown fences, so those
// are stripped first.  A question that somehow arrives without any correct
// answer gets its first answer promoted rather than failing the request.
func parseGeneratedQuestions(text string) ([]model.GeneratedQuestion, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed struct {
		Questions []model.GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("could not parse model output: %w", err)
	}
	if parsed.Questions == nil {
		return nil, errors.New("model output has no questions array")
	}

	for i := range parsed.Questions {
		q := &parsed.Questions[i]
		if q.Text == "" || len(q.Answers) == 0 {
			return nil, errors.New("model output contains a malformed question")
		}
		hasCorrect := false
		for _, a := range q.Answers {
			if a.IsCorrect {
				hasCorrect = true
				break
			}
		}
		if !hasCorrect {
			q.Answers[0].IsCorrect = true
		}
	}
	return parsed.Questions, nil
}
