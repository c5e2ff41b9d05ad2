package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gabrielAlencar33564/weather/internal/model"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

const geminiModel = "gemini-2.0-flash"

// GeminiClient calls the Generative Language REST API to obtain an
// insight for a reading window.  Any failure (transport error, bad
// status, empty candidates, unparseable JSON, unknown severity) is
// returned to the caller so it can fall back to the local rules.
type GeminiClient struct {
	APIKey  string
	BaseURL string // overridable for tests
	HTTP    *http.Client
}

// NewGeminiClient builds a client for the given key.  An empty key
// produces a disabled client.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		APIKey:  apiKey,
		BaseURL: defaultGeminiBaseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether an API key is configured.
func (g *GeminiClient) Enabled() bool { return g != nil && g.APIKey != "" }

// request/response shapes for the generateContent endpoint.  Only the
// fields this client reads or writes are declared.
type geminiPart struct {
	Text string `json:"text"`
}
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}
type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// windowPoint is one reading serialized into the prompt.
type windowPoint struct {
	Date     string  `json:"date"`
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
	Wind     float64 `json:"wind"`
	RainProb float64 `json:"rain_prob"`
}

func buildPrompt(window []model.WeatherReading) string {
	points := make([]windowPoint, 0, len(window))
	for _, r := range window {
		points = append(points, windowPoint{
			Date:     r.CreatedAt.UTC().Format(time.RFC3339),
			Temp:     r.Temperature,
			Humidity: r.Humidity,
			Wind:     r.WindSpeed,
			RainProb: r.RainProbability,
		})
	}
	data, _ := json.Marshal(points)
	return fmt.Sprintf(
		"Act as a senior meteorologist. Analyze this history: %s\n"+
			"Return ONLY a JSON object: { \"insight\": \"...\", \"severity\": \"low\"|\"medium\"|\"high\"|\"critical\" }",
		data)
}

// Analyze sends the reading window to the model and parses the
// constrained JSON answer.
func (g *GeminiClient) Analyze(ctx context.Context, window []model.WeatherReading) (Analysis, error) {
	if !g.Enabled() {
		return Analysis{}, errors.New("gemini: api key not configured")
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: buildPrompt(window)}},
		}},
	}
	reqBody.GenerationConfig.ResponseMimeType = "application/json"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Analysis{}, fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(g.BaseURL, "/"), geminiModel, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Analysis{}, fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return Analysis{}, fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Analysis{}, fmt.Errorf("gemini: unexpected status %s", resp.Status)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Analysis{}, fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return Analysis{}, errors.New("gemini: empty response")
	}

	text := cleanJSONString(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return Analysis{}, errors.New("gemini: empty candidate text")
	}

	var a Analysis
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return Analysis{}, fmt.Errorf("gemini: parse analysis: %w", err)
	}
	if a.Insight == "" || !ValidSeverity(a.Severity) {
		return Analysis{}, errors.New("gemini: analysis failed validation")
	}
	return a, nil
}

// cleanJSONString strips markdown code fences the model sometimes wraps
// around its JSON answer despite the response mime type.
func cleanJSONString(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
