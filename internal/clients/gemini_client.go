package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrMissingAPIKey is returned when no credential is configured. Callers
// treat it like any other generation failure and fall back.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

const geminiModel = "gemini-2.0-flash"

// Turn is one prior conversation message. Role is "user" or "model".
type Turn struct {
	Role string
	Text string
}

type GenerateRequest struct {
	SystemPrompt string
	History      []Turn
	UserText     string
}

// Generator produces free text from a prompt. The Gemini HTTP client is the
// production implementation; tests substitute their own.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type geminiHTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *logrus.Logger
}

func NewGeminiHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *logrus.Logger) Generator {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	return &geminiHTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerateBody struct {
	SystemInstruction *geminiContent   `json:"system_instruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  geminiGenConfig  `json:"generationConfig"`
}

type geminiGenConfig struct {
	ResponseMimeType string `json:"response_mime_type"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *geminiHTTPClient) Generate(ctx context.Context, genReq GenerateRequest) (string, error) {
	if c.apiKey == "" {
		c.log.Warn("GeminiClient: API key missing, generation unavailable")
		return "", ErrMissingAPIKey
	}

	body := geminiGenerateBody{
		GenerationConfig: geminiGenConfig{ResponseMimeType: "application/json"},
	}
	if genReq.SystemPrompt != "" {
		body.SystemInstruction = &geminiContent{
			Role:  "system",
			Parts: []geminiPart{{Text: genReq.SystemPrompt}},
		}
	}
	for _, turn := range genReq.History {
		body.Contents = append(body.Contents, geminiContent{
			Role:  turn.Role,
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}
	body.Contents = append(body.Contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: genReq.UserText}},
	})

	jsonData, err := json.Marshal(body)
	if err != nil {
		c.log.Errorf("GeminiClient: Failed to marshal generate request: %v", err)
		return "", fmt.Errorf("failed to prepare generation request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, geminiModel, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		c.log.Errorf("GeminiClient: Failed to create generate request: %v", err)
		return "", fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("GeminiClient: Failed to execute generate request: %v", err)
		return "", fmt.Errorf("failed to communicate with generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.log.Errorf("GeminiClient: Generate request failed with status %d. Response body: %s", resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}

	var response geminiGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		c.log.Errorf("GeminiClient: Failed to decode generate response: %v", err)
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		c.log.Warn("GeminiClient: Generate response contained no candidates")
		return "", fmt.Errorf("generation service returned no candidates")
	}

	text := response.Candidates[0].Content.Parts[0].Text
	c.log.Debugf("GeminiClient: Received %d bytes of generated text", len(text))
	return text, nil
}
