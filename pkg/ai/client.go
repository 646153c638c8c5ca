package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"physioblog/pkg/domain"
)

// DefaultBaseURL is the Groq OpenAI-compatible endpoint the service was built
// against. Any /v1 chat-completions compatible endpoint works.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// Client calls an OpenAI-compatible /chat/completions endpoint with bearer
// auth. It performs a single request per completion: no retries, no streaming.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// APIError is an upstream failure normalized to the provider's error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient builds a completion client. A blank API key is a configuration
// error and fails construction; baseURL defaults to DefaultBaseURL.
func NewClient(baseURL, apiKey string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("completion api key required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Usage reports the provider's token accounting for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the normalized success result of a chat completion call.
type Completion struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

// Complete sends the ordered message list to the backend model. Upstream
// rejections come back as *APIError carrying the provider message ("Unknown
// error" when the body carries none); transport faults are wrapped as-is.
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage, model string) (Completion, error) {
	if strings.TrimSpace(model) == "" {
		return Completion{}, fmt.Errorf("completion model required")
	}
	if len(messages) == 0 {
		return Completion{}, fmt.Errorf("at least one message required")
	}

	body, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return Completion{}, err
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Completion{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Completion{}, fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		message := strings.TrimSpace(errResp.Error.Message)
		if message == "" {
			message = "Unknown error"
		}
		return Completion{}, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return Completion{}, fmt.Errorf("chat completion decode: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return Completion{}, fmt.Errorf("empty response from completion api")
	}
	return Completion{
		Text:  chatResp.Choices[0].Message.Content,
		Model: chatResp.Model,
		Usage: chatResp.Usage,
	}, nil
}

// Wire types for the OpenAI-compatible API.

type chatRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
