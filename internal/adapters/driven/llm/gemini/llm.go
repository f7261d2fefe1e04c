// Package gemini provides a model provider adapter using the Google
// Gemini API.
package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
)

// Ensure ModelProvider implements the interface.
var _ driven.ModelProvider = (*ModelProvider)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 120 * time.Second

	defaultMaxOutputTokens = 20480
)

// Config holds configuration for the Gemini model provider.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://generativelanguage.googleapis.com).
	BaseURL string

	// Model is the model to use (default: gemini-2.5-flash).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// ModelProvider generates responses using the Gemini API.
type ModelProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// generateRequest is the Gemini generateContent request format.
type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

// content is one conversation turn in the Gemini wire format.
type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

// part carries the text of a content block.
type part struct {
	Text string `json:"text"`
}

// generationConfig holds generation parameters.
type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
}

// generateResponse is the Gemini generateContent response format,
// also used for each SSE chunk of streamGenerateContent.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewModelProvider creates a new Gemini model provider.
func NewModelProvider(cfg Config) (*ModelProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &ModelProvider{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Chat returns the complete response for the given history.
func (p *ModelProvider) Chat(ctx context.Context, system string, history []domain.Message, opts driven.ChatOptions) (string, error) {
	resp, err := p.send(ctx, "generateContent", system, history, opts, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if genResp.Error != nil {
		return "", fmt.Errorf("gemini error: %s", genResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(body))
	}

	return chunkText(genResp), nil
}

// ChatStream delivers the response via server-sent events. The
// accumulated text is returned even when the stream ends early.
func (p *ModelProvider) ChatStream(ctx context.Context, system string, history []domain.Message, opts driven.ChatOptions, onDelta func(delta string) error) (string, error) {
	resp, err := p.send(ctx, "streamGenerateContent", system, history, opts, true)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(body))
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			break
		}

		var chunk generateResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Skip keep-alives and partial frames.
			continue
		}
		if chunk.Error != nil {
			return full.String(), fmt.Errorf("gemini error: %s", chunk.Error.Message)
		}

		text := chunkText(chunk)
		if text == "" {
			continue
		}
		full.WriteString(text)
		if err := onDelta(text); err != nil {
			return full.String(), err
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("read stream: %w", err)
	}

	return full.String(), nil
}

// ModelName returns the name of the model being used.
func (p *ModelProvider) ModelName() string {
	return p.model
}

// Ping validates the provider is reachable with a minimal request.
func (p *ModelProvider) Ping(ctx context.Context) error {
	history := []domain.Message{{Role: domain.RoleUser, Content: "ping"}}
	_, err := p.Chat(ctx, "", history, driven.ChatOptions{MaxTokens: 1})
	return err
}

// Close releases resources.
func (p *ModelProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// send issues one generateContent-family request.
func (p *ModelProvider) send(ctx context.Context, method, system string, history []domain.Message, opts driven.ChatOptions, sse bool) (*http.Response, error) {
	contents := make([]content, len(history))
	for i, msg := range history {
		contents[i] = content{
			Role:  string(msg.Role),
			Parts: []part{{Text: msg.Content}},
		}
	}

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxOutputTokens
	}

	reqBody := generateRequest{
		Contents: contents,
		GenerationConfig: &generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: maxTokens,
			TopP:            0.95,
			TopK:            40,
		},
	}
	if system != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:%s?key=%s", p.baseURL, p.model, method, url.QueryEscape(p.apiKey))
	if sse {
		endpoint += "&alt=sse"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	return resp, nil
}

// chunkText concatenates the text parts of the first candidate.
func chunkText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
