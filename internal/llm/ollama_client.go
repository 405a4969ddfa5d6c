package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/castrovroberto/prophet/internal/contextkeys"
)

// DefaultOllamaBaseURL is used when no base URL is configured.
const DefaultOllamaBaseURL = "http://localhost:11434"

// Sentinel errors for specific Ollama client issues.
var (
	ErrOllamaHostUnreachable = errors.New("ollama: host unreachable or not responding")
	ErrOllamaModelNotFound   = errors.New("ollama: model not found by server")
	ErrOllamaInvalidResponse = errors.New("ollama: invalid or unexpected response from server")
)

// OllamaClient implements the Client interface for a local Ollama server.
type OllamaClient struct {
	baseURL    string
	keepAlive  string
	httpClient *http.Client
}

// NewOllamaClient creates a new Ollama client. An empty baseURL targets
// the default local server.
func NewOllamaClient(baseURL, keepAlive string, httpClient *http.Client) *OllamaClient {
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OllamaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		keepAlive:  keepAlive,
		httpClient: httpClient,
	}
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaChatRequest is the body of /api/chat.
type ollamaChatRequest struct {
	Model     string          `json:"model"`
	Messages  []ollamaMessage `json:"messages"`
	Stream    bool            `json:"stream"`
	KeepAlive string          `json:"keep_alive,omitempty"`
	Options   *ollamaOptions  `json:"options,omitempty"`
}

// ollamaChatResponse is a full response, or one line of a streamed one.
type ollamaChatResponse struct {
	Model         string        `json:"model"`
	Message       ollamaMessage `json:"message"`
	Done          bool          `json:"done"`
	TotalDuration int64         `json:"total_duration,omitempty"`
	EvalCount     int           `json:"eval_count,omitempty"`
}

type ollamaErrorResponse struct {
	Error string `json:"error"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name       string    `json:"name"`
		ModifiedAt time.Time `json:"modified_at"`
		Size       int64     `json:"size"`
	} `json:"models"`
}

// Generate performs a non-streaming chat request.
func (oc *OllamaClient) Generate(ctx context.Context, req Request) (string, error) {
	log := contextkeys.LoggerFromContext(ctx)

	resp, err := oc.post(ctx, oc.buildRequest(req, false))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		log.Error("Failed to decode Ollama response", "error", err)
		return "", fmt.Errorf("%w: %v", ErrOllamaInvalidResponse, err)
	}

	log.Debug("Ollama request successful",
		"model", chatResp.Model,
		"eval_count", chatResp.EvalCount,
		"total_duration", time.Duration(chatResp.TotalDuration))
	return chatResp.Message.Content, nil
}

// Stream performs a streaming chat request. Ollama answers with one JSON
// object per line.
func (oc *OllamaClient) Stream(ctx context.Context, req Request, out chan<- string) error {
	defer close(out)
	log := contextkeys.LoggerFromContext(ctx)

	resp, err := oc.post(ctx, oc.buildRequest(req, true))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	decoder := json.NewDecoder(resp.Body)
	for {
		var chunk ollamaChatResponse
		if err := decoder.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error("Failed to decode Ollama stream chunk", "error", err)
			return fmt.Errorf("%w: %v", ErrOllamaInvalidResponse, err)
		}

		if chunk.Message.Content != "" {
			select {
			case out <- chunk.Message.Content:
			case <-ctx.Done():
				log.Info("Context cancelled during Ollama stream processing")
				return ctx.Err()
			}
		}
		if chunk.Done {
			break
		}
	}

	log.Debug("Ollama stream completed successfully")
	return nil
}

// ListAvailableModels retrieves the locally pulled models.
func (oc *OllamaClient) ListAvailableModels(ctx context.Context) ([]string, error) {
	log := contextkeys.LoggerFromContext(ctx)
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, oc.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama listmodels: failed to create request: %w", err)
	}

	resp, err := oc.httpClient.Do(httpReq)
	if err != nil {
		return nil, wrapOllamaTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ollamaStatusError(resp, "")
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("%w: failed to parse /api/tags response: %v", ErrOllamaInvalidResponse, err)
	}

	names := make([]string, len(tags.Models))
	for i, tag := range tags.Models {
		names[i] = tag.Name
	}
	log.Debug("Successfully listed Ollama models", "count", len(names))
	return names, nil
}

func (oc *OllamaClient) buildRequest(req Request, stream bool) ollamaChatRequest {
	messages := make([]ollamaMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, ollamaMessage{Role: RoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		messages = append(messages, ollamaMessage{Role: m.Role, Content: m.Content})
	}

	chatReq := ollamaChatRequest{
		Model:     req.Model,
		Messages:  messages,
		Stream:    stream,
		KeepAlive: oc.keepAlive,
	}
	if req.Temperature > 0 || req.MaxTokens > 0 {
		chatReq.Options = &ollamaOptions{Temperature: req.Temperature, NumPredict: req.MaxTokens}
	}
	return chatReq
}

// post sends a chat request and returns the response when the server
// answered 200. The caller closes the body.
func (oc *OllamaClient) post(ctx context.Context, chatReq ollamaChatRequest) (*http.Response, error) {
	log := contextkeys.LoggerFromContext(ctx)

	requestBody, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, oc.baseURL+"/api/chat", bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.Debug("Sending Ollama request", "model", chatReq.Model, "messages", len(chatReq.Messages), "stream", chatReq.Stream)

	resp, err := oc.httpClient.Do(httpReq)
	if err != nil {
		log.Error("Ollama request failed", "error", err)
		return nil, wrapOllamaTransportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, ollamaStatusError(resp, chatReq.Model)
	}
	return resp, nil
}

func wrapOllamaTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("ollama: %w", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrOllamaHostUnreachable, err)
	}
	return fmt.Errorf("ollama: request error: %w", err)
}

func ollamaStatusError(resp *http.Response, model string) error {
	statusErr := &StatusError{Provider: "ollama", Code: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var errorResp ollamaErrorResponse
	if json.Unmarshal(body, &errorResp) == nil {
		statusErr.Message = errorResp.Error
	}
	if resp.StatusCode == http.StatusNotFound || strings.Contains(strings.ToLower(statusErr.Message), "not found") {
		return fmt.Errorf("%w: %s (model: %s): %w", ErrOllamaModelNotFound, statusErr.Message, model, statusErr)
	}
	return statusErr
}
