package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/castrovroberto/prophet/internal/contextkeys"
)

// DefaultOpenAIBaseURL is used when no base URL is configured.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient implements the Client interface for OpenAI-compatible
// chat completion APIs.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI client. An empty baseURL targets the
// public API.
func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client) *OpenAIClient {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// OpenAI API request/response structures
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Stream      bool            `json:"stream,omitempty"`
}

type openAIResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
}

type openAIStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate performs a non-streaming chat completion.
func (oc *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	log := contextkeys.LoggerFromContext(ctx)

	resp, err := oc.post(ctx, oc.buildRequest(req, false))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var openaiResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return "", fmt.Errorf("openai: failed to parse response: %w", err)
	}
	if len(openaiResp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response")
	}

	log.Debug("OpenAI request successful", "model", openaiResp.Model, "finish_reason", openaiResp.Choices[0].FinishReason)
	return openaiResp.Choices[0].Message.Content, nil
}

// Stream performs a streaming chat completion, reading server-sent events.
func (oc *OpenAIClient) Stream(ctx context.Context, req Request, out chan<- string) error {
	defer close(out)
	log := contextkeys.LoggerFromContext(ctx)

	resp, err := oc.post(ctx, oc.buildRequest(req, true))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "[DONE]" {
			break
		}

		var chunk openAIStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			log.Warn("Skipping malformed OpenAI stream chunk", "error", err)
			continue
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}

		select {
		case out <- chunk.Choices[0].Delta.Content:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("openai: stream error: %w", err)
	}

	log.Debug("OpenAI stream completed successfully")
	return nil
}

// ListAvailableModels retrieves the model IDs the API key can use.
func (oc *OpenAIClient) ListAvailableModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, oc.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("openai: failed to create request: %w", err)
	}
	oc.setHeaders(httpReq)

	resp, err := oc.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, openAIStatusError(resp)
	}

	var modelsResp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("openai: failed to decode response: %w", err)
	}

	models := make([]string, len(modelsResp.Data))
	for i, model := range modelsResp.Data {
		models[i] = model.ID
	}
	return models, nil
}

func (oc *OpenAIClient) buildRequest(req Request, stream bool) openAIRequest {
	messages := make([]openAIMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openAIMessage{Role: RoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		messages = append(messages, openAIMessage{Role: m.Role, Content: m.Content})
	}
	return openAIRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      stream,
	}
}

// post sends a chat completion request and returns the response when the
// API answered 200. The caller closes the body.
func (oc *OpenAIClient) post(ctx context.Context, request openAIRequest) (*http.Response, error) {
	log := contextkeys.LoggerFromContext(ctx)

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("openai: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, oc.baseURL+"/chat/completions", bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("openai: failed to create request: %w", err)
	}
	oc.setHeaders(httpReq)

	log.Debug("Sending OpenAI request", "model", request.Model, "messages", len(request.Messages), "stream", request.Stream)

	resp, err := oc.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		statusErr := openAIStatusError(resp)
		log.Error("OpenAI API returned non-OK status", "status", resp.StatusCode, "error", statusErr)
		return nil, statusErr
	}
	return resp, nil
}

func (oc *OpenAIClient) setHeaders(req *http.Request) {
	if oc.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+oc.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
}

func openAIStatusError(resp *http.Response) *StatusError {
	statusErr := &StatusError{Provider: "openai", Code: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var errorResp openAIErrorResponse
	if json.Unmarshal(body, &errorResp) == nil {
		statusErr.Message = errorResp.Error.Message
	}
	return statusErr
}
