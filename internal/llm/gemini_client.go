package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/castrovroberto/prophet/internal/contextkeys"
)

const geminiRoleModel = "model"

// GeminiClient implements the Client interface for the Google Gemini API.
type GeminiClient struct {
	apiKey string
	opts   []option.ClientOption

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client. The underlying connection is
// opened on first use.
func NewGeminiClient(apiKey string, opts ...option.ClientOption) *GeminiClient {
	return &GeminiClient{apiKey: apiKey, opts: opts}
}

// initClient initializes the Gemini client if not already initialized
func (gc *GeminiClient) initClient(ctx context.Context) (*genai.Client, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.client != nil {
		return gc.client, nil
	}

	opts := append([]option.ClientOption{option.WithAPIKey(gc.apiKey)}, gc.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	gc.client = client
	return client, nil
}

// Close releases the underlying connection.
func (gc *GeminiClient) Close() error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.client == nil {
		return nil
	}
	err := gc.client.Close()
	gc.client = nil
	return err
}

// Generate performs a non-streaming chat request.
func (gc *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	cs, last, err := gc.startChat(ctx, req)
	if err != nil {
		return "", err
	}

	resp, err := cs.SendMessage(ctx, last...)
	if err != nil {
		return "", wrapGeminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: no content in response")
	}
	return extractText(resp.Candidates[0].Content), nil
}

// Stream performs a streaming chat request.
func (gc *GeminiClient) Stream(ctx context.Context, req Request, out chan<- string) error {
	defer close(out)
	log := contextkeys.LoggerFromContext(ctx)

	cs, last, err := gc.startChat(ctx, req)
	if err != nil {
		return err
	}

	iter := cs.SendMessageStream(ctx, last...)
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return wrapGeminiError(err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		text := extractText(resp.Candidates[0].Content)
		if text == "" {
			continue
		}
		select {
		case out <- text:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	log.Debug("Gemini stream completed successfully")
	return nil
}

// ListAvailableModels retrieves the models available to the API key.
func (gc *GeminiClient) ListAvailableModels(ctx context.Context) ([]string, error) {
	client, err := gc.initClient(ctx)
	if err != nil {
		return nil, err
	}

	var models []string
	iter := client.ListModels(ctx)
	for {
		info, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrapGeminiError(err)
		}
		models = append(models, strings.TrimPrefix(info.Name, "models/"))
	}
	return models, nil
}

// startChat prepares a chat session holding every message but the last,
// which is returned as the parts to send.
func (gc *GeminiClient) startChat(ctx context.Context, req Request) (*genai.ChatSession, []genai.Part, error) {
	if len(req.Messages) == 0 {
		return nil, nil, fmt.Errorf("gemini: request has no messages")
	}
	client, err := gc.initClient(ctx)
	if err != nil {
		return nil, nil, err
	}

	model := client.GenerativeModel(req.Model)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.Temperature > 0 {
		model.SetTemperature(float32(req.Temperature))
	}
	if req.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}

	cs := model.StartChat()
	history := req.Messages[:len(req.Messages)-1]
	for _, m := range history {
		role := RoleUser
		if m.Role == RoleAssistant {
			role = geminiRoleModel
		}
		cs.History = append(cs.History, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}

	last := req.Messages[len(req.Messages)-1]
	return cs, []genai.Part{genai.Text(last.Content)}, nil
}

func extractText(content *genai.Content) string {
	var sb strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// wrapGeminiError turns API failures into a StatusError so quota errors
// surface as HTTP 429 whichever transport the SDK used.
func wrapGeminiError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("gemini: %w", err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: "gemini", Code: apiErr.Code, Message: apiErr.Message}
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		return &StatusError{Provider: "gemini", Code: grpcToHTTP(st.Code()), Message: st.Message()}
	}
	return fmt.Errorf("gemini: %w", err)
}

func grpcToHTTP(code codes.Code) int {
	switch code {
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.InvalidArgument, codes.FailedPrecondition:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
