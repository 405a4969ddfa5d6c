package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClient_Generate(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"model":"llama3","message":{"role":"assistant","content":"Patience."},"done":true}`)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "5m", server.Client())
	text, err := client.Generate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "Patience.", text)
	assert.Equal(t, "5m", got.KeepAlive)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, RoleSystem, got.Messages[0].Role)
	require.NotNil(t, got.Options)
	assert.Equal(t, 0.5, got.Options.Temperature)
}

func TestOllamaClient_Stream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lines := []string{
			`{"message":{"role":"assistant","content":"All "},"done":false}`,
			`{"message":{"role":"assistant","content":"is "},"done":false}`,
			`{"message":{"role":"assistant","content":"written."},"done":false}`,
			`{"message":{"role":"assistant","content":""},"done":true}`,
		}
		fmt.Fprint(w, strings.Join(lines, "\n"))
	}))
	defer server.Close()

	out := make(chan string, 10)
	err := NewOllamaClient(server.URL, "", server.Client()).Stream(context.Background(), testRequest(), out)
	require.NoError(t, err)

	var sb strings.Builder
	for chunk := range out {
		sb.WriteString(chunk)
	}
	assert.Equal(t, "All is written.", sb.String())
}

func TestOllamaClient_Errors(t *testing.T) {
	t.Run("model_not_found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"model \"missing\" not found, try pulling it first"}`)
		}))
		defer server.Close()

		_, err := NewOllamaClient(server.URL, "", server.Client()).Generate(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrOllamaModelNotFound)
		assert.Equal(t, http.StatusNotFound, StatusCode(err))
	})

	t.Run("too_many_requests", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":"server busy"}`)
		}))
		defer server.Close()

		_, err := NewOllamaClient(server.URL, "", server.Client()).Generate(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("host_unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := NewOllamaClient(url, "", nil).ListAvailableModels(context.Background())
		assert.ErrorIs(t, err, ErrOllamaHostUnreachable)
	})
}

func TestOllamaClient_ListAvailableModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		fmt.Fprint(w, `{"models":[{"name":"llama3:latest","size":1},{"name":"mistral:7b","size":2}]}`)
	}))
	defer server.Close()

	models, err := NewOllamaClient(server.URL, "", server.Client()).ListAvailableModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3:latest", "mistral:7b"}, models)
}
