package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommands runs the headless commands against a fake provider. The
// configuration is loaded once per process, so all cases share one file.
func TestCommands(t *testing.T) {
	longAnswer := strings.Repeat("The future is written in the stars. ", 30)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chat/completions":
			fmt.Fprintf(w, `{"model":"gpt-test","choices":[{"message":{"role":"assistant","content":%q}}]}`, longAnswer)
		case "/models":
			fmt.Fprint(w, `{"data":[{"id":"gpt-test"},{"id":"another"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "prophet.yaml")
	cfgYAML := fmt.Sprintf(`log_level: error
llm:
  provider: openai
  model: gpt-test
  base_url: %s
  api_key: test-key
  stream: false
`, server.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o600))

	run := func(t *testing.T, args ...string) (string, error) {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
		err := ExecuteContext(context.Background())
		return out.String(), err
	}

	t.Run("ask_truncates_answer", func(t *testing.T) {
		out, err := run(t, "ask", "--option", "1")
		require.NoError(t, err)
		out = strings.TrimSpace(out)
		assert.True(t, strings.HasSuffix(out, "..."))
		assert.Less(t, len(out), len(longAnswer))
	})

	t.Run("ask_full", func(t *testing.T) {
		out, err := run(t, "ask", "--full", "What does the future hold?")
		require.NoError(t, err)
		assert.Equal(t, strings.TrimSpace(longAnswer), strings.TrimSpace(out))
	})

	t.Run("ask_requires_prompt", func(t *testing.T) {
		askOption, askFull = 0, false
		_, err := run(t, "ask")
		assert.ErrorContains(t, err, "provide a prompt")
	})

	t.Run("prompts", func(t *testing.T) {
		out, err := run(t, "prompts")
		require.NoError(t, err)
		assert.Contains(t, out, "Tell me about AI")
		assert.Contains(t, out, "always last")
	})

	t.Run("models", func(t *testing.T) {
		out, err := run(t, "models")
		require.NoError(t, err)
		assert.Contains(t, out, "* gpt-test")
		assert.Contains(t, out, "  another")
	})
}
