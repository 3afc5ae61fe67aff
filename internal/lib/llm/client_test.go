package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/shoe-rental/internal/config"
	"github.com/deppfellow/shoe-rental/internal/errs"
)

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	return NewClient(config.OpenAIConfig{
		APIKey:      "sk-test",
		Model:       "gpt-4o-mini",
		BaseURL:     srv.URL + "/v1",
		Temperature: 0.7,
		Timeout:     2 * time.Second,
	}, &log)
}

func writeCompletion(w http.ResponseWriter, choices ...string) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type choice struct {
		Index        int     `json:"index"`
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	}

	body := struct {
		ID      string   `json:"id"`
		Object  string   `json:"object"`
		Model   string   `json:"model"`
		Choices []choice `json:"choices"`
	}{
		ID:      "chatcmpl-test",
		Object:  "chat.completion",
		Model:   "gpt-4o-mini",
		Choices: []choice{},
	}
	for i, c := range choices {
		body.Choices = append(body.Choices, choice{
			Index:        i,
			Message:      message{Role: "assistant", Content: c},
			FinishReason: "stop",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_Complete(t *testing.T) {
	t.Run("returns first choice text verbatim", func(t *testing.T) {
		var got chatRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			writeCompletion(w, " 15\n", "20")
		})

		reply, err := client.Complete(context.Background(), "rules", "The customer is 70 years old.")
		require.NoError(t, err)

		assert.Equal(t, " 15\n", reply)
		assert.Equal(t, "gpt-4o-mini", got.Model)
		assert.InDelta(t, 0.7, got.Temperature, 0.0001)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, "rules", got.Messages[0].Content)
		assert.Equal(t, "user", got.Messages[1].Role)
		assert.Equal(t, "The customer is 70 years old.", got.Messages[1].Content)
	})

	t.Run("no choices is an oracle error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeCompletion(w)
		})

		_, err := client.Complete(context.Background(), "rules", "text")
		assert.ErrorIs(t, err, errs.ErrDiscountOracle)
	})

	t.Run("upstream failure is an oracle error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
		})

		_, err := client.Complete(context.Background(), "rules", "text")
		assert.ErrorIs(t, err, errs.ErrDiscountOracle)
	})

	t.Run("unreachable endpoint is an oracle error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		log := zerolog.Nop()
		client := NewClient(config.OpenAIConfig{
			APIKey:  "sk-test",
			Model:   "gpt-4o-mini",
			BaseURL: url + "/v1",
			Timeout: time.Second,
		}, &log)

		_, err := client.Complete(context.Background(), "rules", "text")
		assert.ErrorIs(t, err, errs.ErrDiscountOracle)
	})
}
