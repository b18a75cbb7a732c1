package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func fakeLLM(t *testing.T, answer string, status int, got *chatRequest) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			fmt.Fprint(w, `{"error":{"message":"rate limited","type":"requests"}}`)
			return
		}
		resp := map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-test",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": answer},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return New("sk-test", srv.URL+"/v1", "gpt-test", 2*time.Second, logging.Nop())
}

func TestClassify(t *testing.T) {
	var req chatRequest
	c := fakeLLM(t, " Science.\n", http.StatusOK, &req)

	got, err := c.Classify(context.Background(), "Black holes", "A tour of event horizons", []string{"science", "technology"})
	require.NoError(t, err)
	assert.Equal(t, "science", got)

	assert.Equal(t, "gpt-test", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Contains(t, req.Messages[1].Content, "Categories: science, technology")
	assert.Contains(t, req.Messages[1].Content, "Title: Black holes")
}

func TestSummarize(t *testing.T) {
	c := fakeLLM(t, "A short summary.", http.StatusOK, nil)

	got, err := c.Summarize(context.Background(), "Title", "Long description")
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", got)
}

func TestComplete_Errors(t *testing.T) {
	_, err := fakeLLM(t, "", http.StatusTooManyRequests, nil).Summarize(context.Background(), "t", "d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion")

	_, err = fakeLLM(t, "   ", http.StatusOK, nil).Summarize(context.Background(), "t", "d")
	require.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestComplete_TimesOutOnHungEndpoint(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New("sk-test", srv.URL+"/v1", "gpt-test", 100*time.Millisecond, logging.Nop())

	start := time.Now()
	_, err := c.Summarize(context.Background(), "t", "d")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestKeywordCategory(t *testing.T) {
	all := []string{"technology", "science", "business", "health", "culture", "productivity"}

	tests := []struct {
		name  string
		text  string
		known []string
		want  string
	}{
		{"science words", "New research from NASA on space physics", all, "science"},
		{"health words", "Sleep and nutrition: a doctor explains", all, "health"},
		{"no match defaults to technology", "Untitled", all, "technology"},
		{"no match without technology", "Untitled", []string{"culture", "health"}, "culture"},
		{"unknown categories ignored", "startup finance market", []string{"science", "technology"}, "technology"},
		{"empty catalog", "anything", nil, "technology"},
		{"punctuation split", "Habit-building: focus, routine!", all, "productivity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeywordCategory(tt.text, tt.known))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héllo", truncate("héllo", 10))
	assert.Equal(t, "hé", truncate("héllo", 2))
}
