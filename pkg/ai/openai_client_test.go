package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"farm-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Stream   bool   `json:"stream"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func sseServer(t *testing.T, chunks []string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range chunks {
			payload, _ := json.Marshal(map[string]any{
				"choices": []map[string]any{
					{"delta": map[string]string{"content": chunk}},
				},
			})
			w.Write([]byte("data: " + string(payload) + "\n\n"))
		}
		w.Write([]byte("data: [DONE]\n\n"))
	}))
}

func testClient(url string) Client {
	return NewOpenAI(config.AIConfig{
		Endpoint: url,
		APIKey:   "test-key",
		Model:    "test-model",
		Timeout:  5 * time.Second,
	})
}

func TestStreamChatDeliversChunksInOrder(t *testing.T) {
	chunks := []string{"สวัสดี", "ครับ ", "ผมคือผู้ช่วยฟาร์ม"}
	srv := sseServer(t, chunks, nil)
	defer srv.Close()

	var got []string
	err := testClient(srv.URL).StreamChat(context.Background(), nil, "แนะนำการปลูกมะเขือเทศ", func(chunk string) error {
		got = append(got, chunk)
		return nil
	})
	require.NoError(t, err)

	// Concatenating the chunks reconstructs the full reply.
	assert.Equal(t, strings.Join(chunks, ""), strings.Join(got, ""))
	assert.Equal(t, chunks, got)
}

func TestStreamChatBuildsConversation(t *testing.T) {
	var captured chatRequest
	srv := sseServer(t, []string{"ok"}, &captured)
	defer srv.Close()

	history := []Message{
		{Role: "user", Text: "ฝนตกบ่อย ควรทำอย่างไร"},
		{Role: "model", Text: "ควรระบายน้ำออกจากแปลง"},
	}
	err := testClient(srv.URL).StreamChat(context.Background(), history, "แล้วเรื่องปุ๋ยล่ะ", func(string) error { return nil })
	require.NoError(t, err)

	require.Equal(t, "test-model", captured.Model)
	assert.True(t, captured.Stream)
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	// The stored history role "model" maps to the wire role "assistant".
	assert.Equal(t, "assistant", captured.Messages[2].Role)
	assert.Equal(t, "user", captured.Messages[3].Role)
	assert.Equal(t, "แล้วเรื่องปุ๋ยล่ะ", captured.Messages[3].Content)
}

func TestStreamChatUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	called := false
	err := testClient(srv.URL).StreamChat(context.Background(), nil, "hello", func(string) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called, "no chunk may be delivered on an upstream failure")
}

func TestStreamChatOnChunkErrorStops(t *testing.T) {
	srv := sseServer(t, []string{"one", "two", "three"}, nil)
	defer srv.Close()

	delivered := 0
	err := testClient(srv.URL).StreamChat(context.Background(), nil, "hello", func(string) error {
		delivered++
		return context.Canceled
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, delivered)
}
