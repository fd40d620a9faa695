package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"farm-service/pkg/config"
)

// systemPrompt positions the model as the farm's agronomy assistant.
const systemPrompt = "คุณคือผู้เชี่ยวชาญด้านการเกษตรและผู้ช่วยฟาร์มอัจฉริยะสำหรับ 'Smile Farm' " +
	"ให้คำแนะนำที่ชัดเจน รัดกุม และนำไปใช้ได้จริงเกี่ยวกับการจัดการพืชผล การควบคุมสภาพแวดล้อม " +
	"และการตรวจจับศัตรูพืช ใช้โทนเสียงที่เป็นมิตรและให้กำลังใจ ตอบเป็นภาษาไทย"

type openAI struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
}

// NewOpenAI builds a client for any OpenAI-compatible chat-completions
// endpoint.
func NewOpenAI(cfg config.AIConfig) Client {
	return &openAI{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		key:      cfg.APIKey,
		model:    cfg.Model,
		httpc:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *openAI) StreamChat(ctx context.Context, history []Message, message string, onChunk func(string) error) error {
	messages := make([]map[string]string, 0, len(history)+2)
	messages = append(messages, map[string]string{"role": "system", "content": systemPrompt})
	for _, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages = append(messages, map[string]string{"role": role, "content": msg.Text})
	}
	messages = append(messages, map[string]string{"role": "user", "content": message})

	reqBody := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": 0.2,
		"stream":      true,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("assistant backend returned status %d", resp.StatusCode)
	}

	// The stream arrives as server-sent events, one JSON delta per
	// "data:" line, terminated by "data: [DONE]".
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return fmt.Errorf("parse stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		if err := onChunk(chunk.Choices[0].Delta.Content); err != nil {
			return err
		}
	}
	return scanner.Err()
}
