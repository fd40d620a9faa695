package handler

import (
	"net/http"

	"farm-service/pkg/ai"
	"farm-service/pkg/logger"
	"farm-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var aiClient ai.Client

// SetAIClient wires the assistant backend. Without one the assistant
// endpoint answers 503.
func SetAIClient(client ai.Client) {
	aiClient = client
}

// ChatRequest is one turn of the assistant conversation.
type ChatRequest struct {
	History []ai.Message `json:"history"`
	Message string       `json:"message"`
}

// ChatAssistant handles a farm assistant turn. The reply streams back
// as plain text chunks, flushed as the model produces them.
func ChatAssistant(c echo.Context) error {
	log := logger.FromContext(c)

	if aiClient == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "assistant is not configured"})
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid chat request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
	}

	prometheus.AssistantRequestsCounter.Inc()

	res := c.Response()
	started := false
	err := aiClient.StreamChat(c.Request().Context(), req.History, req.Message, func(chunk string) error {
		if !started {
			res.Header().Set(echo.HeaderContentType, "text/plain; charset=utf-8")
			res.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := res.Write([]byte(chunk)); err != nil {
			return err
		}
		res.Flush()
		return nil
	})
	if err != nil {
		prometheus.AssistantErrorsCounter.Inc()
		log.Error("Assistant stream failed", zap.Bool("started", started), zap.Error(err))
		if !started {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "assistant backend is unavailable"})
		}
		// Mid-stream failure: the status line is already on the wire,
		// all we can do is cut the stream.
		return nil
	}

	if !started {
		// Model produced nothing. Still a successful, empty reply.
		res.Header().Set(echo.HeaderContentType, "text/plain; charset=utf-8")
		res.WriteHeader(http.StatusOK)
	}
	log.Info("Assistant reply streamed", zap.Int("history_turns", len(req.History)))
	return nil
}
