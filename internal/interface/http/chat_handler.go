package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rprovine/reefwatch/internal/domain/chat"
	apperrors "github.com/rprovine/reefwatch/pkg/errors"
)

// ChatHandler exposes the conversational endpoints.
type ChatHandler struct {
	chatSvc chat.Service
	logger  *slog.Logger
}

// NewChatHandler constructs the chat transport.
func NewChatHandler(chatSvc chat.Service, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatSvc: chatSvc,
		logger:  logger.With("component", "http.chat"),
	}
}

// Chat handles one synchronous assistant turn.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.chatSvc.Send(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "chat_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ChatStream streams an assistant turn using Server-Sent Events.
func (h *ChatHandler) ChatStream(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	stream, err := h.chatSvc.Stream(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "chat_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	for chunk := range stream {
		payload, err := json.Marshal(chunk)
		if err != nil {
			h.logger.Error("marshal chunk failed", "error", err)
			continue
		}
		c.Writer.Write([]byte("data: "))
		c.Writer.Write(payload)
		c.Writer.Write([]byte("\n\n"))
		flusher.Flush()
	}
}

// ClearSession drops a conversation and its history.
func (h *ChatHandler) ClearSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if !h.chatSvc.ClearSession(sessionID) {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "session not found", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session cleared", "session_id": sessionID})
}
