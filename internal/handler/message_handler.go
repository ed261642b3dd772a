package handler

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"rollingpaper/internal/middleware"
	"rollingpaper/internal/model"
	"rollingpaper/internal/service"

	"github.com/gin-gonic/gin"
)

// BoardPasswordHeader carries the board password on gated requests, percent-encoded
// (encodeURIComponent) so passwords outside Latin-1 survive browser fetch.
const BoardPasswordHeader = "X-Board-Password"

// boardPassword decodes the gate header. A value that is not valid percent-encoding is used as sent.
func boardPassword(c *gin.Context) string {
	raw := c.GetHeader(BoardPasswordHeader)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

type MessageService interface {
	List(ctx context.Context, boardID, password, search string) ([]model.Message, error)
	Add(ctx context.Context, caller *model.Identity, boardID, password string, in service.MessageInput) (*model.Message, error)
	Update(ctx context.Context, caller *model.Identity, boardID, messageID, content string) (*model.Message, error)
	Delete(ctx context.Context, caller *model.Identity, boardID, messageID string) error
	AddHeart(ctx context.Context, boardID, messageID, password string) (int, error)
}

type MessageHandler struct {
	messages MessageService
}

func NewMessageHandler(messages MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type CreateMessageRequest struct {
	Author  string `json:"author" binding:"required"`
	Emoji   string `json:"emoji"`
	Content string `json:"content" binding:"required"`
}

type UpdateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type MessageResponse struct {
	ID        string `json:"id"`
	BoardID   string `json:"board_id"`
	Author    string `json:"author"`
	Emoji     string `json:"emoji"`
	Content   string `json:"content"`
	Hearts    int    `json:"hearts"`
	AuthorUID string `json:"author_uid,omitempty"`
	CreatedAt string `json:"created_at"`
}

type HeartResponse struct {
	Hearts int `json:"hearts"`
}

func toMessageResponse(m *model.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID,
		BoardID:   m.BoardID,
		Author:    m.Author,
		Emoji:     m.Emoji,
		Content:   m.Content,
		Hearts:    m.Hearts,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.AuthorUID != nil {
		resp.AuthorUID = *m.AuthorUID
	}
	return resp
}

// List godoc
// @Summary  List messages on a board, newest first
// @Tags     Messages
// @Produce  json
// @Param    id               path   string true  "Board ID"
// @Param    q                query  string false "Search author or content"
// @Param    X-Board-Password header string false "Board password, percent-encoded"
// @Success  200 {array} MessageResponse
// @Failure  403 {object} ErrorResponse
// @Router   /boards/{id}/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.messages.List(c.Request.Context(), c.Param("id"), boardPassword(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MessageResponse, len(messages))
	for i := range messages {
		response[i] = toMessageResponse(&messages[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary  Write a message
// @Tags     Messages
// @Accept   json
// @Produce  json
// @Param    id               path   string               true  "Board ID"
// @Param    X-Board-Password header string               false "Board password, percent-encoded"
// @Param    request          body   CreateMessageRequest true  "Message"
// @Success  201 {object} MessageResponse
// @Failure  400,403,404 {object} ErrorResponse
// @Router   /boards/{id}/messages [post]
func (h *MessageHandler) Create(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	message, err := h.messages.Add(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"),
		boardPassword(c),
		service.MessageInput{Author: req.Author, Emoji: req.Emoji, Content: req.Content})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMessageResponse(message))
}

// Update godoc
// @Summary  Edit a message
// @Tags     Messages
// @Accept   json
// @Produce  json
// @Param    id        path string               true "Board ID"
// @Param    messageId path string               true "Message ID"
// @Param    request   body UpdateMessageRequest true "Content"
// @Success  200 {object} MessageResponse
// @Failure  400,401,403,404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /boards/{id}/messages/{messageId} [put]
func (h *MessageHandler) Update(c *gin.Context) {
	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	message, err := h.messages.Update(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), c.Param("messageId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMessageResponse(message))
}

// Delete godoc
// @Summary  Delete a message
// @Tags     Messages
// @Param    id        path string true "Board ID"
// @Param    messageId path string true "Message ID"
// @Success  204
// @Failure  401,403,404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /boards/{id}/messages/{messageId} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.messages.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), c.Param("messageId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddHeart godoc
// @Summary  Add a heart to a message
// @Tags     Messages
// @Produce  json
// @Param    id               path   string true  "Board ID"
// @Param    messageId        path   string true  "Message ID"
// @Param    X-Board-Password header string false "Board password, percent-encoded"
// @Success  200 {object} HeartResponse
// @Failure  403,404 {object} ErrorResponse
// @Router   /boards/{id}/messages/{messageId}/hearts [post]
func (h *MessageHandler) AddHeart(c *gin.Context) {
	hearts, err := h.messages.AddHeart(c.Request.Context(), c.Param("id"), c.Param("messageId"), boardPassword(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, HeartResponse{Hearts: hearts})
}
