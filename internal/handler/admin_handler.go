package handler

import (
	"context"
	"net/http"
	"time"

	"rollingpaper/internal/middleware"
	"rollingpaper/internal/model"

	"github.com/gin-gonic/gin"
)

type AdminBoardService interface {
	List(ctx context.Context, caller *model.Identity) ([]model.Board, error)
	Delete(ctx context.Context, caller *model.Identity, id string) error
}

type LoginLogService interface {
	List(ctx context.Context, caller *model.Identity) ([]model.LoginLog, error)
}

// AdminHandler serves the administrative views. Every call is re-checked against the allow-list in the service layer.
type AdminHandler struct {
	boards AdminBoardService
	logins LoginLogService
}

func NewAdminHandler(boards AdminBoardService, logins LoginLogService) *AdminHandler {
	return &AdminHandler{boards: boards, logins: logins}
}

type AdminBoardResponse struct {
	BoardResponse
	CreatorEmail string `json:"creator_email,omitempty"`
}

type LoginLogResponse struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	LoginAt     string `json:"login_at"`
}

// ListBoards godoc
// @Summary  List every board
// @Tags     Admin
// @Produce  json
// @Success  200 {array} AdminBoardResponse
// @Failure  401,403 {object} ErrorResponse
// @Security BearerAuth
// @Router   /admin/boards [get]
func (h *AdminHandler) ListBoards(c *gin.Context) {
	boards, err := h.boards.List(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AdminBoardResponse, len(boards))
	for i := range boards {
		response[i] = AdminBoardResponse{BoardResponse: toBoardResponse(&boards[i], true)}
		if boards[i].CreatorEmail != nil {
			response[i].CreatorEmail = *boards[i].CreatorEmail
		}
	}
	c.JSON(http.StatusOK, response)
}

// ListLogins godoc
// @Summary  List sign-ins, newest first
// @Tags     Admin
// @Produce  json
// @Success  200 {array} LoginLogResponse
// @Failure  401,403 {object} ErrorResponse
// @Security BearerAuth
// @Router   /admin/logins [get]
func (h *AdminHandler) ListLogins(c *gin.Context) {
	logs, err := h.logins.List(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]LoginLogResponse, len(logs))
	for i, entry := range logs {
		response[i] = LoginLogResponse{
			UID:         entry.UID,
			Email:       entry.Email,
			DisplayName: entry.DisplayName,
			LoginAt:     entry.LoginAt.UTC().Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, response)
}

// DeleteBoard godoc
// @Summary  Delete any board
// @Tags     Admin
// @Param    id path string true "Board ID"
// @Success  204
// @Failure  401,403,404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /admin/boards/{id} [delete]
func (h *AdminHandler) DeleteBoard(c *gin.Context) {
	if err := h.boards.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
