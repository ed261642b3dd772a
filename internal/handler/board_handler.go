package handler

import (
	"context"
	"net/http"
	"time"

	"rollingpaper/internal/middleware"
	"rollingpaper/internal/model"
	"rollingpaper/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardService interface {
	Create(ctx context.Context, caller *model.Identity, title, password string) (*model.Board, error)
	CreateWithID(ctx context.Context, caller *model.Identity, id, title, password string) (*model.Board, error)
	Get(ctx context.Context, id string) (*model.Board, error)
	ListByCreator(ctx context.Context, caller *model.Identity, uid string) ([]model.Board, error)
	UpdateSettings(ctx context.Context, caller *model.Identity, id string, in service.SettingsInput) (*model.Board, error)
	Delete(ctx context.Context, caller *model.Identity, id string) error
	CheckAccess(ctx context.Context, id, password string) (bool, error)
	CanManage(caller *model.Identity, board *model.Board) bool
}

type BoardHandler struct {
	boards BoardService
}

func NewBoardHandler(boards BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

type CreateBoardRequest struct {
	// ID is optional; only admins may choose one.
	ID       string `json:"id"`
	Title    string `json:"title" binding:"required"`
	Password string `json:"password"`
}

type UpdateSettingsRequest struct {
	Theme *string `json:"theme"`
	Font  *string `json:"font"`
}

type AccessRequest struct {
	Password string `json:"password"`
}

type AccessResponse struct {
	Granted bool `json:"granted"`
}

type BoardResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	HasPassword  bool   `json:"has_password"`
	Theme        string `json:"theme"`
	Font         string `json:"font"`
	MessageCount int    `json:"message_count"`
	CreatorUID   string `json:"creator_uid,omitempty"`
	CreatedAt    string `json:"created_at"`
	CanManage    bool   `json:"can_manage"`
}

func toBoardResponse(board *model.Board, canManage bool) BoardResponse {
	resp := BoardResponse{
		ID:           board.ID,
		Title:        board.Title,
		HasPassword:  board.HasPassword(),
		Theme:        board.Theme,
		Font:         board.Font,
		MessageCount: board.MessageCount,
		CreatedAt:    board.CreatedAt.UTC().Format(time.RFC3339),
		CanManage:    canManage,
	}
	if board.CreatorUID != nil {
		resp.CreatorUID = *board.CreatorUID
	}
	return resp
}

func (h *BoardHandler) toResponses(caller *model.Identity, boards []model.Board) []BoardResponse {
	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = toBoardResponse(&boards[i], h.boards.CanManage(caller, &boards[i]))
	}
	return response
}

// Create godoc
// @Summary  Create a board
// @Tags     Boards
// @Accept   json
// @Produce  json
// @Param    request body CreateBoardRequest true "Board"
// @Success  201 {object} BoardResponse
// @Failure  400,401,403,409 {object} ErrorResponse
// @Security BearerAuth
// @Router   /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	caller := middleware.CurrentIdentity(c)

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var (
		board *model.Board
		err   error
	)
	if req.ID != "" {
		board, err = h.boards.CreateWithID(c.Request.Context(), caller, req.ID, req.Title, req.Password)
	} else {
		board, err = h.boards.Create(c.Request.Context(), caller, req.Title, req.Password)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBoardResponse(board, true))
}

// GetByID godoc
// @Summary  Get board metadata
// @Tags     Boards
// @Produce  json
// @Param    id path string true "Board ID"
// @Success  200 {object} BoardResponse
// @Failure  404 {object} ErrorResponse
// @Router   /boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	board, err := h.boards.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	caller := middleware.CurrentIdentity(c)
	c.JSON(http.StatusOK, toBoardResponse(board, h.boards.CanManage(caller, board)))
}

// Mine godoc
// @Summary  List boards created by the caller
// @Tags     Boards
// @Produce  json
// @Success  200 {array} BoardResponse
// @Failure  401 {object} ErrorResponse
// @Security BearerAuth
// @Router   /boards/mine [get]
func (h *BoardHandler) Mine(c *gin.Context) {
	caller := middleware.CurrentIdentity(c)
	if caller == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boards, err := h.boards.ListByCreator(c.Request.Context(), caller, caller.UID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toResponses(caller, boards))
}

// UpdateSettings godoc
// @Summary  Change board theme or font
// @Tags     Boards
// @Accept   json
// @Produce  json
// @Param    id      path string                true "Board ID"
// @Param    request body UpdateSettingsRequest true "Settings"
// @Success  200 {object} BoardResponse
// @Failure  400,401,403,404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /boards/{id}/settings [patch]
func (h *BoardHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.UpdateSettings(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"),
		service.SettingsInput{Theme: req.Theme, Font: req.Font})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board, true))
}

// Delete godoc
// @Summary  Delete a board and its messages
// @Tags     Boards
// @Param    id path string true "Board ID"
// @Success  204
// @Failure  401,403,404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	if err := h.boards.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckAccess godoc
// @Summary  Try a board password
// @Tags     Boards
// @Accept   json
// @Produce  json
// @Param    id      path string        true "Board ID"
// @Param    request body AccessRequest true "Password"
// @Success  200 {object} AccessResponse
// @Failure  404 {object} ErrorResponse
// @Router   /boards/{id}/access [post]
func (h *BoardHandler) CheckAccess(c *gin.Context) {
	var req AccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	granted, err := h.boards.CheckAccess(c.Request.Context(), c.Param("id"), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccessResponse{Granted: granted})
}
