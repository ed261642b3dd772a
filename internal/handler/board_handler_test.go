package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"rollingpaper/internal/handler"
	"rollingpaper/internal/model"
	"rollingpaper/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupBoardRouter(caller *model.Identity) (*MockBoardService, *gin.Engine) {
	r := newRouter(caller)
	svc := new(MockBoardService)
	h := handler.NewBoardHandler(svc)

	r.POST("/boards", h.Create)
	r.GET("/boards/mine", h.Mine)
	r.GET("/boards/:id", h.GetByID)
	r.PATCH("/boards/:id/settings", h.UpdateSettings)
	r.DELETE("/boards/:id", h.Delete)
	r.POST("/boards/:id/access", h.CheckAccess)
	return svc, r
}

func sampleBoard(id string, hash *string) *model.Board {
	return &model.Board{
		ID:           id,
		Title:        "Merry Christmas",
		PasswordHash: hash,
		Theme:        "christmas",
		Font:         model.DefaultStyle,
		MessageCount: 3,
		CreatorUID:   &kim.UID,
		CreatedAt:    time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestBoardHandler_Create(t *testing.T) {
	t.Run("generated id", func(t *testing.T) {
		// Arrange
		svc, router := setupBoardRouter(kim)
		svc.On("Create", mock.Anything, kim, "Merry Christmas", "").Return(sampleBoard("b-1", nil), nil)

		// Act
		resp := doJSON(router, http.MethodPost, "/boards", handler.CreateBoardRequest{Title: "Merry Christmas"}, nil)

		// Assert
		assert.Equal(t, http.StatusCreated, resp.Code)
		var body handler.BoardResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "b-1", body.ID)
		assert.False(t, body.HasPassword)
		assert.Equal(t, "2024-12-01T09:00:00Z", body.CreatedAt)
		svc.AssertExpectations(t)
	})

	t.Run("custom id goes through CreateWithID", func(t *testing.T) {
		svc, router := setupBoardRouter(admin)
		svc.On("CreateWithID", mock.Anything, admin, "team-2024", "Team", "pw").Return(sampleBoard("team-2024", nil), nil)

		resp := doJSON(router, http.MethodPost, "/boards",
			handler.CreateBoardRequest{ID: "team-2024", Title: "Team", Password: "pw"}, nil)

		assert.Equal(t, http.StatusCreated, resp.Code)
		svc.AssertExpectations(t)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing title", func(t *testing.T) {
		svc, router := setupBoardRouter(kim)

		resp := doJSON(router, http.MethodPost, "/boards", map[string]string{"password": "x"}, nil)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "Invalid request")
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: errors.Join(service.ErrValidation, errors.New("title must be at most 50 characters")), status: http.StatusBadRequest},
		{name: "conflict", err: service.ErrConflict, status: http.StatusConflict},
		{name: "not admin", err: service.ErrForbidden, status: http.StatusForbidden},
		{name: "anonymous", err: service.ErrUnauthenticated, status: http.StatusUnauthorized},
		{name: "store", err: service.ErrStore, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := setupBoardRouter(kim)
			svc.On("CreateWithID", mock.Anything, kim, "abc", "Team", "").Return(nil, tt.err)

			resp := doJSON(router, http.MethodPost, "/boards", handler.CreateBoardRequest{ID: "abc", Title: "Team"}, nil)

			assert.Equal(t, tt.status, resp.Code)
			assert.Contains(t, resp.Body.String(), `"error"`)
		})
	}
}

func TestBoardHandler_GetByID(t *testing.T) {
	hash := "$2a$10$abcdefghijklmnopqrstuv"

	t.Run("never exposes the password hash", func(t *testing.T) {
		// Arrange
		svc, router := setupBoardRouter(nil)
		svc.On("Get", mock.Anything, "b-1").Return(sampleBoard("b-1", &hash), nil)

		// Act
		resp := doJSON(router, http.MethodGet, "/boards/b-1", nil, nil)

		// Assert
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.NotContains(t, resp.Body.String(), hash)
		var body handler.BoardResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.True(t, body.HasPassword)
		assert.False(t, body.CanManage)
		assert.Equal(t, "christmas", body.Theme)
		assert.Equal(t, 3, body.MessageCount)
	})

	t.Run("creator can manage", func(t *testing.T) {
		svc, router := setupBoardRouter(kim)
		svc.On("Get", mock.Anything, "b-1").Return(sampleBoard("b-1", nil), nil)

		resp := doJSON(router, http.MethodGet, "/boards/b-1", nil, nil)

		assert.Contains(t, resp.Body.String(), `"can_manage":true`)
	})

	t.Run("not found", func(t *testing.T) {
		svc, router := setupBoardRouter(nil)
		svc.On("Get", mock.Anything, "nope").Return(nil, service.ErrNotFound)

		resp := doJSON(router, http.MethodGet, "/boards/nope", nil, nil)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestBoardHandler_Mine(t *testing.T) {
	t.Run("lists caller's boards", func(t *testing.T) {
		svc, router := setupBoardRouter(kim)
		svc.On("ListByCreator", mock.Anything, kim, kim.UID).Return([]model.Board{*sampleBoard("b-2", nil), *sampleBoard("b-1", nil)}, nil)

		resp := doJSON(router, http.MethodGet, "/boards/mine", nil, nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		var body []handler.BoardResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, "b-2", body[0].ID)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, router := setupBoardRouter(nil)

		resp := doJSON(router, http.MethodGet, "/boards/mine", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestBoardHandler_UpdateSettings(t *testing.T) {
	// Arrange
	svc, router := setupBoardRouter(kim)
	theme := "ocean"
	updated := sampleBoard("b-1", nil)
	updated.Theme = theme
	svc.On("UpdateSettings", mock.Anything, kim, "b-1", service.SettingsInput{Theme: &theme}).Return(updated, nil)

	// Act
	resp := doJSON(router, http.MethodPatch, "/boards/b-1/settings", map[string]string{"theme": "ocean"}, nil)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"theme":"ocean"`)
	svc.AssertExpectations(t)
}

func TestBoardHandler_Delete(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "deleted", err: nil, status: http.StatusNoContent},
		{name: "not owner", err: service.ErrForbidden, status: http.StatusForbidden},
		{name: "missing", err: service.ErrNotFound, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := setupBoardRouter(kim)
			svc.On("Delete", mock.Anything, kim, "b-1").Return(tt.err)

			resp := doJSON(router, http.MethodDelete, "/boards/b-1", nil, nil)

			assert.Equal(t, tt.status, resp.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestBoardHandler_CheckAccess(t *testing.T) {
	svc, router := setupBoardRouter(nil)
	svc.On("CheckAccess", mock.Anything, "b-1", "xmas").Return(true, nil)
	svc.On("CheckAccess", mock.Anything, "b-1", "nope").Return(false, nil)

	granted := doJSON(router, http.MethodPost, "/boards/b-1/access", handler.AccessRequest{Password: "xmas"}, nil)
	denied := doJSON(router, http.MethodPost, "/boards/b-1/access", handler.AccessRequest{Password: "nope"}, nil)

	assert.Equal(t, http.StatusOK, granted.Code)
	assert.JSONEq(t, `{"granted":true}`, granted.Body.String())
	assert.Equal(t, http.StatusOK, denied.Code)
	assert.JSONEq(t, `{"granted":false}`, denied.Body.String())
}
