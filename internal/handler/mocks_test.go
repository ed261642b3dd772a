package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"rollingpaper/internal/middleware"
	"rollingpaper/internal/model"
	"rollingpaper/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) Create(ctx context.Context, caller *model.Identity, title, password string) (*model.Board, error) {
	args := m.Called(ctx, caller, title, password)
	return boardOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBoardService) CreateWithID(ctx context.Context, caller *model.Identity, id, title, password string) (*model.Board, error) {
	args := m.Called(ctx, caller, id, title, password)
	return boardOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBoardService) Get(ctx context.Context, id string) (*model.Board, error) {
	args := m.Called(ctx, id)
	return boardOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBoardService) List(ctx context.Context, caller *model.Identity) ([]model.Board, error) {
	args := m.Called(ctx, caller)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockBoardService) ListByCreator(ctx context.Context, caller *model.Identity, uid string) ([]model.Board, error) {
	args := m.Called(ctx, caller, uid)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockBoardService) UpdateSettings(ctx context.Context, caller *model.Identity, id string, in service.SettingsInput) (*model.Board, error) {
	args := m.Called(ctx, caller, id, in)
	return boardOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBoardService) Delete(ctx context.Context, caller *model.Identity, id string) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockBoardService) CheckAccess(ctx context.Context, id, password string) (bool, error) {
	args := m.Called(ctx, id, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockBoardService) CanManage(caller *model.Identity, board *model.Board) bool {
	return caller != nil && board.IsCreator(caller.UID)
}

func boardOrNil(v interface{}) *model.Board {
	board, _ := v.(*model.Board)
	return board
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) List(ctx context.Context, boardID, password, search string) ([]model.Message, error) {
	args := m.Called(ctx, boardID, password, search)
	messages, _ := args.Get(0).([]model.Message)
	return messages, args.Error(1)
}

func (m *MockMessageService) Add(ctx context.Context, caller *model.Identity, boardID, password string, in service.MessageInput) (*model.Message, error) {
	args := m.Called(ctx, caller, boardID, password, in)
	message, _ := args.Get(0).(*model.Message)
	return message, args.Error(1)
}

func (m *MockMessageService) Update(ctx context.Context, caller *model.Identity, boardID, messageID, content string) (*model.Message, error) {
	args := m.Called(ctx, caller, boardID, messageID, content)
	message, _ := args.Get(0).(*model.Message)
	return message, args.Error(1)
}

func (m *MockMessageService) Delete(ctx context.Context, caller *model.Identity, boardID, messageID string) error {
	return m.Called(ctx, caller, boardID, messageID).Error(0)
}

func (m *MockMessageService) AddHeart(ctx context.Context, boardID, messageID, password string) (int, error) {
	args := m.Called(ctx, boardID, messageID, password)
	return args.Int(0), args.Error(1)
}

type MockLoginService struct {
	mock.Mock
}

func (m *MockLoginService) SignIn(ctx context.Context, idToken string) (*service.Session, error) {
	args := m.Called(ctx, idToken)
	session, _ := args.Get(0).(*service.Session)
	return session, args.Error(1)
}

func (m *MockLoginService) IsAdmin(caller *model.Identity) bool {
	return m.Called(caller).Bool(0)
}

func (m *MockLoginService) List(ctx context.Context, caller *model.Identity) ([]model.LoginLog, error) {
	args := m.Called(ctx, caller)
	logs, _ := args.Get(0).([]model.LoginLog)
	return logs, args.Error(1)
}

var (
	kim   = &model.Identity{UID: "uid-kim", Email: "kim@example.com", DisplayName: "Kim"}
	admin = &model.Identity{UID: "uid-admin", Email: "admin@example.com", DisplayName: "Admin"}
)

// asCaller stands in for the auth middleware.
func asCaller(id *model.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != nil {
			c.Set(middleware.IdentityKey, id)
		}
		c.Next()
	}
}

func newRouter(caller *model.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asCaller(caller))
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}
