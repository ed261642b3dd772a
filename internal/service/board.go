package service

import (
	"context"
	"strings"

	"rollingpaper/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bcrypt ignores input past this length.
const maxPasswordBytes = 72

type BoardStorage interface {
	Create(ctx context.Context, board *model.Board) error
	CreateIfAbsent(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id string) (*model.Board, error)
	List(ctx context.Context) ([]model.Board, error)
	ListByCreator(ctx context.Context, uid string) ([]model.Board, error)
	UpdateSettings(ctx context.Context, id string, settings map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type BoardService struct {
	boards BoardStorage
	authz  *Authorizer
	log    *zap.Logger
	newID  func() string
}

func NewBoardService(boards BoardStorage, authz *Authorizer, log *zap.Logger) *BoardService {
	return &BoardService{
		boards: boards,
		authz:  authz,
		log:    log,
		newID:  uuid.NewString,
	}
}

type boardInput struct {
	ID       string `json:"id" validate:"omitempty,max=64,slug"`
	Title    string `json:"title" validate:"required,max=50"`
	Password string `json:"password"`
}

// SettingsInput is a partial update; nil fields are left alone.
type SettingsInput struct {
	Theme *string
	Font  *string
}

// Create makes a board with a generated id on behalf of a signed-in caller.
func (s *BoardService) Create(ctx context.Context, caller *model.Identity, title, password string) (*model.Board, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	board, err := s.newBoard(caller, boardInput{ID: s.newID(), Title: title, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, fromStore(err)
	}

	s.log.Info("board created", zap.String("board_id", board.ID), zap.String("creator_uid", caller.UID))
	return board, nil
}

// CreateWithID makes a board under a caller-chosen slug. Only admins may pick ids.
func (s *BoardService) CreateWithID(ctx context.Context, caller *model.Identity, id, title, password string) (*model.Board, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if !s.authz.IsAdmin(caller) {
		return nil, ErrForbidden
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, validationf("id is required")
	}

	board, err := s.newBoard(caller, boardInput{ID: id, Title: title, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.boards.CreateIfAbsent(ctx, board); err != nil {
		return nil, fromStore(err)
	}

	s.log.Info("board created", zap.String("board_id", board.ID), zap.String("creator_uid", caller.UID))
	return board, nil
}

func (s *BoardService) newBoard(caller *model.Identity, in boardInput) (*model.Board, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, validationf("password must be at most %d bytes", maxPasswordBytes)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, withKind(ErrStore, err)
	}

	board := &model.Board{
		ID:           in.ID,
		Title:        in.Title,
		PasswordHash: hash,
		Theme:        model.DefaultStyle,
		Font:         model.DefaultStyle,
		MessageCount: 0,
		CreatorUID:   optional(caller.UID),
		CreatorEmail: optional(caller.Email),
	}
	return board, nil
}

func (s *BoardService) Get(ctx context.Context, id string) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err)
	}
	return board, nil
}

// List returns every board, newest first. Admin only.
func (s *BoardService) List(ctx context.Context, caller *model.Identity) ([]model.Board, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if !s.authz.IsAdmin(caller) {
		return nil, ErrForbidden
	}

	boards, err := s.boards.List(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	return boards, nil
}

// ListByCreator returns the boards uid created, newest first. Callers see their own boards; admins see anyone's.
func (s *BoardService) ListByCreator(ctx context.Context, caller *model.Identity, uid string) ([]model.Board, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if caller.UID != uid && !s.authz.IsAdmin(caller) {
		return nil, ErrForbidden
	}

	boards, err := s.boards.ListByCreator(ctx, uid)
	if err != nil {
		return nil, fromStore(err)
	}
	return boards, nil
}

// UpdateSettings changes theme and/or font. Unknown identifiers fall back to the default style.
func (s *BoardService) UpdateSettings(ctx context.Context, caller *model.Identity, id string, in SettingsInput) (*model.Board, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err)
	}
	if !s.authz.CanManageBoard(caller, board) {
		return nil, ErrForbidden
	}

	settings := map[string]interface{}{}
	if in.Theme != nil {
		board.Theme = model.ResolveTheme(*in.Theme)
		settings["theme"] = board.Theme
	}
	if in.Font != nil {
		board.Font = model.ResolveFont(*in.Font)
		settings["font"] = board.Font
	}
	if len(settings) == 0 {
		return board, nil
	}

	if err := s.boards.UpdateSettings(ctx, id, settings); err != nil {
		return nil, fromStore(err)
	}
	return board, nil
}

// Delete removes the board together with its messages. Creator or admin only.
func (s *BoardService) Delete(ctx context.Context, caller *model.Identity, id string) error {
	if caller == nil {
		return ErrUnauthenticated
	}

	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return fromStore(err)
	}
	if !s.authz.CanManageBoard(caller, board) {
		return ErrForbidden
	}

	if err := s.boards.Delete(ctx, id); err != nil {
		return fromStore(err)
	}

	s.log.Info("board deleted", zap.String("board_id", id), zap.String("by_uid", caller.UID))
	return nil
}

// CheckAccess reports whether password opens the board.
func (s *BoardService) CheckAccess(ctx context.Context, id, password string) (bool, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return false, fromStore(err)
	}
	return CheckAccess(board, password), nil
}

// CanManage reports whether caller may change or delete board. caller may be nil.
func (s *BoardService) CanManage(caller *model.Identity, board *model.Board) bool {
	return s.authz.CanManageBoard(caller, board)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
