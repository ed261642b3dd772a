package service

import (
	"context"
	"errors"
	"strings"

	"rollingpaper/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MessageStorage interface {
	ListByBoard(ctx context.Context, boardID, search string) ([]model.Message, error)
	GetByID(ctx context.Context, boardID, id string) (*model.Message, error)
	Create(ctx context.Context, message *model.Message) error
	UpdateContent(ctx context.Context, boardID, id, content string) error
	Delete(ctx context.Context, boardID, id string) error
	AddHeart(ctx context.Context, boardID, id string) (int, error)
}

type MessageService struct {
	boards   BoardStorage
	messages MessageStorage
	authz    *Authorizer
	log      *zap.Logger
	newID    func() string
}

func NewMessageService(boards BoardStorage, messages MessageStorage, authz *Authorizer, log *zap.Logger) *MessageService {
	return &MessageService{
		boards:   boards,
		messages: messages,
		authz:    authz,
		log:      log,
		newID:    uuid.NewString,
	}
}

// MessageInput is what a visitor writes on a board.
type MessageInput struct {
	Author  string `json:"author" validate:"required,max=20"`
	Emoji   string `json:"emoji" validate:"maxbytes=16"`
	Content string `json:"content" validate:"required,max=500"`
}

type contentInput struct {
	Content string `json:"content" validate:"required,max=500"`
}

// List returns the board's messages newest first, optionally filtered by search.
// A board that does not exist has no messages.
func (s *MessageService) List(ctx context.Context, boardID, password, search string) ([]model.Message, error) {
	if err := s.admit(ctx, boardID, password); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []model.Message{}, nil
		}
		return nil, err
	}

	messages, err := s.messages.ListByBoard(ctx, boardID, strings.TrimSpace(search))
	if err != nil {
		return nil, fromStore(err)
	}
	return messages, nil
}

// Add posts a message. caller may be nil for anonymous visitors.
func (s *MessageService) Add(ctx context.Context, caller *model.Identity, boardID, password string, in MessageInput) (*model.Message, error) {
	in.Author = strings.TrimSpace(in.Author)
	in.Emoji = strings.TrimSpace(in.Emoji)
	in.Content = strings.TrimSpace(in.Content)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.admit(ctx, boardID, password); err != nil {
		return nil, err
	}

	message := &model.Message{
		ID:      s.newID(),
		BoardID: boardID,
		Author:  in.Author,
		Emoji:   in.Emoji,
		Content: in.Content,
		Hearts:  0,
	}
	if caller != nil {
		message.AuthorUID = optional(caller.UID)
		message.AuthorEmail = optional(caller.Email)
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fromStore(err)
	}
	return message, nil
}

// Update replaces a message's content. Author or admin only.
func (s *MessageService) Update(ctx context.Context, caller *model.Identity, boardID, messageID, content string) (*model.Message, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	message, err := s.messages.GetByID(ctx, boardID, messageID)
	if err != nil {
		return nil, fromStore(err)
	}
	if !s.authz.CanModifyMessage(caller, message) {
		return nil, ErrForbidden
	}

	in := contentInput{Content: strings.TrimSpace(content)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if err := s.messages.UpdateContent(ctx, boardID, messageID, in.Content); err != nil {
		return nil, fromStore(err)
	}
	message.Content = in.Content
	return message, nil
}

// Delete removes a message. Author or admin only.
func (s *MessageService) Delete(ctx context.Context, caller *model.Identity, boardID, messageID string) error {
	if caller == nil {
		return ErrUnauthenticated
	}

	message, err := s.messages.GetByID(ctx, boardID, messageID)
	if err != nil {
		return fromStore(err)
	}
	if !s.authz.CanModifyMessage(caller, message) {
		return ErrForbidden
	}

	if err := s.messages.Delete(ctx, boardID, messageID); err != nil {
		return fromStore(err)
	}

	s.log.Info("message deleted",
		zap.String("board_id", boardID),
		zap.String("message_id", messageID),
		zap.String("by_uid", caller.UID),
	)
	return nil
}

// AddHeart adds one heart and returns the new total. Anyone who can read the board may do it, repeatedly.
func (s *MessageService) AddHeart(ctx context.Context, boardID, messageID, password string) (int, error) {
	if err := s.admit(ctx, boardID, password); err != nil {
		return 0, err
	}

	hearts, err := s.messages.AddHeart(ctx, boardID, messageID)
	if err != nil {
		return 0, fromStore(err)
	}
	return hearts, nil
}

func (s *MessageService) admit(ctx context.Context, boardID, password string) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return fromStore(err)
	}
	if !CheckAccess(board, password) {
		return ErrAccessDenied
	}
	return nil
}
