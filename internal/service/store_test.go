package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"rollingpaper/internal/model"
	"rollingpaper/internal/repository"

	"go.uber.org/zap"
)

// memStore is an in-memory stand-in for the Postgres repositories with the same error contract.
type memStore struct {
	mu       sync.Mutex
	boards   map[string]*model.Board
	messages map[string]map[string]*model.Message
	logs     []model.LoginLog
	clock    time.Time

	failLogs bool
}

func newMemStore() *memStore {
	return &memStore{
		boards:   map[string]*model.Board{},
		messages: map[string]map[string]*model.Message{},
		clock:    time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type memBoards struct{ *memStore }
type memMessages struct{ *memStore }
type memLogs struct{ *memStore }

func (s memBoards) Create(ctx context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[board.ID]; ok {
		return repository.ErrBoardExists
	}
	board.CreatedAt = s.tick()
	cp := *board
	s.boards[board.ID] = &cp
	return nil
}

func (s memBoards) CreateIfAbsent(ctx context.Context, board *model.Board) error {
	return s.Create(ctx, board)
}

func (s memBoards) GetByID(ctx context.Context, id string) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok {
		return nil, repository.ErrBoardNotFound
	}
	cp := *b
	return &cp, nil
}

func (s memBoards) List(ctx context.Context) ([]model.Board, error) {
	return s.filter(func(*model.Board) bool { return true }), nil
}

func (s memBoards) ListByCreator(ctx context.Context, uid string) ([]model.Board, error) {
	return s.filter(func(b *model.Board) bool { return b.IsCreator(uid) }), nil
}

func (s memBoards) filter(keep func(*model.Board) bool) []model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Board{}
	for _, b := range s.boards {
		if keep(b) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s memBoards) UpdateSettings(ctx context.Context, id string, settings map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok {
		return repository.ErrBoardNotFound
	}
	if v, ok := settings["theme"].(string); ok {
		b.Theme = v
	}
	if v, ok := settings["font"].(string); ok {
		b.Font = v
	}
	return nil
}

func (s memBoards) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, id)
	if _, ok := s.boards[id]; !ok {
		return repository.ErrBoardNotFound
	}
	delete(s.boards, id)
	return nil
}

func (s memMessages) ListByBoard(ctx context.Context, boardID, search string) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Message{}
	needle := strings.ToLower(search)
	for _, m := range s.messages[boardID] {
		if needle == "" ||
			strings.Contains(strings.ToLower(m.Author), needle) ||
			strings.Contains(strings.ToLower(m.Content), needle) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s memMessages) GetByID(ctx context.Context, boardID, id string) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[boardID][id]
	if !ok {
		return nil, repository.ErrMessageNotFound
	}
	cp := *m
	return &cp, nil
}

func (s memMessages) Create(ctx context.Context, message *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[message.BoardID]
	if !ok {
		return repository.ErrBoardNotFound
	}
	b.MessageCount++
	message.CreatedAt = s.tick()
	if s.messages[message.BoardID] == nil {
		s.messages[message.BoardID] = map[string]*model.Message{}
	}
	cp := *message
	s.messages[message.BoardID][message.ID] = &cp
	return nil
}

func (s memMessages) UpdateContent(ctx context.Context, boardID, id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[boardID][id]
	if !ok {
		return repository.ErrMessageNotFound
	}
	m.Content = content
	return nil
}

func (s memMessages) Delete(ctx context.Context, boardID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[boardID][id]; !ok {
		return repository.ErrMessageNotFound
	}
	delete(s.messages[boardID], id)
	if b, ok := s.boards[boardID]; ok {
		b.MessageCount = max(0, b.MessageCount-1)
	}
	return nil
}

func (s memMessages) AddHeart(ctx context.Context, boardID, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[boardID][id]
	if !ok {
		return 0, repository.ErrMessageNotFound
	}
	m.Hearts++
	return m.Hearts, nil
}

func (s memLogs) Create(ctx context.Context, entry *model.LoginLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLogs {
		return context.DeadlineExceeded
	}
	entry.LoginAt = s.tick()
	s.logs = append(s.logs, *entry)
	return nil
}

func (s memLogs) List(ctx context.Context) ([]model.LoginLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LoginLog, len(s.logs))
	for i := range s.logs {
		out[len(s.logs)-1-i] = s.logs[i]
	}
	return out, nil
}

const adminEmail = "admin@example.com"

var (
	alice = &model.Identity{UID: "uid-alice", Email: "alice@example.com", DisplayName: "Alice"}
	bob   = &model.Identity{UID: "uid-bob", Email: "bob@example.com", DisplayName: "Bob"}
	admin = &model.Identity{UID: "uid-admin", Email: "Admin@Example.com", DisplayName: "Admin"}
)

type fixture struct {
	store    *memStore
	boards   *BoardService
	messages *MessageService
}

func newFixture() *fixture {
	store := newMemStore()
	authz := NewAuthorizer([]string{adminEmail})
	log := zap.NewNop()
	return &fixture{
		store:    store,
		boards:   NewBoardService(memBoards{store}, authz, log),
		messages: NewMessageService(memBoards{store}, memMessages{store}, authz, log),
	}
}
