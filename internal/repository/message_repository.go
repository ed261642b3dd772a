package repository

import (
	"context"
	"errors"
	"strings"

	"rollingpaper/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// ListByBoard returns the board's messages, newest first.
// A non-empty search keeps messages whose author or content contains it, ignoring case.
func (r *MessageRepository) ListByBoard(ctx context.Context, boardID, search string) ([]model.Message, error) {
	var messages []model.Message
	q := r.db.WithContext(ctx).Where("board_id = ?", boardID)
	if search != "" {
		pattern := "%" + escapeLike(search) + "%"
		q = q.Where("author ILIKE ? OR content ILIKE ?", pattern, pattern)
	}
	err := q.Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) GetByID(ctx context.Context, boardID, id string) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).Where("id = ? AND board_id = ?", id, boardID).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// Create inserts the message and bumps the parent's message_count in one transaction.
func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Board{}).
			Where("id = ?", message.BoardID).
			UpdateColumn("message_count", gorm.Expr("message_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBoardNotFound
		}

		return tx.Create(message).Error
	})
}

// UpdateContent replaces the message text. Author and emoji are left untouched.
func (r *MessageRepository) UpdateContent(ctx context.Context, boardID, id, content string) error {
	result := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ? AND board_id = ?", id, boardID).
		Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// Delete removes the message and decrements the parent's message_count, never below zero.
func (r *MessageRepository) Delete(ctx context.Context, boardID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND board_id = ?", id, boardID).Delete(&model.Message{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMessageNotFound
		}

		return tx.Model(&model.Board{}).
			Where("id = ?", boardID).
			UpdateColumn("message_count", gorm.Expr("GREATEST(message_count - 1, 0)")).Error
	})
}

// AddHeart increments the heart counter in a single statement and returns the new value.
func (r *MessageRepository) AddHeart(ctx context.Context, boardID, id string) (int, error) {
	var message model.Message
	result := r.db.WithContext(ctx).Model(&message).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "hearts"}}}).
		Where("id = ? AND board_id = ?", id, boardID).
		UpdateColumn("hearts", gorm.Expr("hearts + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrMessageNotFound
	}
	return message.Hearts, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
