package repository

import (
	"context"
	"errors"

	"rollingpaper/internal/model"

	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create inserts a board whose id is already set.
func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	err := r.db.WithContext(ctx).Create(board).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrBoardExists
	}
	return err
}

// CreateIfAbsent inserts the board unless its id is already taken.
// A concurrent insert of the same id loses on the primary key and also yields ErrBoardExists.
func (r *BoardRepository) CreateIfAbsent(ctx context.Context, board *model.Board) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Board{}).Where("id = ?", board.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrBoardExists
		}
		return tx.Create(board).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrBoardExists
	}
	return err
}

func (r *BoardRepository) GetByID(ctx context.Context, id string) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

// List returns every board, newest first.
func (r *BoardRepository) List(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&boards).Error
	return boards, err
}

// ListByCreator returns the boards created by uid, newest first.
func (r *BoardRepository) ListByCreator(ctx context.Context, uid string) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Where("creator_uid = ?", uid).
		Order("created_at DESC").
		Find(&boards).Error
	return boards, err
}

// UpdateSettings applies a partial theme/font update.
func (r *BoardRepository) UpdateSettings(ctx context.Context, id string, settings map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Board{}).Where("id = ?", id).Updates(settings)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}

// Delete removes the board and all of its messages in one transaction.
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.Board{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
}
