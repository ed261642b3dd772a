package repository

import (
	"context"

	"rollingpaper/internal/model"

	"gorm.io/gorm"
)

type LoginLogRepository struct {
	db *gorm.DB
}

func NewLoginLogRepository(db *gorm.DB) *LoginLogRepository {
	return &LoginLogRepository{db: db}
}

func (r *LoginLogRepository) Create(ctx context.Context, entry *model.LoginLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns every login, newest first.
func (r *LoginLogRepository) List(ctx context.Context) ([]model.LoginLog, error) {
	var logs []model.LoginLog
	err := r.db.WithContext(ctx).Order("login_at DESC").Find(&logs).Error
	return logs, err
}
