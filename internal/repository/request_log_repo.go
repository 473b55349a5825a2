package repository

import (
	"context"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"gorm.io/gorm"
)

type RequestLogRepository interface {
	Create(ctx context.Context, entry *models.RequestLog) error
	List(ctx context.Context, page, size int) ([]models.RequestLog, int64, error)
}

type requestLogRepository struct {
	db *gorm.DB
}

func NewRequestLogRepository(db *gorm.DB) RequestLogRepository {
	return &requestLogRepository{db: db}
}

func (r *requestLogRepository) Create(ctx context.Context, entry *models.RequestLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *requestLogRepository) List(ctx context.Context, page, size int) ([]models.RequestLog, int64, error) {
	page, size = normalizePage(page, size)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.RequestLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.RequestLog
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(size).
		Offset(page * size).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
