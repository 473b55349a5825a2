package repository

import (
	"context"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	FindBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*models.Order, error)
	List(ctx context.Context, page, size int, status *models.FulfillmentStatus) ([]models.Order, int64, error)
	GetDB() *gorm.DB
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *orderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*models.Order, error) {
	var order models.Order
	if err := tx.WithContext(ctx).
		Where("stripe_session_id = ?", sessionID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, page, size int, status *models.FulfillmentStatus) ([]models.Order, int64, error) {
	page, size = normalizePage(page, size)

	q := r.db.WithContext(ctx).Model(&models.Order{})
	if status != nil {
		q = q.Where("fulfillment_status = ?", *status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.Order("id DESC").Limit(size).Offset(page * size).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func normalizePage(page, size int) (int, int) {
	if size <= 0 || size > 100 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	return page, size
}
