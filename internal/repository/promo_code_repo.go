package repository

import (
	"context"
	"strings"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"gorm.io/gorm"
)

type PromoCodeRepository interface {
	Create(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error
	Update(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.PromotionalCode, error)
	FindByCode(ctx context.Context, code string) (*models.PromotionalCode, error)
	FindAll(ctx context.Context) ([]models.PromotionalCode, error)
	IncrementUsage(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type promoCodeRepository struct {
	db *gorm.DB
}

func NewPromoCodeRepository(db *gorm.DB) PromoCodeRepository {
	return &promoCodeRepository{db: db}
}

func (r *promoCodeRepository) Create(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code.Events = nil
		if err := tx.Omit("Events").Create(code).Error; err != nil {
			return err
		}
		return replaceEvents(tx, code, eventIDs)
	})
}

func (r *promoCodeRepository) Update(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Events").Save(code).Error; err != nil {
			return err
		}
		return replaceEvents(tx, code, eventIDs)
	})
}

func replaceEvents(tx *gorm.DB, code *models.PromotionalCode, eventIDs []uint) error {
	events := make([]models.Event, 0, len(eventIDs))
	if len(eventIDs) > 0 {
		if err := tx.Where("id IN ?", eventIDs).Find(&events).Error; err != nil {
			return err
		}
	}
	if err := tx.Model(code).Association("Events").Replace(events); err != nil {
		return err
	}
	code.Events = events
	return nil
}

func (r *promoCodeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code := models.PromotionalCode{ID: id}
		if err := tx.Model(&code).Association("Events").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&models.PromotionalCode{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *promoCodeRepository) FindByID(ctx context.Context, id uint) (*models.PromotionalCode, error) {
	var code models.PromotionalCode
	if err := r.db.WithContext(ctx).Preload("Events").First(&code, id).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *promoCodeRepository) FindByCode(ctx context.Context, code string) (*models.PromotionalCode, error) {
	var promo models.PromotionalCode
	if err := r.db.WithContext(ctx).
		Preload("Events").
		Where("LOWER(code) = ?", strings.ToLower(strings.TrimSpace(code))).
		First(&promo).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promoCodeRepository) FindAll(ctx context.Context) ([]models.PromotionalCode, error) {
	var codes []models.PromotionalCode
	if err := r.db.WithContext(ctx).Preload("Events").Order("id ASC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// IncrementUsage bumps used_count unless the usage limit is already reached.
func (r *promoCodeRepository) IncrementUsage(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.PromotionalCode{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	return res.RowsAffected == 1, res.Error
}
