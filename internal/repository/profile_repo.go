package repository

import (
	"context"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	FindOrCreate(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindOrCreate inserts the profile with the default role on first sight and
// returns the stored row. Existing roles are never overwritten.
func (r *profileRepository) FindOrCreate(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.Role == "" {
		profile.Role = models.RoleUser
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(profile).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, profile.ID)
}
