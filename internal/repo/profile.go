package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cashewtrade/marketplace/internal/models"
)

func (r *GormRepo) CreateProfile(ctx context.Context, p *models.Profile) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) ListProfiles(ctx context.Context, limit, offset int) (int64, []models.Profile, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Profile{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Profile
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// ListActiveAgents backs the admin assignment picker.
func (r *GormRepo) ListActiveAgents(ctx context.Context) ([]models.Profile, error) {
	var agents []models.Profile
	if err := r.DB.WithContext(ctx).
		Where("role = ? AND is_active = ?", models.RoleAgent, true).
		Order("full_name ASC").
		Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *GormRepo) SetProfileActive(ctx context.Context, id uuid.UUID, active bool) (*models.Profile, error) {
	res := r.DB.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetProfile(ctx, id)
}
