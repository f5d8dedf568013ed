package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/repo"
)

const profilePageSize = 50

type ProfileService struct {
	Repo *repo.GormRepo
}

func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	p, err := s.Repo.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile %s", ErrNotFound, id)
		}
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) ListUsers(ctx context.Context, page int) (int64, []models.Profile, error) {
	if page < 1 {
		page = 1
	}
	return s.Repo.ListProfiles(ctx, profilePageSize, (page-1)*profilePageSize)
}

func (s *ProfileService) ActiveAgents(ctx context.Context) ([]models.Profile, error) {
	return s.Repo.ListActiveAgents(ctx)
}

// SetActive toggles a profile on or off. Deactivated accounts fail login
// and token refresh but keep their history.
func (s *ProfileService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Profile, error) {
	p, err := s.Repo.SetProfileActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile %s", ErrNotFound, id)
		}
		return nil, err
	}
	return p, nil
}
