package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/pkg/tokens"
)

// SaveRefreshToken stores the token hashed; the raw value never hits disk.
func (r *GormRepo) SaveRefreshToken(ctx context.Context, raw, jti string, userID uuid.UUID, exp time.Time) error {
	rec := models.RefreshToken{
		Token:     tokens.Sha256Hex(raw),
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: exp.Unix(),
	}
	return r.DB.WithContext(ctx).Create(&rec).Error
}

func (r *GormRepo) RefreshTokenUsable(ctx context.Context, raw string) (bool, error) {
	var rec models.RefreshToken
	err := r.DB.WithContext(ctx).Where("token = ?", tokens.Sha256Hex(raw)).First(&rec).Error
	if err != nil {
		return false, err
	}
	if rec.Revoked || rec.ExpiresAt < time.Now().Unix() {
		return false, nil
	}
	return true, nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, raw string) error {
	return r.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ?", tokens.Sha256Hex(raw)).
		Update("revoked", true).Error
}
