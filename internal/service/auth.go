package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/repo"
	"github.com/cashewtrade/marketplace/internal/transport"
	"github.com/cashewtrade/marketplace/pkg/hash"
	"github.com/cashewtrade/marketplace/pkg/tokens"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

// Register handles self-signup. Only buyers and sellers may sign themselves
// up; agents and admins are provisioned by an admin via CreateUser.
func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.Profile, error) {
	role, ok := models.ParseRole(req.Role)
	if !ok || (role != models.RoleBuyer && role != models.RoleSeller) {
		return nil, fmt.Errorf("%w: role must be buyer or seller", ErrValidation)
	}
	return s.createProfile(ctx, req.Email, req.Password, role, req.FullName, req.BusinessName, req.Phone)
}

// CreateUser is the admin provisioning path; any role is allowed.
func (s *AuthService) CreateUser(ctx context.Context, req transport.CreateUserRequest) (*models.Profile, error) {
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	return s.createProfile(ctx, req.Email, req.Password, role, req.FullName, req.BusinessName, req.Phone)
}

func (s *AuthService) createProfile(ctx context.Context, email, password string, role models.Role, fullName, businessName, phone string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
		IsActive:     true,
		FullName:     fullName,
		BusinessName: businessName,
		Phone:        phone,
	}
	if err := s.Repo.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*transport.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	profile, err := s.Repo.GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(profile.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !profile.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", ErrPermission)
	}

	return s.issueTokens(ctx, profile)
}

// Refresh rotates the refresh token and re-reads the profile so a role
// change or deactivation takes effect on the next rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*transport.TokenPair, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrPermission)
	}

	usable, err := s.Repo.RefreshTokenUsable(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: refresh token not found", ErrPermission)
		}
		return nil, err
	}
	if !usable {
		return nil, fmt.Errorf("%w: refresh token expired or revoked", ErrPermission)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrPermission)
	}
	profile, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", ErrPermission)
	}

	if err := s.Repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, profile)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, profile *models.Profile) (*transport.TokenPair, error) {
	now := time.Now()
	accessExp := now.Add(accessTTL)
	refreshExp := now.Add(refreshTTL)

	accessClaims := tokens.AccessClaims{
		Role: string(profile.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID.String(),
			ExpiresAt: jwt.NewNumericDate(accessExp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.JWTSecret)
	if err != nil {
		return nil, err
	}

	jti := tokens.NewJTI()
	refreshClaims := tokens.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID.String(),
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SaveRefreshToken(ctx, refreshToken, jti, profile.ID, refreshExp); err != nil {
		return nil, err
	}

	return &transport.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		Role:         string(profile.Role),
	}, nil
}
