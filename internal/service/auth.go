package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/logger"
	"medishare-backend/internal/repository"
	"medishare-backend/internal/security"
)

type authService struct {
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	tokens       security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, settingsRepo repository.SettingsRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		tokens:       tokens,
	}
}

func (s *authService) Register(ctx context.Context, fullName, email, phone, password string) (*domain.User, string, string, error) {
	fields := make(map[string]string)
	if strings.TrimSpace(fullName) == "" {
		fields["full_name"] = "required"
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if strings.TrimSpace(phone) == "" {
		fields["phone"] = "required"
	}
	if len(password) < 6 {
		fields["password"] = "must be at least 6 characters"
	}
	if len(fields) > 0 {
		return nil, "", "", &domain.ValidationError{Fields: fields}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to load settings: %w", err)
	}
	if !settings.UserRegistration {
		return nil, "", "", &domain.ConflictError{Reason: "user registration is currently disabled"}
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", "", fmt.Errorf("user with email %s: %w", email, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: string(hash),
		Role:         domain.UserRoleUser,
		Status:       domain.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", fmt.Errorf("failed to create user: %w", err)
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}

	logger.Info("User registered", "user_id", user.ID)
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", domain.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn("Failed to record last login", "user_id", user.ID, "error", err)
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	return s.issueTokens(user)
}

func (s *authService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return access, refresh, nil
}
