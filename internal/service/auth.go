// Package service holds the business logic sitting between the HTTP
// handlers and the stores: authentication, quiz scoring and the AI
// question generator.
package service

import (
	"context"
	"errors"

	"github.com/quizforge/quizforge-go/internal/config"
	"github.com/quizforge/quizforge-go/internal/model"
	"github.com/quizforge/quizforge-go/internal/repository"
	"github.com/quizforge/quizforge-go/internal/utils"
)

// Sentinel errors translated to HTTP statuses by the auth handler.
// ErrInvalidCredentials covers both "no such user" and "wrong password" so
// responses do not reveal which one failed.  ErrInvalidRefresh likewise
// collapses every refresh failure (bad signature, expiry, wrong secret,
// vanished or disabled subject) into one value.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
)

// AuthResult is the response of register and login: a fresh token pair plus
// the sanitized user.
type AuthResult struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	User         model.UserView `json:"user"`
}

// AuthService orchestrates registration, login, refresh and profile
// retrieval on top of the user store and the token helpers.
type AuthService struct {
	users          repository.UserStore
	accessSecret   string
	refreshSecret  string
	accessTTLMin   int
	refreshTTLDays int
}

// NewAuthService wires the auth service from the user store and config.
func NewAuthService(users repository.UserStore, cfg config.Config) *AuthService {
	return &AuthService{
		users:          users,
		accessSecret:   cfg.AccessSecret,
		refreshSecret:  cfg.RefreshSecret,
		accessTTLMin:   cfg.AccessTTLMin,
		refreshTTLDays: cfg.RefreshTTLDays,
	}
}

// Register creates a regular active user and logs them straight in with a
// fresh token pair.  Duplicate email/username surface as the repository
// conflict sentinels.
func (s *AuthService) Register(ctx context.Context, email, password, username string) (*AuthResult, error) {
	user, err := s.users.Create(ctx, email, username, password, model.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issuePair(user)
}

// Login verifies credentials and issues a new token pair.  A disabled
// account with a correct email fails ErrAccountDisabled before the password
// is even checked; anything else wrong fails ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if err := s.users.Touch(ctx, user.ID); err != nil {
		return nil, err
	}
	return s.issuePair(user)
}

// Refresh verifies a refresh token against the refresh secret, re-checks
// that the subject still exists and is active, and returns a new access
// token.  The refresh token itself is not rotated; it stays valid until it
// naturally expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.VerifyToken(refreshToken, s.refreshSecret)
	if err != nil {
		return "", ErrInvalidRefresh
	}
	id, err := claims.UserID()
	if err != nil {
		return "", ErrInvalidRefresh
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if user == nil || !user.IsActive {
		return "", ErrInvalidRefresh
	}
	access, err := utils.NewAccessToken(s.accessSecret, user.ID, user.Email, user.Role, s.accessTTLMin)
	if err != nil {
		return "", err
	}
	return access.Token, nil
}

// CurrentUser returns the sanitized profile for an authenticated caller.
// ErrUserNotFound means the id inside a still-valid token no longer
// resolves.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint64) (model.UserView, error) {
	user, err := s.users.FindByIDOrFail(ctx, userID)
	if err != nil {
		return model.UserView{}, err
	}
	return user.View(), nil
}

func (s *AuthService) issuePair(user *model.User) (*AuthResult, error) {
	access, err := utils.NewAccessToken(s.accessSecret, user.ID, user.Email, user.Role, s.accessTTLMin)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.NewRefreshToken(s.refreshSecret, user.ID, user.Email, user.Role, s.refreshTTLDays)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		User:         user.View(),
	}, nil
}
