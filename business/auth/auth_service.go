package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"kopikasir/domain"
	redisrepo "kopikasir/internal/repository/redis"
	"kopikasir/pkg/logger"
	"kopikasir/pkg/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// UserRepository contract interface
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// TokenRepository contract interface, backed by the Redis allow-list.
type TokenRepository interface {
	StoreToken(ctx context.Context, token string, data redisrepo.SessionData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (redisrepo.SessionData, error)
	RevokeToken(ctx context.Context, token string) error
}

type authService struct {
	userRepo  UserRepository
	tokenRepo TokenRepository
}

func NewAuthService(userRepo UserRepository, tokenRepo TokenRepository) *authService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// Login checks the credentials against the users table (soft-deleted
// users never match) and issues a JWT that is also registered in the
// Redis allow-list so logout can revoke it early.
func (s *authService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Warn("Login attempt for unknown email", "email", email)
		return "", domain.User{}, ErrInvalidCredentials
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Warn("Login attempt with wrong password", "email", email)
		return "", domain.User{}, ErrInvalidCredentials
	}

	userIDStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIDStr, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	now := time.Now()
	session := redisrepo.SessionData{
		UserID:    userIDStr,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(utils.TokenTTL()),
	}
	if err := s.tokenRepo.StoreToken(ctx, token, session, utils.TokenTTL()); err != nil {
		logger.Error("Failed to store session token", err)
		return "", domain.User{}, errors.New("failed to store session")
	}

	user.Password = ""
	return token, user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.tokenRepo.RevokeToken(ctx, token)
}

// ValidateToken is what the auth middleware runs per request: parse the
// JWT, check the Redis allow-list, then confirm the user still exists
// and is not soft-deleted.
func (s *authService) ValidateToken(ctx context.Context, token string) (domain.User, error) {
	claims, err := utils.ParseJWT(token)
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}

	expAt, err := claims.GetExpirationTime()
	if err != nil || time.Now().After(expAt.Time) {
		return domain.User{}, ErrInvalidToken
	}

	session, err := s.tokenRepo.ValidateToken(ctx, token)
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}

	if session.UserID != claims.UserID {
		logger.Error("UserID mismatch between JWT and session store")
		return domain.User{}, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, uint(userID))
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}

	user.Password = ""
	return user, nil
}
