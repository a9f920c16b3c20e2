package user

import (
	"context"
	"errors"

	"kopikasir/domain"
	"kopikasir/internal/repository/postgres"
	"kopikasir/pkg/logger"
	"kopikasir/pkg/utils"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidRole = errors.New("role must be ADMIN or CASHIER")

var validRoles = map[string]bool{
	domain.RoleAdmin:   true,
	domain.RoleCashier: true,
}

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	userRepo UserRepository
	validate *validator.Validate
}

func NewUserService(userRepo UserRepository, validate *validator.Validate) *userService {
	return &userService{
		userRepo: userRepo,
		validate: validate,
	}
}

// CreateUser is an admin action, accounts are never self-registered.
func (s *userService) CreateUser(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	if !validRoles[user.Role] {
		return domain.User{}, ErrInvalidRole
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existing.ID > 0 {
		return domain.User{}, postgres.ErrEmailTaken
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName: user.FullName,
		Email:    user.Email,
		Password: passwordHash,
		Role:     user.Role,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	if err := s.validate.Var(updateData.Email, "required,email"); err != nil {
		return domain.User{}, errors.New("invalid email format")
	}

	if !validRoles[updateData.Role] {
		return domain.User{}, ErrInvalidRole
	}

	updateData.ID = id
	if err := s.userRepo.Update(ctx, updateData); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	updated, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	updated.Password = ""
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}
