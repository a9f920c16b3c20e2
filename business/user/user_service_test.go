//go:build !integration

package user

import (
	"context"
	"testing"

	"kopikasir/domain"
	"kopikasir/internal/repository/postgres"
	"kopikasir/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return postgres.ErrEmailTaken
		}
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, postgres.ErrUserNotFound
	}
	return *user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return *user, nil
		}
	}
	return domain.User{}, postgres.ErrUserNotFound
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	existing, ok := f.users[user.ID]
	if !ok {
		return postgres.ErrUserNotFound
	}
	existing.FullName = user.FullName
	existing.Email = user.Email
	existing.Role = user.Role
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return postgres.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func newService(repo UserRepository) *userService {
	return NewUserService(repo, validator.New())
}

func TestCreateUser_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	created, err := svc.CreateUser(context.Background(), &domain.User{
		FullName: "Siti Rahma",
		Email:    "siti@example.com",
		Role:     domain.RoleCashier,
		Password: "rahasia123",
	})
	require.NoError(t, err)

	assert.Empty(t, created.Password, "response must not leak the password")

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", stored.Password)
	assert.True(t, utils.CheckPassword("rahasia123", stored.Password))
}

func TestCreateUser_RejectsInvalidInput(t *testing.T) {
	svc := newService(newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), &domain.User{
		FullName: "X", Email: "not-an-email", Role: domain.RoleAdmin, Password: "secret1",
	})
	assert.Error(t, err)

	_, err = svc.CreateUser(context.Background(), &domain.User{
		FullName: "X", Email: "x@example.com", Role: domain.RoleAdmin, Password: "short",
	})
	assert.Error(t, err)

	_, err = svc.CreateUser(context.Background(), &domain.User{
		FullName: "X", Email: "x@example.com", Role: "MANAGER", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreateUser_RejectsDuplicateEmail(t *testing.T) {
	svc := newService(newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), &domain.User{
		FullName: "A", Email: "dup@example.com", Role: domain.RoleAdmin, Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), &domain.User{
		FullName: "B", Email: "dup@example.com", Role: domain.RoleCashier, Password: "secret2",
	})
	assert.ErrorIs(t, err, postgres.ErrEmailTaken)
}

func TestGetAllUsers_BlanksPasswords(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	_, err := svc.CreateUser(context.Background(), &domain.User{
		FullName: "A", Email: "a@example.com", Role: domain.RoleAdmin, Password: "secret1",
	})
	require.NoError(t, err)

	users, err := svc.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)
}

func TestUpdateUser_ChangesRoleAndEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	created, err := svc.CreateUser(context.Background(), &domain.User{
		FullName: "A", Email: "a@example.com", Role: domain.RoleCashier, Password: "secret1",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(context.Background(), created.ID, &domain.User{
		FullName: "A Promoted", Email: "a@example.com", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, "A Promoted", updated.FullName)
}

func TestDeleteUser_UnknownID(t *testing.T) {
	svc := newService(newFakeUserRepo())

	err := svc.DeleteUser(context.Background(), 42)
	assert.ErrorIs(t, err, postgres.ErrUserNotFound)
}
