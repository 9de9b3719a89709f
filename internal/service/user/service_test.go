package user

import (
	"context"
	"testing"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/auth"
	domain "github.com/beginal/jeongsan-admin-sub000/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser domain.User) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == newUser.Email {
			return domain.User{}, domain.ErrUserEmailExists
		}
	}
	newUser.ID = "user-" + newUser.Email
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (domain.User, error) {
	u, err := f.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	provider := "google"
	u.OAuthProvider = &provider
	u.OAuthProviderID = &googleID
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = &passwordHash
	f.users[userID] = u
	return nil
}

func TestCreate_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	resp, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email:    "ops@example.com",
		Name:     "Ops Staff",
		Password: "password123",
		Role:     "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", resp.Email)
	assert.Equal(t, "staff", resp.Role)

	stored := repo.users[resp.ID]
	require.NotNil(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("password123")))
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	req := domain.CreateUserRequest{
		Email:    "dup@example.com",
		Name:     "First",
		Password: "password123",
		Role:     "admin",
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUserEmailExists)
}

func TestCreate_InvalidRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email:    "bad@example.com",
		Name:     "Bad Role",
		Password: "password123",
		Role:     "superuser",
	})
	assert.Error(t, err)
}

func TestChangePassword_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	resp, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email:    "rotate@example.com",
		Name:     "Rotate",
		Password: "oldpassword1",
		Role:     "staff",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), domain.ChangePasswordRequest{
		UserID:          resp.ID,
		CurrentPassword: "oldpassword1",
		NewPassword:     "newpassword1",
	})
	require.NoError(t, err)

	stored := repo.users[resp.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("newpassword1")))
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	resp, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email:    "wrong@example.com",
		Name:     "Wrong",
		Password: "oldpassword1",
		Role:     "staff",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), domain.ChangePasswordRequest{
		UserID:          resp.ID,
		CurrentPassword: "not-the-password",
		NewPassword:     "newpassword1",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestChangePassword_GoogleOnlyAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	provider := "google"
	repo.users["user-google"] = domain.User{
		ID:            "user-google",
		Email:         "sso@example.com",
		Name:          "SSO Only",
		Role:          domain.RoleStaff,
		OAuthProvider: &provider,
	}

	err := svc.ChangePassword(context.Background(), domain.ChangePasswordRequest{
		UserID:          "user-google",
		CurrentPassword: "anything",
		NewPassword:     "newpassword1",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestChangePassword_UserNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	err := svc.ChangePassword(context.Background(), domain.ChangePasswordRequest{
		UserID:          "missing",
		CurrentPassword: "password123",
		NewPassword:     "newpassword1",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
