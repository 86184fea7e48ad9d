package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SONUshilla/CartBackend/internal/auth"
	"github.com/SONUshilla/CartBackend/internal/domain"
	apperrors "github.com/SONUshilla/CartBackend/pkg/errors"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = "user-1"
	}
	return args.Error(0)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newUserTestService(repo *mockUserRepository) *UserService {
	return NewUserService(repo, auth.NewJWTManager("test-secret", time.Hour), newTestLogger())
}

func TestRegister_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newUserTestService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	result, err := svc.Register(ctx, "Alice@Example.com", "s3cret-password")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.NotEmpty(t, result.Token)

	// The stored hash must verify against the original password.
	stored := repo.Calls[0].Arguments.Get(1).(*domain.User)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-password")))
}

func TestRegister_ShortPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newUserTestService(repo)

	_, err := svc.Register(context.Background(), "alice@example.com", "short")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	repo.AssertNotCalled(t, "Create")
}

func TestRegister_InvalidEmail(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newUserTestService(repo)

	_, err := svc.Register(context.Background(), "not-an-email", "s3cret-password")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newUserTestService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).
		Return(apperrors.AlreadyExists("user", "email", "alice@example.com"))

	_, err := svc.Register(ctx, "alice@example.com", "s3cret-password")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newUserTestService(repo)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetByEmail", ctx, "alice@example.com").Return(&domain.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}, nil)

	result, err := svc.Login(ctx, "alice@example.com", "s3cret-password")

	require.NoError(t, err)
	assert.Equal(t, "user-1", result.User.ID)
	assert.NotEmpty(t, result.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newUserTestService(repo)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetByEmail", ctx, "alice@example.com").Return(&domain.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}, nil)

	_, err = svc.Login(ctx, "alice@example.com", "wrong-password")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newUserTestService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "nobody@example.com").
		Return(nil, apperrors.NotFound("user", "nobody@example.com"))

	_, err := svc.Login(ctx, "nobody@example.com", "whatever-password")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCheckSession_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newUserTestService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "user-1").Return(&domain.User{ID: "user-1", Email: "alice@example.com"}, nil)

	user, err := svc.CheckSession(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestCheckSession_DeletedUser(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newUserTestService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "user-gone").Return(nil, apperrors.NotFound("user", "user-gone"))

	_, err := svc.CheckSession(ctx, "user-gone")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}
