package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		password    string
		exists      bool
		expectedErr error
	}{
		{name: "valid registration", email: " User@Example.com ", password: "SecureP@ssw0rd"},
		{name: "minimum valid password length", email: "user2@example.com", password: "12345678"},
		{name: "password too short", email: "user@example.com", password: "short", expectedErr: ErrPasswordTooShort},
		{name: "invalid email", email: "not-an-email", password: "SecureP@ssw0rd", expectedErr: ErrInvalidEmail},
		{name: "empty email", email: "", password: "SecureP@ssw0rd", expectedErr: ErrInvalidEmail},
		{name: "duplicate email", email: "taken@example.com", password: "SecureP@ssw0rd", exists: true, expectedErr: ErrUserAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, nil)
			normalized := NormalizeEmail(tt.email)

			repo.On("Exists", mock.Anything, normalized).Return(tt.exists, nil).Maybe()
			repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil).Maybe()

			u, err := svc.Register(context.Background(), tt.email, tt.password, "  Ada Lovelace ")

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, u)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, normalized, u.Email)
			assert.Equal(t, "Ada Lovelace", u.FullName)
			assert.True(t, u.IsActive)
			assert.NotEqual(t, tt.password, u.PasswordHash)
			assert.NoError(t, u.CheckPassword(tt.password))
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Login(t *testing.T) {
	stored := &User{ID: uuid.New(), Email: "user@example.com", IsActive: true}
	require.NoError(t, stored.SetPassword("SecureP@ssw0rd"))

	t.Run("success updates last login", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", mock.Anything, "user@example.com").Return(stored, nil)
		repo.On("Update", mock.Anything, stored).Return(nil)

		u, err := NewService(repo, nil).Login(context.Background(), "USER@example.com", "SecureP@ssw0rd")

		require.NoError(t, err)
		assert.NotNil(t, u.LastLoginAt)
		repo.AssertExpectations(t)
	})

	t.Run("update failure does not fail login", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", mock.Anything, "user@example.com").Return(stored, nil)
		repo.On("Update", mock.Anything, stored).Return(errors.New("db down"))

		_, err := NewService(repo, nil).Login(context.Background(), "user@example.com", "SecureP@ssw0rd")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", mock.Anything, "user@example.com").Return(stored, nil)

		_, err := NewService(repo, nil).Login(context.Background(), "user@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("unknown user looks like wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrUserNotFound)

		_, err := NewService(repo, nil).Login(context.Background(), "ghost@example.com", "SecureP@ssw0rd")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("inactive user", func(t *testing.T) {
		inactive := &User{ID: uuid.New(), Email: "off@example.com"}
		require.NoError(t, inactive.SetPassword("SecureP@ssw0rd"))
		repo := new(MockRepository)
		repo.On("GetByEmail", mock.Anything, "off@example.com").Return(inactive, nil)

		_, err := NewService(repo, nil).Login(context.Background(), "off@example.com", "SecureP@ssw0rd")
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}
