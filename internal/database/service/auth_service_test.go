package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mealtrack/backend-go/internal/config"
	"github.com/mealtrack/backend-go/internal/database/models"
	"github.com/mealtrack/backend-go/internal/database/repository"
)

// Password hash for "password" (bcrypt)
const validPasswordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func newAuthService(userRepo repository.UserRepository) AuthService {
	return NewAuthService(userRepo, testConfig(), testLogger())
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(*MockUserRepository)
		wantErr    error
		wantUserID uint
	}{
		{
			name:     "success",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByEmail", "test@example.com").Return(nil, repository.ErrUserNotFound)
				userRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
					user := args.Get(0).(*models.User)
					user.ID = 1
				}).Return(nil)
			},
			wantUserID: 1,
		},
		{
			name:     "email already exists",
			email:    "existing@example.com",
			password: "password123",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByEmail", "existing@example.com").Return(&models.User{ID: 1, Email: "existing@example.com"}, nil)
			},
			wantErr: ErrEmailAlreadyExists,
		},
		{
			name:     "unique index catches concurrent registration",
			email:    "race@example.com",
			password: "password123",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByEmail", "race@example.com").Return(nil, repository.ErrUserNotFound)
				userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repository.ErrEmailTaken)
			},
			wantErr: ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMocks(userRepo)

			user, err := newAuthService(userRepo).Register(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUserID, user.ID)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEqual(t, tt.password, user.Password, "password must be stored hashed")
			}

			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(*MockUserRepository)
		wantErr    error
	}{
		{
			name:     "success",
			email:    "test@example.com",
			password: "password",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByEmail", "test@example.com").Return(&models.User{
					ID:       1,
					Email:    "test@example.com",
					Password: validPasswordHash,
				}, nil)
			},
		},
		{
			name:     "user not found",
			email:    "nonexistent@example.com",
			password: "password",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByEmail", "nonexistent@example.com").Return(nil, repository.ErrUserNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByEmail", "test@example.com").Return(&models.User{
					ID:       1,
					Email:    "test@example.com",
					Password: validPasswordHash,
				}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMocks(userRepo)

			tokens, err := newAuthService(userRepo).Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.Equal(t, int64(30*60), tokens.ExpiresIn)
			}

			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", "test@example.com").Return(&models.User{
		ID:       42,
		Email:    "test@example.com",
		Password: validPasswordHash,
	}, nil)

	svc := newAuthService(userRepo)

	tokens, err := svc.Login("test@example.com", "password")
	require.NoError(t, err)

	userID, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func signToken(t *testing.T, claims jwt.Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	secret := testConfig().JWTSecret

	tests := []struct {
		name  string
		token string
	}{
		{
			name: "expired token with correct signature",
			token: signToken(t, jwt.RegisteredClaims{
				Subject:   "1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}, secret),
		},
		{
			name: "wrong secret",
			token: signToken(t, jwt.RegisteredClaims{
				Subject:   "1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}, "other-secret"),
		},
		{
			name: "missing subject",
			token: signToken(t, jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}, secret),
		},
		{
			name: "subject not an identifier",
			token: signToken(t, jwt.RegisteredClaims{
				Subject:   "not-a-number",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}, secret),
		},
		{
			name:  "malformed token",
			token: "not.a.jwt",
		},
	}

	svc := newAuthService(new(MockUserRepository))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Zero(t, userID)
		})
	}
}

func TestAuthService_UserByID(t *testing.T) {
	t.Run("resolves existing user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", uint(7)).Return(&models.User{ID: 7, Email: "a@x.com"}, nil)

		user, err := newAuthService(userRepo).UserByID(7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
	})

	t.Run("vanished user is an invalid token, not a missing user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", uint(7)).Return(nil, repository.ErrUserNotFound)

		user, err := newAuthService(userRepo).UserByID(7)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, user)
	})
}

func TestAuthService_ConfiguredAlgorithm(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:                "test-secret",
		JWTAlgorithm:             "HS512",
		AccessTokenExpireMinutes: 30,
	}

	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", "test@example.com").Return(&models.User{
		ID:       1,
		Email:    "test@example.com",
		Password: validPasswordHash,
	}, nil)

	svc := NewAuthService(userRepo, cfg, testLogger())

	tokens, err := svc.Login("test@example.com", "password")
	require.NoError(t, err)

	userID, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(1), userID)
}
