package service

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mealtrack/backend-go/internal/config"
	"github.com/mealtrack/backend-go/internal/database/models"
	"github.com/mealtrack/backend-go/internal/database/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(email, password string) (*models.User, error)
	Login(email, password string) (*TokenDetails, error)
	ValidateAccessToken(tokenString string) (uint, error)
	UserByID(userID uint) (*models.User, error)
}

// TokenDetails carries an issued access token and its lifetime in seconds
type TokenDetails struct {
	AccessToken string
	ExpiresIn   int64
}

type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     cfg.JWTSecret,
		signingMethod: jwt.GetSigningMethod(cfg.JWTAlgorithm),
		tokenLifetime: time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute,
		logger:        logger,
	}
}

func (s *authService) Register(email, password string) (*models.User, error) {
	s.logger.Info("📝 [AuthService] Registration attempt", "email", email)

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}

	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
		return nil, ErrEmailAlreadyExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		// The unique index catches the race the pre-check above cannot
		if errors.Is(err, repository.ErrEmailTaken) {
			s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] User registered successfully", "user_id", user.ID)
	return user, nil
}

func (s *authService) Login(email, password string) (*TokenDetails, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	// Find user
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate token", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return &TokenDetails{
		AccessToken: token,
		ExpiresIn:   int64(s.tokenLifetime.Seconds()),
	}, nil
}

// ValidateAccessToken checks signature and expiry and extracts the subject.
// A token has exactly two observable states: valid and invalid.
func (s *authService) ValidateAccessToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}

// UserByID resolves a validated token subject to a user row. A subject
// pointing at a deleted user is reported as an invalid token, not as a
// missing user, so the /me endpoint never leaks account existence.
func (s *authService) UserByID(userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] Token subject no longer exists", "user_id", userID)
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) generateAccessToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(s.signingMethod, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// Service errors
var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
