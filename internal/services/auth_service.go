package services

import (
	"errors"
	"fmt"
	"time"

	"foodgram/internal/models"
	"foodgram/internal/repositories"
	"foodgram/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is how long an issued token stays valid unless configured otherwise.
const DefaultTokenTTL = 24 * time.Hour

// SignupInput is the write contract for registering a user.
type SignupInput struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,max=150"`
}

// LoginInput is the write contract for obtaining a token.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput is the write contract for replacing a password.
type ChangePasswordInput struct {
	NewPassword     string `json:"new_password" validate:"required,max=150"`
	CurrentPassword string `json:"current_password" validate:"required"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. A non-positive tokenTTL selects DefaultTokenTTL.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register validates in, hashes the password and stores the new user.
func (s *AuthService) Register(in SignupInput) (*UserView, error) {
	if fe := validation.Struct(in); fe != nil {
		return nil, newValidationError(fe.Field, "%s", fe.Message)
	}

	// The unique indexes stay authoritative; these checks only give a clearer error.
	if _, err := s.userRepo.GetByUsername(in.Username); err == nil {
		return nil, fmt.Errorf("%w: username '%s' already taken", ErrConflict, in.Username)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, translate(err, "failed to check username")
	}
	if _, err := s.userRepo.GetByEmail(in.Email); err == nil {
		return nil, fmt.Errorf("%w: email '%s' already registered", ErrConflict, in.Email)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, translate(err, "failed to check email")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashedPassword),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, translate(err, "failed to register user %s", in.Username)
	}
	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User registered")

	view := newUserView(*user, false)
	return &view, nil
}

// Login authenticates a user by email and returns a signed JWT.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", translate(err, "failed to load user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("Token validation failed")
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if id, _ := claims["user_id"].(string); id == "" {
		return nil, fmt.Errorf("invalid token: missing user_id")
	}
	return claims, nil
}

// ChangePassword replaces the password of userID after checking the current one.
func (s *AuthService) ChangePassword(userID string, in ChangePasswordInput) error {
	if fe := validation.Struct(in); fe != nil {
		return newValidationError(fe.Field, "%s", fe.Message)
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return translate(err, "user %s", userID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return newValidationError("current_password", "Wrong password.")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(userID, string(hashedPassword)); err != nil {
		return translate(err, "failed to change password of user %s", userID)
	}
	log.Info().Str("user_id", userID).Msg("Password changed")
	return nil
}
