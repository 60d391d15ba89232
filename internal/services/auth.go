package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"storefront-api/internal/logging"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/internal/telemetry"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// AuthService signs and verifies tokens for two separate audiences. Admin
// and customer tokens use different secrets, so a token minted for one
// audience can never pass validation for the other.
type AuthService struct {
	userRepo *repository.UserRepository
	secrets  map[models.UserType]string
	expiry   map[models.UserType]time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, adminSecret string, adminExpiry time.Duration, customerSecret string, customerExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secrets: map[models.UserType]string{
			models.UserTypeAdmin:    adminSecret,
			models.UserTypeCustomer: customerSecret,
		},
		expiry: map[models.UserType]time.Duration{
			models.UserTypeAdmin:    adminExpiry,
			models.UserTypeCustomer: customerExpiry,
		},
	}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  models.UserResponse `json:"user"`
	Token string              `json:"token"`
}

func (s *AuthService) Login(ctx context.Context, userType models.UserType, input LoginInput) (*AuthResponse, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "auth.login")
	defer span.End()

	user, err := s.userRepo.FindByEmail(ctx, input.Email, userType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			span.RecordError(ErrInvalidCredentials)
			span.SetStatus(codes.Error, ErrInvalidCredentials.Error())
			return nil, ErrInvalidCredentials
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to find user")
		logging.Error(ctx, "failed to find user", "error", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		span.RecordError(ErrInvalidCredentials)
		span.SetStatus(codes.Error, ErrInvalidCredentials.Error())
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		span.RecordError(ErrAccountDisabled)
		span.SetStatus(codes.Error, ErrAccountDisabled.Error())
		return nil, ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logging.Warn(ctx, "failed to record last login", "userId", user.ID, "error", err)
	}

	token, err := s.GenerateToken(user.ID, userType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to generate token")
		logging.Error(ctx, "failed to generate token", "error", err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "user logged in")
	logging.Info(ctx, "user logged in", "userId", user.ID, "userType", string(userType))

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

func (s *AuthService) GenerateToken(userID string, userType models.UserType) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   userID,
		"user_type": string(userType),
		"exp":       time.Now().Add(s.expiry[userType]).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secrets[userType]))
}

// ValidateToken verifies a token against the given audience's secret and
// returns the subject user id.
func (s *AuthService) ValidateToken(tokenString string, userType models.UserType) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secrets[userType]), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	userID, _ := claims["user_id"].(string)
	claimedType, _ := claims["user_type"].(string)
	if userID == "" || claimedType != string(userType) {
		return "", errors.New("invalid token")
	}
	return userID, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
