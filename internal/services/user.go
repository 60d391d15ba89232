package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"

	"storefront-api/internal/logging"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/internal/telemetry"
)

// UserService manages both admin accounts and customer accounts. The two
// audiences share a table, discriminated by user type, and every operation
// here is scoped to one type so an admin lookup can never return a customer.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
}

func NewUserService(userRepo *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

type CreateUserInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone"`
}

type UpdateUserInput struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"is_active"`
}

func (s *UserService) Create(ctx context.Context, userType models.UserType, input CreateUserInput) (*models.User, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "user.create")
	defer span.End()

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email, userType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check email")
		logging.Error(ctx, "failed to check email", "error", err)
		return nil, err
	}
	if exists {
		span.RecordError(ErrEmailTaken)
		span.SetStatus(codes.Error, ErrEmailTaken.Error())
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to hash password")
		logging.Error(ctx, "failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Type:         userType,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create user")
		logging.Error(ctx, "failed to create user", "error", err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "user created")
	logging.Info(ctx, "user created", "userId", user.ID, "userType", string(userType))
	return user, nil
}

// RegisterCustomer creates a customer account and logs it straight in.
func (s *UserService) RegisterCustomer(ctx context.Context, input CreateUserInput) (*AuthResponse, error) {
	user, err := s.Create(ctx, models.UserTypeCustomer, input)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateToken(user.ID, models.UserTypeCustomer)
	if err != nil {
		logging.Error(ctx, "failed to generate token", "error", err)
		return nil, err
	}

	return &AuthResponse{User: user.ToResponse(), Token: token}, nil
}

func (s *UserService) Get(ctx context.Context, userType models.UserType, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id, userType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, userType models.UserType, page, limit int) ([]*models.User, PageMeta, error) {
	page, limit = NormalizePage(page, limit)

	total, err := s.userRepo.Count(ctx, userType)
	if err != nil {
		return nil, PageMeta{}, err
	}

	users, err := s.userRepo.List(ctx, userType, limit, (page-1)*limit)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return users, NewPageMeta(total, page, limit), nil
}

func (s *UserService) Update(ctx context.Context, userType models.UserType, id string, input UpdateUserInput) (*models.User, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "user.update")
	defer span.End()

	user, err := s.Get(ctx, userType, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email, userType)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update user")
		logging.Error(ctx, "failed to update user", "userId", id, "error", err)
		return nil, err
	}

	if input.Password != nil {
		hash, err := s.auth.HashPassword(*input.Password)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to hash password")
			logging.Error(ctx, "failed to hash password", "userId", id, "error", err)
			return nil, err
		}
		if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to update password")
			logging.Error(ctx, "failed to update password", "userId", id, "error", err)
			return nil, err
		}
		logging.Info(ctx, "password updated", "userId", id)
	}

	span.SetStatus(codes.Ok, "user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, userType models.UserType, id string) error {
	if _, err := s.Get(ctx, userType, id); err != nil {
		return err
	}

	if err := s.userRepo.SoftDelete(ctx, id); err != nil {
		logging.Error(ctx, "failed to delete user", "userId", id, "error", err)
		return err
	}

	logging.Info(ctx, "user deleted", "userId", id, "userType", string(userType))
	return nil
}
