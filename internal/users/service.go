package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopmart-io/shopmart-backend/pkg/auth"
	"github.com/shopmart-io/shopmart-backend/pkg/config"
	"github.com/shopmart-io/shopmart-backend/pkg/db"
	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/security"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

const minPasswordLength = 8

// Service exposes account operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResultDTO, error)
	Login(ctx context.Context, email, password string) (*AuthResultDTO, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error)
}

// RegisterInput holds the validated payload to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput holds optional mutation values for a profile.
type UpdateProfileInput struct {
	Name      *string
	Phone     *string
	Avatar    *string
	Addresses *types.AddressList
}

// service implements the user service.
type service struct {
	repo        *Repository
	jwtConfig   config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService constructs a user service instance.
func NewService(repo *Repository, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{
		repo:        repo,
		jwtConfig:   jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

// Register hashes the password and creates a customer account.
func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResultDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	email := NormalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         enums.UserRoleCustomer,
		IsActive:     true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "users_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}

	return s.authResult(created)
}

// Login verifies credentials, stamps last_login_at and mints a token.
// Unknown email and wrong password share one message so the endpoint does
// not leak which accounts exist.
func (s *service) Login(ctx context.Context, email, password string) (*AuthResultDTO, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account is disabled")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	now := s.now()
	if err := s.repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: touch last login")
	}
	user.LastLoginAt = &now

	return s.authResult(user)
}

// GetProfile returns the account for the authenticated user.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return NewUserDTO(user), nil
}

// UpdateProfile applies the partial update, replacing the address list
// wholesale when provided.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}
	if input.Addresses != nil {
		for i, address := range *input.Addresses {
			if missing := address.Validate(); missing != "" {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "address is missing "+missing).
					WithDetails(map[string]any{"address_index": i, "field": missing})
			}
		}
		user.Addresses = *input.Addresses
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}
	return NewUserDTO(user), nil
}

func (s *service) authResult(user *models.User) (*AuthResultDTO, error) {
	token, err := auth.MintAccessToken(s.jwtConfig, s.now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &AuthResultDTO{User: *NewUserDTO(user), Token: token}, nil
}
