package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const minPasswordLength = 6

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
}

// NewUserInput describes a user to create.
type NewUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UpdateUserInput replaces every editable field of an existing user. The
// password is always re-hashed.
type UpdateUserInput struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterCustomer creates a customer account and signs it in.
func (s *AuthService) RegisterCustomer(ctx context.Context, input NewUserInput) (*domain.User, string, time.Time, error) {
	input.Role = domain.RoleCustomer
	user, err := s.CreateUser(ctx, input)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// CreateUser validates input and stores a new user with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, input NewUserInput) (*domain.User, error) {
	email, role, problems := validateAccount(input.Email, input.Password, input.Role)
	if err := apperrors.NewValidationErrors(problems); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, userStoreError(err, "", email)
	}
	return user, nil
}

// UpdateUser rewrites an existing user.
func (s *AuthService) UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	email, role, problems := validateAccount(input.Email, input.Password, input.Role)
	if strings.TrimSpace(input.ID) == "" {
		problems = append([]string{"id is required"}, problems...)
	}
	if err := apperrors.NewValidationErrors(problems); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:           input.ID,
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, userStoreError(err, input.ID, email)
	}
	return user, nil
}

// DeleteUser removes a user. Tickets the user opened or handled are kept.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return userStoreError(err, id, "")
	}
	return nil
}

// ListUsers returns a zero-based page of users, most recently created first.
func (s *AuthService) ListUsers(ctx context.Context, page, count int) (domain.Page[domain.User], error) {
	result, err := s.users.List(ctx, page, count)
	if err != nil {
		return domain.Page[domain.User]{}, apperrors.NewInternalError(err)
	}
	return result, nil
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userStoreError(err, id, "")
	}
	return user, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// EnsureTechnician creates the configured technician unless the email is
// already registered. It reports whether a user was created.
func (s *AuthService) EnsureTechnician(ctx context.Context, name, email, password string) (bool, error) {
	if email == "" {
		return false, nil
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if _, err := s.CreateUser(ctx, NewUserInput{Name: name, Email: email, Password: password, Role: domain.RoleTechnician}); err != nil {
		return false, err
	}
	return true, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func validateAccount(rawEmail, password string, rawRole domain.Role) (string, domain.Role, []string) {
	var problems []string
	email := strings.TrimSpace(rawEmail)
	if email == "" || !strings.Contains(email, "@") {
		problems = append(problems, "a valid email is required")
	}
	if len(password) < minPasswordLength {
		problems = append(problems, "password must be at least 6 characters")
	}
	role, ok := domain.ParseRole(string(rawRole))
	if !ok {
		problems = append(problems, "role must be CUSTOMER or TECHNICIAN")
	}
	return email, role, problems
}

func userStoreError(err error, id, email string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("user", map[string]any{"user_id": id})
	case errors.Is(err, repository.ErrConflict):
		return apperrors.NewConflict("email already registered", map[string]any{"email": email})
	default:
		return apperrors.NewInternalError(err)
	}
}
