package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            bcrypt.MinCost,
	}, AuthDependencies{UserRepo: repository.NewMemoryUserRepository()})
}

func TestRegisterCustomerAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	user, token, _, err := svc.RegisterCustomer(ctx, NewUserInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret1",
		Role:     domain.RoleTechnician,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role, "registration always yields a customer")
	assert.NotEqual(t, "secret1", user.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)

	loggedIn, _, _, err := svc.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, _, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	assertCode(t, err, apperrors.CodeUnauthorized)
	_, _, _, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assertCode(t, err, apperrors.CodeUnauthorized)
}

func TestCreateUserValidation(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.CreateUser(context.Background(), NewUserInput{Email: "nope", Password: "123", Role: "ADMIN"})
	assertCode(t, err, apperrors.CodeValidation)
	assert.Len(t, apperrors.ToDomainError(err).Details["errors"], 3)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	input := NewUserInput{Email: "tech@example.com", Password: "secret1", Role: domain.RoleTechnician}

	created, err := svc.CreateUser(ctx, input)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, input)
	assertCode(t, err, apperrors.CodeConflict)

	fetched, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTechnician, fetched.Role)

	_, err = svc.GetUser(ctx, "missing")
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestEnsureTechnician(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	created, err := svc.EnsureTechnician(ctx, "Ops", "", "secret1")
	require.NoError(t, err)
	assert.False(t, created, "no email configured")

	created, err = svc.EnsureTechnician(ctx, "Ops", "ops@example.com", "secret1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureTechnician(ctx, "Ops", "ops@example.com", "secret1")
	require.NoError(t, err)
	assert.False(t, created)

	user, _, _, err := svc.Login(ctx, "ops@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTechnician, user.Role)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	user, err := svc.CreateUser(ctx, NewUserInput{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: domain.RoleCustomer})
	require.NoError(t, err)
	other, err := svc.CreateUser(ctx, NewUserInput{Email: "bob@example.com", Password: "secret1", Role: domain.RoleCustomer})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, UpdateUserInput{
		ID:       user.ID,
		Name:     "Ada L",
		Email:    "ada@example.com",
		Password: "changed1",
		Role:     domain.RoleTechnician,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTechnician, updated.Role)
	assert.Equal(t, user.CreatedAt, updated.CreatedAt)
	assert.NotEqual(t, user.PasswordHash, updated.PasswordHash)

	_, _, _, err = svc.Login(ctx, "ada@example.com", "secret1")
	assertCode(t, err, apperrors.CodeUnauthorized)
	_, _, _, err = svc.Login(ctx, "ada@example.com", "changed1")
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, UpdateUserInput{ID: other.ID, Email: "ada@example.com", Password: "secret1", Role: domain.RoleCustomer})
	assertCode(t, err, apperrors.CodeConflict)

	_, err = svc.UpdateUser(ctx, UpdateUserInput{ID: "missing", Email: "x@example.com", Password: "secret1", Role: domain.RoleCustomer})
	assertCode(t, err, apperrors.CodeNotFound)

	_, err = svc.UpdateUser(ctx, UpdateUserInput{Email: "x@example.com", Password: "123", Role: domain.RoleCustomer})
	assertCode(t, err, apperrors.CodeValidation)
	assert.Equal(t, []string{"id is required", "password must be at least 6 characters"}, apperrors.ToDomainError(err).Details["errors"])
}

func TestDeleteAndListUsers(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	var ids []string
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		user, err := svc.CreateUser(ctx, NewUserInput{Email: email, Password: "secret1", Role: domain.RoleCustomer})
		require.NoError(t, err)
		ids = append(ids, user.ID)
	}

	page, err := svc.ListUsers(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)

	defaulted, err := svc.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, repository.DefaultPageSize, defaulted.PageSize)

	require.NoError(t, svc.DeleteUser(ctx, ids[0]))
	assertCode(t, svc.DeleteUser(ctx, ids[0]), apperrors.CodeNotFound)
	_, err = svc.GetUser(ctx, ids[0])
	assertCode(t, err, apperrors.CodeNotFound)

	page, err = svc.ListUsers(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
}
