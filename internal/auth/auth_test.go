package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, exp, err := tm.GenerateToken("user-1", domain.RoleTechnician)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, domain.RoleTechnician, claims.Role)

	_, err = NewTokenManager("other", 5).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, _, err := tm.GenerateToken("user-1", domain.Role("ADMIN"))
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := tm.GenerateToken("user-1", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "hunter22"))
	assert.ErrorIs(t, ComparePassword(hash, "wrong"), ErrPasswordMismatch)
	assert.Error(t, ComparePassword("not-a-hash", "hunter22"))
	assert.NotErrorIs(t, ComparePassword("not-a-hash", "hunter22"), ErrPasswordMismatch)
}

func newProtectedApp(t *testing.T, roles ...domain.Role) (*fiber.App, *TokenManager, *repository.MemoryUserRepository) {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	tm := NewTokenManager("secret", 5)
	mw := NewAuthMiddleware(tm, users)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/me", mw.Handle, RequireRole(roles...), func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.SendString(principal.Caller().ID)
	})
	return app, tm, users
}

func TestAuthMiddleware(t *testing.T) {
	app, tm, users := newProtectedApp(t, domain.RoleTechnician)

	tech := &domain.User{Email: "t@example.com", Role: domain.RoleTechnician}
	cust := &domain.User{Email: "c@example.com", Role: domain.RoleCustomer}
	require.NoError(t, users.Create(context.Background(), tech))
	require.NoError(t, users.Create(context.Background(), cust))

	techToken, _, err := tm.GenerateToken(tech.ID, tech.Role)
	require.NoError(t, err)
	custToken, _, err := tm.GenerateToken(cust.ID, cust.Role)
	require.NoError(t, err)
	ghostToken, _, err := tm.GenerateToken("ghost", domain.RoleTechnician)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: fiber.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", status: fiber.StatusUnauthorized},
		{name: "unknown user", header: "Bearer " + ghostToken, status: fiber.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + custToken, status: fiber.StatusForbidden},
		{name: "ok", header: "Bearer " + techToken, status: fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
