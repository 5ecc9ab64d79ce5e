package middlewares

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"campus_lost_found/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionChecker struct {
	mock.Mock
}

func (m *MockSessionChecker) CheckSessionTimeout(ctx context.Context, t string) (bool, error) {
	args := m.Called(t)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionChecker) ReconnectSession(ctx context.Context, t string) error {
	args := m.Called(t)
	return args.Error(0)
}

func TestSessionMiddleware(t *testing.T) {
	tk, err := token.GenerateJWT("member-9", "m@campus.edu", string(token.RoleMember), "test")
	require.NoError(t, err)

	checker := new(MockSessionChecker)
	app := fiber.New()
	app.Use(JWTMiddleware(), SessionMiddleware(checker))
	app.Get("/me", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	t.Run("valid session", func(t *testing.T) {
		checker.On("CheckSessionTimeout", tk).Return(false, nil).Once()
		checker.On("ReconnectSession", tk).Return(nil).Once()

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tk)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("expired session", func(t *testing.T) {
		checker.On("CheckSessionTimeout", tk).Return(true, nil).Once()

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tk)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("redis error", func(t *testing.T) {
		checker.On("CheckSessionTimeout", tk).Return(true, errors.New("redis down")).Once()

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tk)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	checker.AssertExpectations(t)
}
