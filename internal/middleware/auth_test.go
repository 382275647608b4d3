package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"mentorlab/internal/config"
	"mentorlab/internal/logger"
	"mentorlab/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	if err := logger.Initialize(&config.Config{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	m.Run()
}

func signToken(t *testing.T, subject, role string, expiresAt time.Time) string {
	t.Helper()
	claims := &middleware.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", middleware.Protected(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals(middleware.UserIDKey),
			"role":    c.Locals(middleware.RoleKey),
		})
	})
	app.Post("/teacher-only",
		middleware.Protected(testSecret),
		middleware.RequireRole("teacher"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "missing header",
			authHeader:     "",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic abc123",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not-a-jwt",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer valid",
			expectedStatus: fiber.StatusOK,
		},
	}

	app := protectedApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := tt.authHeader
			switch header {
			case "Bearer expired":
				header = "Bearer " + signToken(t, "student1", "student", time.Now().Add(-time.Hour))
			case "Bearer valid":
				header = "Bearer " + signToken(t, "student1", "student", time.Now().Add(time.Hour))
			}

			req := httptest.NewRequest("GET", "/me", nil)
			if header != "" {
				req.Header.Set(middleware.AuthorizationHeader, header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRequireRole(t *testing.T) {
	app := protectedApp()

	studentToken := signToken(t, "student1", "student", time.Now().Add(time.Hour))
	teacherToken := signToken(t, "teacher1", "teacher", time.Now().Add(time.Hour))

	req := httptest.NewRequest("POST", "/teacher-only", nil)
	req.Header.Set(middleware.AuthorizationHeader, "Bearer "+studentToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("POST", "/teacher-only", nil)
	req.Header.Set(middleware.AuthorizationHeader, "Bearer "+teacherToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
