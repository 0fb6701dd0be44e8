package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recruitment-backend/lib/rbac"
	"recruitment-backend/models"
	apimodels "recruitment-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func token(t *testing.T, userID string, role models.UserRole, ttl time.Duration) string {
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(ttl).Unix(),
	})
	signed, err := tkn.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newApp() *fiber.App {
	app := fiber.New()
	api := app.Group("", authorizationRequired(testSecret), rbacMiddleware(rbac.NewInstance()))
	api.Post("/jobs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": GetUserID(c), "role": GetUserRole(c)})
	})
	api.Get("/ws", func(c *fiber.Ctx) error {
		return c.SendString(GetUserID(c))
	})
	return app
}

func errorMessage(t *testing.T, body []byte) string {
	resp := apimodels.Response{}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Message
}

func TestAuthorization(t *testing.T) {
	app := newApp()

	t.Run("no token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/jobs", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, "u1", models.UserRoleHR, -time.Minute))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("allowed role", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, "u1", models.UserRoleHR, time.Hour))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("forbidden role", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, "u2", models.UserRoleCandidate, time.Hour))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "Access denied", errorMessage(t, body))
	})

	t.Run("token in query", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ws?token="+token(t, "u3", models.UserRoleCandidate, time.Hour), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(10, "/upload"))
	handler := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Post("/data", handler)
	app.Post("/upload", handler)

	resp, err := app.Test(httptest.NewRequest("POST", "/data", strings.NewReader(strings.Repeat("x", 20))))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/upload", strings.NewReader(strings.Repeat("x", 20))))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
