package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, h fiber.Handler) (int, Envelope) {
	t.Helper()
	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return resp.StatusCode, env
}

func TestSuccess(t *testing.T) {
	status, env := perform(t, func(c *fiber.Ctx) error {
		return Success(c, "done", fiber.Map{"n": 1})
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "done", env.Message)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Error)
}

func TestCreated(t *testing.T) {
	status, env := perform(t, func(c *fiber.Ctx) error {
		return Created(c, "made", nil)
	})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, env.Success)
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name string
		h    fiber.Handler
		code int
	}{
		{"BadRequest", func(c *fiber.Ctx) error { return BadRequest(c, "bad") }, fiber.StatusBadRequest},
		{"Unauthorized", func(c *fiber.Ctx) error { return Unauthorized(c, "bad") }, fiber.StatusUnauthorized},
		{"Forbidden", func(c *fiber.Ctx) error { return Forbidden(c, "bad") }, fiber.StatusForbidden},
		{"NotFound", func(c *fiber.Ctx) error { return NotFound(c, "bad") }, fiber.StatusNotFound},
		{"Conflict", func(c *fiber.Ctx) error { return Conflict(c, "bad") }, fiber.StatusConflict},
		{"InternalServerError", func(c *fiber.Ctx) error { return InternalServerError(c, "bad") }, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := perform(t, tc.h)
			assert.Equal(t, tc.code, status)
			assert.False(t, env.Success)
			assert.Equal(t, "bad", env.Error)
			assert.Empty(t, env.Message)
		})
	}
}
