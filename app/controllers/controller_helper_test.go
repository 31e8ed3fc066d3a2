package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentUserID(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": currentUserID(c)})
	})

	tests := []struct {
		name   string
		header string
		want   float64
	}{
		{name: "injected tenant id", header: "42", want: 42},
		{name: "missing header falls back", header: "", want: 1},
		{name: "garbage header falls back", header: "abc", want: 1},
		{name: "zero falls back", header: "0", want: 1},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/whoami", nil)
		if tt.header != "" {
			req.Header.Set("X-User-ID", tt.header)
		}

		resp, err := app.Test(req, -1)
		require.NoError(t, err, tt.name)

		var body map[string]float64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body), tt.name)
		assert.Equal(t, tt.want, body["user_id"], tt.name)
	}
}

func TestJsonError(t *testing.T) {
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "not_found", body["error"])
	assert.Equal(t, "Checkout not found", body["message"])
}
