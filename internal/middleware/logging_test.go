package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextMiddleware_CorrelationID(t *testing.T) {
	tests := []struct {
		name      string
		withRID   bool
		header    string
		wantExact string
	}{
		{"request id reused", true, "rid-42", "rid-42"},
		{"generated without request id", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			if tt.withRID {
				app.Use(requestid.New())
			}
			app.Use(ContextMiddleware())

			var got string
			app.Get("/", func(c *fiber.Ctx) error {
				got = observability.ExtractCorrelationID(c.UserContext())
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderXRequestID, tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			_ = resp.Body.Close()

			require.NotEmpty(t, got)
			if tt.wantExact != "" {
				assert.Equal(t, tt.wantExact, got)
			}
		})
	}
}
