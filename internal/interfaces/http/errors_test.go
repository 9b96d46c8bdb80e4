package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pantry-api/internal/domain"
)

func TestErrorResponse_MapsDomainErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrNonPositiveQty, http.StatusBadRequest},
		{domain.ErrFuturePurchase, http.StatusBadRequest},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrDuplicate, http.StatusConflict},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrStaleWrite, http.StatusConflict},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			app := fiber.New()
			app.Get("/boom", func(c *fiber.Ctx) error {
				return errorResponse(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

// Wrapped errors must still map through errors.Is.
func TestErrorResponse_UnwrapsWrappedErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errorResponse(c, fmt.Errorf("resolving product: %w", domain.ErrNotFound))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
