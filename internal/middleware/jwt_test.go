package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moritzgrimm/gigbook/internal/utils"
)

func TestJWTAuth(t *testing.T) {
	t.Parallel()
	const secret = "test-secret"

	e := echo.New()
	handler := JWTAuth(secret)(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("staff").(string))
	})

	do := func(auth string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		return rec
	}

	t.Run("valid token", func(t *testing.T) {
		tok, err := utils.NewAccessToken(secret, "moritz", 5)
		require.NoError(t, err)
		rec := do("Bearer " + tok.Token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "moritz", rec.Body.String(), "subject injected as staff identity")
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("").Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("Token abc").Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other-secret", "moritz", 5)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, do("Bearer "+tok.Token).Code)
	})
}
