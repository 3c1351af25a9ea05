package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Ricaps/tennis-club-reservations-management/internal/utils"
)

const testSecret = "test-secret"

func runJWT(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	reached := false
	next := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, JWTAuth(testSecret)(next)(c))
	return c, rec, reached
}

func TestJWTAuth(t *testing.T) {
	userUID := uuid.New()
	access, err := utils.NewAccessToken(testSecret, userUID, []string{"USER", "ADMIN"}, 5)
	require.NoError(t, err)

	t.Run("valid token populates context", func(t *testing.T) {
		c, _, reached := runJWT(t, "Bearer "+access.Token)
		require.True(t, reached)
		require.Equal(t, userUID.String(), c.Get("user_id"))
		require.Equal(t, []string{"USER", "ADMIN"}, c.Get("roles"))
	})

	t.Run("missing header rejected", func(t *testing.T) {
		_, rec, reached := runJWT(t, "")
		require.False(t, reached)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		other, err := utils.NewAccessToken("other-secret", userUID, []string{"USER"}, 5)
		require.NoError(t, err)
		_, rec, reached := runJWT(t, "Bearer "+other.Token)
		require.False(t, reached)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, rec, reached := runJWT(t, "Bearer not.a.jwt")
		require.False(t, reached)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	run := func(roles interface{}) (*httptest.ResponseRecorder, bool) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		if roles != nil {
			c.Set("roles", roles)
		}
		reached := false
		next := func(c echo.Context) error {
			reached = true
			return c.NoContent(http.StatusOK)
		}
		_ = RequireRole("ADMIN")(next)(c)
		return rec, reached
	}

	rec, reached := run(nil)
	require.False(t, reached)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec, reached = run([]string{"USER"})
	require.False(t, reached)
	require.Equal(t, http.StatusForbidden, rec.Code)

	_, reached = run([]string{"USER", "ADMIN"})
	require.True(t, reached)
}
