package sec

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoke(t *testing.T, svc *Service, cookie *http.Cookie) (error, bool) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())

	called := false
	err := RequireSession(svc)(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return err, called
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	_, err := svc.CreateAccount(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)
	session, _, err := svc.Login(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)

	t.Run("valid session", func(t *testing.T) {
		err, called := invoke(t, svc, &http.Cookie{Name: SessionCookieName, Value: session.ID})
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("missing cookie", func(t *testing.T) {
		err, called := invoke(t, svc, nil)
		assert.False(t, called)
		var herr *echo.HTTPError
		require.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusUnauthorized, herr.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		err, called := invoke(t, svc, &http.Cookie{Name: SessionCookieName, Value: "not-a-session"})
		assert.False(t, called)
		var herr *echo.HTTPError
		require.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusUnauthorized, herr.Code)
	})

	// A store that cannot answer is not an authentication verdict: the error
	// must propagate as an internal failure, never as a 401.
	t.Run("store failure", func(t *testing.T) {
		require.NoError(t, store.Close())
		err, called := invoke(t, svc, &http.Cookie{Name: SessionCookieName, Value: session.ID})
		assert.False(t, called)
		require.Error(t, err)
		var herr *echo.HTTPError
		assert.False(t, errors.As(err, &herr))
	})
}
