package sec

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foliohq/folio/internal/storage/db"
)

// SessionCookieName is the cookie carrying the opaque session identifier.
const SessionCookieName = "adminSessionId"

// sessionContextKey is the echo context key holding the validated session.
const sessionContextKey = "adminSession"

// SessionCookie builds the session cookie for a freshly issued session.
// Secure should be set in production-equivalent environments.
func SessionCookie(sessionID string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearSessionCookie builds an expired cookie that removes the session cookie
// from the client.
func ClearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// RequireSession gates a route group on a valid session cookie. Requests
// without a cookie, or whose session fails validation, are rejected with a
// 401 before reaching the handler. A store failure during validation is not
// an authentication verdict and propagates as an internal error instead.
// Validated sessions are attached to the echo context for
// [SessionFromContext].
func RequireSession(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			session, err := svc.ValidateSession(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, ErrUnauthenticated) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session").SetInternal(err)
				}
				return err
			}
			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// SessionFromContext returns the validated session attached by
// [RequireSession]. The second return is false on ungated routes.
func SessionFromContext(c echo.Context) (db.Session, bool) {
	session, ok := c.Get(sessionContextKey).(db.Session)
	return session, ok
}
