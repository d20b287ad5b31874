package app

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/foliohq/folio/internal/sec"
	"github.com/foliohq/folio/internal/storage"
)

type handler struct {
	logger *slog.Logger
	svc    *sec.Service
	store  storage.Store
	valid  *validator
	secure bool
}

// register wires every API route. Each endpoint is registered exactly once;
// mutating routes hang off the session-gated admin group.
func (h handler) register(srv *echo.Echo) {
	api := srv.Group("/api")
	admin := api.Group("", sec.RequireSession(h.svc))

	api.POST("/auth/login", h.login)
	api.POST("/auth/logout", h.logout)
	admin.GET("/auth/me", h.me)

	api.GET("/navigation", h.listNavigation)
	admin.POST("/navigation", h.createNavigation)
	admin.PUT("/navigation/:id", h.updateNavigation)
	admin.DELETE("/navigation/:id", h.deleteNavigation)

	api.GET("/content/:sectionKey", h.getContentSection)
	admin.PUT("/content/:sectionKey", h.putContentSection)

	api.GET("/blog", h.listBlogPosts)
	api.GET("/blog/:id", h.getBlogPost)
	admin.POST("/blog", h.createBlogPost)
	admin.PUT("/blog/:id", h.updateBlogPost)
	admin.DELETE("/blog/:id", h.deleteBlogPost)

	api.GET("/experience", h.listExperiences)
	admin.POST("/experience", h.createExperience)
	admin.PUT("/experience/:id", h.updateExperience)
	admin.DELETE("/experience/:id", h.deleteExperience)

	api.GET("/education", h.listEducation)
	admin.POST("/education", h.createEducation)
	admin.PUT("/education/:id", h.updateEducation)
	admin.DELETE("/education/:id", h.deleteEducation)

	api.GET("/skills", h.listSkills)
	admin.POST("/skills", h.createSkill)
	admin.DELETE("/skills/:id", h.deleteSkill)
	admin.POST("/skills/categories", h.createSkillCategory)
	admin.DELETE("/skills/categories/:id", h.deleteSkillCategory)

	api.GET("/projects", h.listProjects)
	admin.POST("/projects", h.createProject)
	admin.PUT("/projects/:id", h.updateProject)
	admin.DELETE("/projects/:id", h.deleteProject)

	api.GET("/profile", h.getProfile)
	admin.PUT("/profile", h.putProfile)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h handler) login(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password required")
	}

	session, user, err := h.svc.Login(c.Request().Context(), creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, sec.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials").SetInternal(err)
		}
		return err
	}

	c.SetCookie(sec.SessionCookie(session.ID, h.secure))
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

// logout tolerates a missing or stale cookie: the outcome the client wants is
// "not logged in", which is already true.
func (h handler) logout(c echo.Context) error {
	if cookie, err := c.Cookie(sec.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.svc.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	c.SetCookie(sec.ClearSessionCookie(h.secure))
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h handler) me(c echo.Context) error {
	session, ok := sec.SessionFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	acct, err := h.store.GetAccount(c.Request().Context(), session.AccountID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user": sec.User{ID: acct.ID, Username: acct.Username},
	})
}

// decode validates the request body against the named entity schema before
// unmarshaling it, so handlers only ever see well-formed payloads.
func (h handler) decode(c echo.Context, schema string, into any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body").SetInternal(err)
	}
	if err := h.valid.validate(schema, body); err != nil {
		return httpError(err)
	}
	if err := json.Unmarshal(body, into); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed payload").SetInternal(err)
	}
	return nil
}

// httpError maps storage and validation errors onto API status codes.
func httpError(err error) error {
	var perr *payloadError
	switch {
	case errors.As(err, &perr):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":   "Invalid payload",
			"details": perr.details,
		})
	case errors.Is(err, storage.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, storage.ErrAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, "Already exists")
	default:
		return err
	}
}

func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
