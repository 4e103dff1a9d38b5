package inkpress

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User      *User  `json:"user"`
	CsrfToken string `json:"csrf_token"`
}

// handleLogin validates a username/password pair and establishes the admin
// session. Failed attempts are rate-limited per IP and count against the
// limit; successes do not.
func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
	}
	var p loginPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	u, err := a.Store.Authenticate(p.Username, p.Password)
	if err != nil {
		if err == ErrNotFound {
			a.loginLimiter.Record(c.RealIP())
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		return err
	}
	if err := setUserSession(c, u); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: &u, CsrfToken: CsrfToken(c)})
}

func (a *App) handleLogout(c echo.Context) error {
	if err := clearUserSession(c); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// handleSession reports the current authenticated user (or null) together
// with the CSRF token mutating requests must echo back.
func (a *App) handleSession(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{
		User:      a.currentUser(c),
		CsrfToken: CsrfToken(c),
	})
}
