package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blogworks/blog-api/internal/api/middleware"
	"github.com/blogworks/blog-api/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Auth middleware.
// An empty user id means the middleware did not run or the token
// carried no identity; reject with 401 before any service call.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	username, _ := c.Get(middleware.CtxUsername).(string)
	if userID == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Identity{UserID: userID, Username: username}, nil
}
