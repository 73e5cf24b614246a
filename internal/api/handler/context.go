package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fast-fails before any service call: both claims must be present, which
// proves the middleware ran.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	if userID == "" || roleStr == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, domain.Role(roleStr), nil
}
