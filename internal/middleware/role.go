package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/gate"
)

// RequireAuth rejects guests with 401. It assumes the Session
// middleware ran earlier in the chain.
func RequireAuth() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if _, ok := Identity(c); !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
            }
            return next(c)
        }
    }
}

// RequireAdmin rejects callers whose role is not in the privileged set
// with 403. It consumes the same PrivilegeResolver as the availability
// gate so "who is an operator" is defined in exactly one place.
func RequireAdmin(resolver gate.PrivilegeResolver) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            id, ok := Identity(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
            }
            if !resolver.IsPrivileged(id.RoleID) {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
