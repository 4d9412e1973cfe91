package middleware // middleware provides shared request processing for handlers

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/session"
)

// identityKey is the context key under which the verified session
// identity is stored.
const identityKey = "identity"

// Session returns middleware that reads and verifies the signed session
// cookie and stores the resulting identity in the request context.
// Guests (no cookie, bad signature, expired token) pass through with no
// identity set; rejecting them is the job of RequireAuth/RequireAdmin
// on the routes that need it.
func Session(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            id, err := session.FromRequest(secret, c.Request())
            if err == nil {
                c.Set(identityKey, id)
                // Plain string copies for consumers that only need the
                // ids (rate-limit keys, logs).
                c.Set("user_id", strconv.FormatUint(id.UserID, 10))
                c.Set("role_id", id.RoleID)
            }
            return next(c)
        }
    }
}

// Identity retrieves the verified session identity from context. The
// second return value is false for guests.
func Identity(c echo.Context) (session.Identity, bool) {
    v := c.Get(identityKey)
    id, ok := v.(session.Identity)
    return id, ok
}
