package middleware

import (
    "log"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/gate"
    "github.com/canidoac/webcasares/internal/session"
)

// GateConfig wires the edge gate: the request-time enforcement point
// that runs before page routing for most paths, using only the cookie
// and a direct status lookup.
type GateConfig struct {
    // SessionSecret verifies the session cookie.
    SessionSecret string
    // Source performs the per-request status lookup.
    Source gate.StatusSource
    // Privileges decides which roles bypass the gate. Shared with the
    // render-time gate and RequireAdmin.
    Privileges gate.PrivilegeResolver
    // ExcludePrefixes are skipped entirely: API routes, static build
    // assets, image assets. Configured as a list, not per-request logic.
    ExcludePrefixes []string
    // ProtectedPrefixes require an authenticated session; guests are
    // redirected to the login page. Checked after the status gate.
    ProtectedPrefixes []string
    // AdminPrefix requires an authenticated session; guests are
    // redirected to the admin login. Checked after the status gate.
    AdminPrefix string
}

// DefaultExcludePrefixes lists the paths never evaluated by the gate.
var DefaultExcludePrefixes = []string{"/api/", "/static/", "/assets/", "/images/", "/favicon.ico"}

// EdgeGate returns the request-time availability gate. Evaluation
// order is fixed: status gate first, auth-route and protected-route
// redirects second, so a maintenance redirect always wins over an auth
// redirect for non-admin paths.
//
// Any status lookup failure is logged and treated as online: a broken
// lookup must never take the whole site down.
func EdgeGate(cfg GateConfig) echo.MiddlewareFunc {
    excludes := cfg.ExcludePrefixes
    if excludes == nil {
        excludes = DefaultExcludePrefixes
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            path := c.Request().URL.Path
            for _, p := range excludes {
                if strings.HasPrefix(path, p) {
                    return next(c)
                }
            }

            id, err := session.FromRequest(cfg.SessionSecret, c.Request())
            authenticated := err == nil
            privileged := authenticated && cfg.Privileges.IsPrivileged(id.RoleID)

            statusKey := ""
            if def, err := cfg.Source.Active(c.Request().Context()); err != nil {
                log.Printf("edge-gate: status lookup failed, failing open: %v", err)
            } else if def != nil {
                statusKey = def.StatusKey
            }

            if d := gate.Evaluate(statusKey, path, privileged); d != gate.Allow {
                return c.Redirect(http.StatusFound, gate.RedirectTarget(d))
            }

            // Unrelated checks sharing the enforcement point, ordered
            // strictly after the status gate.
            if authenticated && (path == gate.LoginPath || path == gate.RegisterPath) {
                return c.Redirect(http.StatusFound, "/")
            }
            if !authenticated {
                if cfg.AdminPrefix != "" && strings.HasPrefix(path, cfg.AdminPrefix) && path != gate.AdminLoginPath {
                    return c.Redirect(http.StatusFound, gate.AdminLoginPath)
                }
                for _, p := range cfg.ProtectedPrefixes {
                    if strings.HasPrefix(path, p) {
                        return c.Redirect(http.StatusFound, gate.LoginPath)
                    }
                }
            }
            return next(c)
        }
    }
}
