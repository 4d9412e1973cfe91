// Package gate implements the site-availability gate: a pure decision
// function that maps the active site status, the requested path and the
// caller's privilege to allow/redirect, plus the privilege and status
// lookup contracts shared by both enforcement points (the edge
// middleware and the render-time site-config handler) so the bypass
// rules live in exactly one place.
package gate

import (
    "context"

    "github.com/canidoac/webcasares/internal/model"
)

// Decision is the outcome of one gate evaluation.
type Decision int

const (
    // Allow lets the request through to normal routing.
    Allow Decision = iota
    // RedirectMaintenance sends the visitor to the maintenance page.
    RedirectMaintenance
    // RedirectComingSoon sends the visitor to the coming-soon page.
    RedirectComingSoon
)

// String returns a short name for logging.
func (d Decision) String() string {
    switch d {
    case RedirectMaintenance:
        return "redirect_maintenance"
    case RedirectComingSoon:
        return "redirect_coming_soon"
    default:
        return "allow"
    }
}

// Redirect targets produced by the edge gate.
const (
    MaintenancePath = "/maintenance"
    ComingSoonPath  = "/coming-soon"
    LoginPath       = "/login"
    RegisterPath    = "/register"
    AdminLoginPath  = "/admin/login"
)

// maintenanceAllowed lists the paths a non-privileged visitor may still
// reach while the site is in maintenance: the maintenance page itself
// and the admin login, so operators can always get in to fix things.
var maintenanceAllowed = map[string]bool{
    MaintenancePath: true,
    AdminLoginPath:  true,
}

// comingSoonAllowed lists the paths reachable while the site is in
// coming-soon mode: the countdown page plus login/register, so early
// members can create accounts before launch.
var comingSoonAllowed = map[string]bool{
    ComingSoonPath: true,
    LoginPath:      true,
    RegisterPath:   true,
    AdminLoginPath: true,
}

// Evaluate decides what a visitor sees for a given path. It is pure:
// the same inputs always produce the same decision, and time-based
// transitions belong to the countdown component, not here.
//
// An empty or unknown status key evaluates to Allow. Failing open is
// deliberate: a missing config row or a broken status lookup must
// never take the whole site down.
func Evaluate(statusKey, path string, privileged bool) Decision {
    // Operators are never gated; they must be able to reach the site
    // (including the admin login) to fix configuration mid-incident.
    if privileged {
        return Allow
    }
    switch statusKey {
    case model.StatusMaintenance:
        if maintenanceAllowed[path] {
            return Allow
        }
        return RedirectMaintenance
    case model.StatusComingSoon:
        if comingSoonAllowed[path] {
            return Allow
        }
        return RedirectComingSoon
    default:
        // online, absent, or a future key the evaluator does not know.
        return Allow
    }
}

// RedirectTarget maps a non-Allow decision to its page path.
func RedirectTarget(d Decision) string {
    switch d {
    case RedirectMaintenance:
        return MaintenancePath
    case RedirectComingSoon:
        return ComingSoonPath
    default:
        return ""
    }
}

// StatusSource is the lookup contract consumed by both enforcement
// points. Active returns the active status definition, or nil when no
// status is configured (treated as online). Any error is mapped by the
// callers to fail-open behaviour plus a log line, never to a refused
// request.
type StatusSource interface {
    Active(ctx context.Context) (*model.SiteStatusDefinition, error)
}
