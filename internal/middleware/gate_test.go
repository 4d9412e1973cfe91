package middleware

import (
    "context"
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/gate"
    "github.com/canidoac/webcasares/internal/model"
    "github.com/canidoac/webcasares/internal/session"
)

const gateTestSecret = "gate-test-secret"

// fakeSource serves a fixed status definition, optionally failing, and
// counts lookups.
type fakeSource struct {
    def     *model.SiteStatusDefinition
    err     error
    lookups int
}

func (s *fakeSource) Active(context.Context) (*model.SiteStatusDefinition, error) {
    s.lookups++
    return s.def, s.err
}

func statusDef(key string) *model.SiteStatusDefinition {
    return &model.SiteStatusDefinition{ID: 1, StatusKey: key, Title: key}
}

func gateRequest(t *testing.T, cfg GateConfig, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    handler := EdgeGate(cfg)(func(c echo.Context) error {
        return c.String(http.StatusOK, "page")
    })

    req := httptest.NewRequest(http.MethodGet, path, nil)
    if cookie != nil {
        req.AddCookie(cookie)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if err := handler(c); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    return rec
}

func sessionCookie(t *testing.T, roleID string) *http.Cookie {
    t.Helper()
    token, exp, err := session.Issue(gateTestSecret, session.Identity{UserID: 1, RoleID: roleID}, time.Hour)
    if err != nil {
        t.Fatalf("issue session: %v", err)
    }
    return session.NewCookie(token, exp)
}

func baseConfig(src *fakeSource) GateConfig {
    return GateConfig{
        SessionSecret: gateTestSecret,
        Source:        src,
        Privileges:    gate.NewRoleSet("1", "2"),
    }
}

func TestEdgeGateMaintenanceRedirect(t *testing.T) {
    src := &fakeSource{def: statusDef(model.StatusMaintenance)}
    rec := gateRequest(t, baseConfig(src), "/tienda", nil)

    if rec.Code != http.StatusFound {
        t.Fatalf("status = %d, want 302", rec.Code)
    }
    if loc := rec.Header().Get("Location"); loc != gate.MaintenancePath {
        t.Errorf("location = %q, want %q", loc, gate.MaintenancePath)
    }
}

func TestEdgeGateComingSoonRedirect(t *testing.T) {
    src := &fakeSource{def: statusDef(model.StatusComingSoon)}
    rec := gateRequest(t, baseConfig(src), "/", nil)

    if rec.Code != http.StatusFound {
        t.Fatalf("status = %d, want 302", rec.Code)
    }
    if loc := rec.Header().Get("Location"); loc != gate.ComingSoonPath {
        t.Errorf("location = %q, want %q", loc, gate.ComingSoonPath)
    }
}

func TestEdgeGateAdminBypass(t *testing.T) {
    src := &fakeSource{def: statusDef(model.StatusMaintenance)}
    rec := gateRequest(t, baseConfig(src), "/tienda", sessionCookie(t, "1"))

    if rec.Code != http.StatusOK {
        t.Errorf("status = %d, want 200 for privileged visitor", rec.Code)
    }
}

func TestEdgeGateMemberNotPrivileged(t *testing.T) {
    src := &fakeSource{def: statusDef(model.StatusMaintenance)}
    rec := gateRequest(t, baseConfig(src), "/tienda", sessionCookie(t, "3"))

    if rec.Code != http.StatusFound {
        t.Errorf("status = %d, want 302 for ordinary member", rec.Code)
    }
}

func TestEdgeGateTamperedCookieIsGuest(t *testing.T) {
    src := &fakeSource{def: statusDef(model.StatusMaintenance)}
    forged := &http.Cookie{Name: session.CookieName, Value: "forged.role.claim"}
    rec := gateRequest(t, baseConfig(src), "/tienda", forged)

    if rec.Code != http.StatusFound {
        t.Errorf("status = %d, want 302 for unverifiable cookie", rec.Code)
    }
}

func TestEdgeGateExclusions(t *testing.T) {
    paths := []string{"/api/news", "/static/app.css", "/assets/app.js", "/images/crest.png", "/favicon.ico"}
    for _, p := range paths {
        src := &fakeSource{def: statusDef(model.StatusMaintenance)}
        rec := gateRequest(t, baseConfig(src), p, nil)
        if rec.Code != http.StatusOK {
            t.Errorf("%s: status = %d, want 200 (excluded)", p, rec.Code)
        }
        if src.lookups != 0 {
            t.Errorf("%s: %d status lookups, want 0 for excluded path", p, src.lookups)
        }
    }
}

func TestEdgeGateFailsOpen(t *testing.T) {
    src := &fakeSource{err: errors.New("db down")}
    rec := gateRequest(t, baseConfig(src), "/tienda", nil)

    if rec.Code != http.StatusOK {
        t.Errorf("status = %d, want 200 when the lookup fails", rec.Code)
    }
}

func TestEdgeGateNoStatusConfigured(t *testing.T) {
    src := &fakeSource{}
    rec := gateRequest(t, baseConfig(src), "/", nil)

    if rec.Code != http.StatusOK {
        t.Errorf("status = %d, want 200 when no status is configured", rec.Code)
    }
}

// The status gate runs before the auth redirects: during maintenance a
// guest hitting a protected page lands on /maintenance, not /login.
func TestEdgeGateStatusBeforeAuthRedirect(t *testing.T) {
    src := &fakeSource{def: statusDef(model.StatusMaintenance)}
    cfg := baseConfig(src)
    cfg.ProtectedPrefixes = []string{"/socio"}
    rec := gateRequest(t, cfg, "/socio/carnet", nil)

    if rec.Code != http.StatusFound {
        t.Fatalf("status = %d, want 302", rec.Code)
    }
    if loc := rec.Header().Get("Location"); loc != gate.MaintenancePath {
        t.Errorf("location = %q, want %q", loc, gate.MaintenancePath)
    }
}

func TestEdgeGateGuestProtectedRedirect(t *testing.T) {
    src := &fakeSource{def: statusDef(model.StatusOnline)}
    cfg := baseConfig(src)
    cfg.ProtectedPrefixes = []string{"/socio"}
    rec := gateRequest(t, cfg, "/socio/carnet", nil)

    if rec.Code != http.StatusFound {
        t.Fatalf("status = %d, want 302", rec.Code)
    }
    if loc := rec.Header().Get("Location"); loc != gate.LoginPath {
        t.Errorf("location = %q, want %q", loc, gate.LoginPath)
    }
}

func TestEdgeGateGuestAdminRedirect(t *testing.T) {
    src := &fakeSource{def: statusDef(model.StatusOnline)}
    cfg := baseConfig(src)
    cfg.AdminPrefix = "/admin"
    rec := gateRequest(t, cfg, "/admin/estados", nil)

    if rec.Code != http.StatusFound {
        t.Fatalf("status = %d, want 302", rec.Code)
    }
    if loc := rec.Header().Get("Location"); loc != gate.AdminLoginPath {
        t.Errorf("location = %q, want %q", loc, gate.AdminLoginPath)
    }

    // The admin login itself stays reachable for guests.
    rec = gateRequest(t, cfg, gate.AdminLoginPath, nil)
    if rec.Code != http.StatusOK {
        t.Errorf("admin login: status = %d, want 200", rec.Code)
    }
}

func TestEdgeGateAuthenticatedLeavesLogin(t *testing.T) {
    src := &fakeSource{def: statusDef(model.StatusOnline)}
    rec := gateRequest(t, baseConfig(src), gate.LoginPath, sessionCookie(t, "3"))

    if rec.Code != http.StatusFound {
        t.Fatalf("status = %d, want 302", rec.Code)
    }
    if loc := rec.Header().Get("Location"); loc != "/" {
        t.Errorf("location = %q, want /", loc)
    }
}
