package gate

import (
    "testing"

    "github.com/canidoac/webcasares/internal/model"
)

func TestEvaluate(t *testing.T) {
    cases := []struct {
        name       string
        statusKey  string
        path       string
        privileged bool
        want       Decision
    }{
        {"online allows everything", model.StatusOnline, "/tienda", false, Allow},
        {"online allows root", model.StatusOnline, "/", false, Allow},

        {"maintenance redirects root", model.StatusMaintenance, "/", false, RedirectMaintenance},
        {"maintenance redirects store", model.StatusMaintenance, "/tienda", false, RedirectMaintenance},
        {"maintenance redirects login", model.StatusMaintenance, LoginPath, false, RedirectMaintenance},
        {"maintenance redirects register", model.StatusMaintenance, RegisterPath, false, RedirectMaintenance},
        {"maintenance allows its own page", model.StatusMaintenance, MaintenancePath, false, Allow},
        {"maintenance allows admin login", model.StatusMaintenance, AdminLoginPath, false, Allow},
        {"maintenance redirects coming-soon page", model.StatusMaintenance, ComingSoonPath, false, RedirectMaintenance},

        {"coming_soon redirects root", model.StatusComingSoon, "/", false, RedirectComingSoon},
        {"coming_soon redirects store", model.StatusComingSoon, "/tienda", false, RedirectComingSoon},
        {"coming_soon allows its own page", model.StatusComingSoon, ComingSoonPath, false, Allow},
        {"coming_soon allows login", model.StatusComingSoon, LoginPath, false, Allow},
        {"coming_soon allows register", model.StatusComingSoon, RegisterPath, false, Allow},
        {"coming_soon allows admin login", model.StatusComingSoon, AdminLoginPath, false, Allow},
        {"coming_soon redirects maintenance page", model.StatusComingSoon, MaintenancePath, false, RedirectComingSoon},

        {"privileged bypasses maintenance", model.StatusMaintenance, "/", true, Allow},
        {"privileged bypasses coming_soon", model.StatusComingSoon, "/tienda", true, Allow},

        {"absent status fails open", "", "/", false, Allow},
        {"unknown status fails open", "half_open", "/", false, Allow},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            got := Evaluate(tc.statusKey, tc.path, tc.privileged)
            if got != tc.want {
                t.Errorf("Evaluate(%q, %q, %v) = %v, want %v",
                    tc.statusKey, tc.path, tc.privileged, got, tc.want)
            }
        })
    }
}

// The decision must depend only on its inputs: repeated evaluation with
// identical arguments yields identical results.
func TestEvaluateIsPure(t *testing.T) {
    first := Evaluate(model.StatusComingSoon, "/noticias", false)
    for i := 0; i < 100; i++ {
        if got := Evaluate(model.StatusComingSoon, "/noticias", false); got != first {
            t.Fatalf("evaluation %d returned %v, first returned %v", i, got, first)
        }
    }
}

func TestRedirectTarget(t *testing.T) {
    if got := RedirectTarget(RedirectMaintenance); got != MaintenancePath {
        t.Errorf("maintenance target = %q, want %q", got, MaintenancePath)
    }
    if got := RedirectTarget(RedirectComingSoon); got != ComingSoonPath {
        t.Errorf("coming-soon target = %q, want %q", got, ComingSoonPath)
    }
    if got := RedirectTarget(Allow); got != "" {
        t.Errorf("allow target = %q, want empty", got)
    }
}

func TestRoleSet(t *testing.T) {
    s := NewRoleSet("1", "2")

    cases := []struct {
        roleID string
        want   bool
    }{
        {"1", true},
        {"2", true},
        {"3", false},
        {"", false},
        {" 1", true},   // whitespace tolerated
        {"01", true},   // numeric forms collapse
        {"admin", false},
    }
    for _, tc := range cases {
        if got := s.IsPrivileged(tc.roleID); got != tc.want {
            t.Errorf("IsPrivileged(%q) = %v, want %v", tc.roleID, got, tc.want)
        }
    }
}

func TestRoleSetNonNumericIDs(t *testing.T) {
    s := NewRoleSet("admin", "developer")
    if !s.IsPrivileged("admin") || !s.IsPrivileged("developer") {
        t.Error("configured string roles must be privileged")
    }
    if s.IsPrivileged("member") {
        t.Error("unconfigured role must not be privileged")
    }
}
