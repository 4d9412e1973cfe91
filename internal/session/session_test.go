package session

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"
)

const testSecret = "test-secret"

func TestIssueParseRoundTrip(t *testing.T) {
    want := Identity{
        UserID:        42,
        RoleID:        "3",
        Email:         "socio@example.org",
        EmailVerified: true,
        FirstName:     "Ana",
        LastName:      "Ruiz",
    }
    token, exp, err := Issue(testSecret, want, time.Hour)
    if err != nil {
        t.Fatalf("Issue: %v", err)
    }
    if until := time.Until(exp); until < 55*time.Minute || until > 65*time.Minute {
        t.Errorf("expiry %v not within the requested hour", exp)
    }

    got, err := Parse(testSecret, token)
    if err != nil {
        t.Fatalf("Parse: %v", err)
    }
    if got != want {
        t.Errorf("Parse = %+v, want %+v", got, want)
    }
}

func TestIssueDefaultTTL(t *testing.T) {
    _, exp, err := Issue(testSecret, Identity{UserID: 1}, 0)
    if err != nil {
        t.Fatalf("Issue: %v", err)
    }
    if until := time.Until(exp); until < DefaultTTL-time.Minute || until > DefaultTTL+time.Minute {
        t.Errorf("expiry %v, want roughly %v from now", exp, DefaultTTL)
    }
}

func TestParseRejectsTamperedToken(t *testing.T) {
    token, _, err := Issue(testSecret, Identity{UserID: 7, RoleID: "3"}, time.Hour)
    if err != nil {
        t.Fatalf("Issue: %v", err)
    }
    // Flip a character in the payload segment; the signature no longer
    // matches.
    parts := strings.Split(token, ".")
    if len(parts) != 3 {
        t.Fatalf("token has %d segments, want 3", len(parts))
    }
    payload := []byte(parts[1])
    if payload[0] == 'A' {
        payload[0] = 'B'
    } else {
        payload[0] = 'A'
    }
    tampered := parts[0] + "." + string(payload) + "." + parts[2]

    if _, err := Parse(testSecret, tampered); err != ErrNoSession {
        t.Errorf("Parse(tampered) = %v, want ErrNoSession", err)
    }
}

func TestParseRejectsWrongSecret(t *testing.T) {
    token, _, err := Issue(testSecret, Identity{UserID: 7}, time.Hour)
    if err != nil {
        t.Fatalf("Issue: %v", err)
    }
    if _, err := Parse("another-secret", token); err != ErrNoSession {
        t.Errorf("Parse(wrong secret) = %v, want ErrNoSession", err)
    }
}

func TestParseRejectsExpiredToken(t *testing.T) {
    // A non-positive TTL falls back to the default, so use a tiny one
    // and let it lapse.
    expired, _, err := Issue(testSecret, Identity{UserID: 7}, time.Nanosecond)
    if err != nil {
        t.Fatalf("Issue: %v", err)
    }
    time.Sleep(10 * time.Millisecond)
    if _, err := Parse(testSecret, expired); err != ErrNoSession {
        t.Errorf("Parse(expired) = %v, want ErrNoSession", err)
    }
}

func TestParseEmptyToken(t *testing.T) {
    if _, err := Parse(testSecret, ""); err != ErrNoSession {
        t.Errorf("Parse(\"\") = %v, want ErrNoSession", err)
    }
}

func TestFromRequest(t *testing.T) {
    token, exp, err := Issue(testSecret, Identity{UserID: 9, RoleID: "1"}, time.Hour)
    if err != nil {
        t.Fatalf("Issue: %v", err)
    }

    req := httptest.NewRequest(http.MethodGet, "/", nil)
    req.AddCookie(NewCookie(token, exp))
    id, err := FromRequest(testSecret, req)
    if err != nil {
        t.Fatalf("FromRequest: %v", err)
    }
    if id.UserID != 9 || id.RoleID != "1" {
        t.Errorf("identity = %+v", id)
    }

    bare := httptest.NewRequest(http.MethodGet, "/", nil)
    if _, err := FromRequest(testSecret, bare); err != ErrNoSession {
        t.Errorf("FromRequest(no cookie) = %v, want ErrNoSession", err)
    }
}

func TestCookieAttributes(t *testing.T) {
    c := NewCookie("tok", time.Now().Add(time.Hour))
    if c.Name != CookieName || !c.HttpOnly || c.Path != "/" {
        t.Errorf("cookie = %+v", c)
    }
    dead := ExpiredCookie()
    if dead.MaxAge != -1 || dead.Value != "" {
        t.Errorf("expired cookie = %+v", dead)
    }
}
