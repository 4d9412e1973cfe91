// Package session issues and verifies the signed session cookie. The
// cookie carries an HS256 JWT whose claims describe the caller; every
// read verifies the signature, so a tampered or hand-crafted cookie is
// treated as a guest rather than trusted.
package session

import (
    "errors"
    "fmt"
    "net/http"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the session cookie set on login/register.
const CookieName = "session"

// DefaultTTL is the session lifetime applied when no explicit TTL is
// configured. Profile edits reissue a fresh cookie with a new window.
const DefaultTTL = 7 * 24 * time.Hour

// ErrNoSession is returned when the request carries no parseable
// session. Callers treat it as "guest", never as a hard failure.
var ErrNoSession = errors.New("no session")

// Identity describes the authenticated caller as derived from the
// verified cookie. Absence of an Identity means guest.
//
// Fields:
//  UserID        – user primary key.
//  RoleID        – role identifier, kept as a string because the gate
//                  compares roles string/number tolerantly.
//  Email         – address shown in the account menu.
//  EmailVerified – verification flag carried for display purposes.
//  FirstName     – display name.
//  LastName      – display surname.
type Identity struct {
    UserID        uint64
    RoleID        string
    Email         string
    EmailVerified bool
    FirstName     string
    LastName      string
}

// Issue signs a session token for the given identity. The token embeds
// the identity fields as claims plus exp/iat; it is returned together
// with its expiry so handlers can set the cookie's MaxAge to match.
func Issue(secret string, id Identity, ttl time.Duration) (string, time.Time, error) {
    if ttl <= 0 {
        ttl = DefaultTTL
    }
    exp := time.Now().UTC().Add(ttl)
    claims := jwt.MapClaims{
        "sub":            fmt.Sprintf("%d", id.UserID),
        "role_id":        id.RoleID,
        "email":          id.Email,
        "email_verified": id.EmailVerified,
        "first_name":     id.FirstName,
        "last_name":      id.LastName,
        "exp":            exp.Unix(),
        "iat":            time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return "", time.Time{}, err
    }
    return signed, exp, nil
}

// Parse verifies a session token and reconstructs the Identity. An
// invalid signature, wrong algorithm or expired token all yield
// ErrNoSession so enforcement points degrade to guest behaviour.
func Parse(secret, token string) (Identity, error) {
    if token == "" {
        return Identity{}, ErrNoSession
    }
    tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, errors.New("unexpected signing method")
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return Identity{}, ErrNoSession
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Identity{}, ErrNoSession
    }
    var id Identity
    if sub, ok := claims["sub"].(string); ok {
        if _, err := fmt.Sscanf(sub, "%d", &id.UserID); err != nil {
            return Identity{}, ErrNoSession
        }
    } else {
        return Identity{}, ErrNoSession
    }
    // Role claims may round-trip as string or number depending on who
    // issued the token; normalise both to a string.
    switch v := claims["role_id"].(type) {
    case string:
        id.RoleID = v
    case float64:
        id.RoleID = fmt.Sprintf("%.0f", v)
    }
    if v, ok := claims["email"].(string); ok {
        id.Email = v
    }
    if v, ok := claims["email_verified"].(bool); ok {
        id.EmailVerified = v
    }
    if v, ok := claims["first_name"].(string); ok {
        id.FirstName = v
    }
    if v, ok := claims["last_name"].(string); ok {
        id.LastName = v
    }
    return id, nil
}

// FromRequest reads and verifies the session cookie on a request.
// Missing cookie, bad signature and expired token are all ErrNoSession.
func FromRequest(secret string, r *http.Request) (Identity, error) {
    c, err := r.Cookie(CookieName)
    if err != nil {
        return Identity{}, ErrNoSession
    }
    return Parse(secret, c.Value)
}

// NewCookie builds the Set-Cookie value for a freshly issued token.
func NewCookie(token string, exp time.Time) *http.Cookie {
    return &http.Cookie{
        Name:     CookieName,
        Value:    token,
        Path:     "/",
        Expires:  exp,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
}

// ExpiredCookie builds the Set-Cookie value that deletes the session.
func ExpiredCookie() *http.Cookie {
    return &http.Cookie{
        Name:     CookieName,
        Value:    "",
        Path:     "/",
        MaxAge:   -1,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
}
