package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/config"
    "github.com/canidoac/webcasares/internal/middleware"
    "github.com/canidoac/webcasares/internal/model"
    "github.com/canidoac/webcasares/internal/repository"
    "github.com/canidoac/webcasares/internal/session"
    "github.com/canidoac/webcasares/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints. Login and
// register set the signed session cookie; logout deletes it. The cookie
// is never mutated in place: profile edits reissue a fresh one.
type AuthHandler struct {
    Cfg      config.Config
    Users    *repository.UserRepo
    Statuses StatusStore
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s StatusStore) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Statuses: s}
}

// ----- DTOs -----

type registerReq struct {
    Email     string `json:"email"`
    Password  string `json:"password"`
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
}
type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}
type profileReq struct {
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
}

type userPart struct {
    ID            uint64  `json:"id"`
    Email         string  `json:"email"`
    RoleID        uint8   `json:"role_id"`
    FirstName     string  `json:"first_name"`
    LastName      string  `json:"last_name"`
    MemberNumber  *string `json:"member_number"`
    EmailVerified bool    `json:"email_verified"`
}

func toUserPart(u model.User) userPart {
    return userPart{
        ID:            u.ID,
        Email:         u.Email,
        RoleID:        u.RoleID,
        FirstName:     u.FirstName,
        LastName:      u.LastName,
        MemberNumber:  u.MemberNumber,
        EmailVerified: u.EmailVerified,
    }
}

// issueSession signs a fresh cookie for the user and attaches it.
func (h *AuthHandler) issueSession(c echo.Context, u model.User) error {
    id := session.Identity{
        UserID:        u.ID,
        RoleID:        strconv.Itoa(int(u.RoleID)),
        Email:         u.Email,
        EmailVerified: u.EmailVerified,
        FirstName:     u.FirstName,
        LastName:      u.LastName,
    }
    ttl := time.Duration(h.Cfg.SessionTTLDays) * 24 * time.Hour
    token, exp, err := session.Issue(h.Cfg.SessionSecret, id, ttl)
    if err != nil {
        return err
    }
    c.SetCookie(session.NewCookie(token, exp))
    return nil
}

// Register creates a member account and logs it in. Registration can be
// closed through the site config toggle; a config read failure does not
// close it.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if cfg, err := h.Statuses.ReadConfig(ctx); err == nil && !cfg.RegistrationEnabled {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "registration disabled"})
    }

    uid, err := h.Users.Create(ctx, req.Email, req.Password,
        strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName),
        model.RoleMember, h.Cfg.BcryptCost)
    if err != nil {
        if err == repository.ErrEmailExists {
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }
    u, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    if err := h.issueSession(c, u); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"user": toUserPart(u)})
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }
    if err := h.issueSession(c, u); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

// Logout deletes the session cookie. It succeeds for guests too.
func (h *AuthHandler) Logout(c echo.Context) error {
    c.SetCookie(session.ExpiredCookie())
    return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated member's profile, including the fields
// the membership card is generated from.
func (h *AuthHandler) Me(c echo.Context) error {
    id, ok := middleware.Identity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, id.UserID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

// UpdateProfile edits display fields and reissues the session cookie so
// the cookie reflects the stored profile.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
    id, ok := middleware.Identity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req profileReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Users.UpdateProfile(ctx, id.UserID,
        strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
    }
    u, err := h.Users.GetByID(ctx, id.UserID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    if err := h.issueSession(c, u); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}
