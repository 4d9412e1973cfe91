package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/repository"
)

// AdminUserHandler serves the admin user and role panels.
type AdminUserHandler struct {
    Users *repository.UserRepo
    Roles *repository.RoleRepo
}

func NewAdminUserHandler(u *repository.UserRepo, r *repository.RoleRepo) *AdminUserHandler {
    return &AdminUserHandler{Users: u, Roles: r}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminUserHandler) ListUsers(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    users, err := h.Users.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load users failed"})
    }
    parts := make([]userPart, 0, len(users))
    for _, u := range users {
        parts = append(parts, toUserPart(u))
    }
    return c.JSON(http.StatusOK, echo.Map{"users": parts})
}

// ListRoles handles GET /api/admin/roles.
func (h *AdminUserHandler) ListRoles(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    roles, err := h.Roles.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load roles failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"roles": roles})
}

type roleChangeReq struct {
    RoleID uint8 `json:"role_id"`
}

// UpdateUserRole handles PUT /api/admin/users/:id/role. The member must
// log in again before the new role reaches their session cookie; the
// gate keeps honouring the old cookie until it expires or is reissued.
func (h *AdminUserHandler) UpdateUserRole(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req roleChangeReq
    if err := c.Bind(&req); err != nil || req.RoleID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "role_id is required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Users.UpdateRole(ctx, id, req.RoleID); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update role failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
