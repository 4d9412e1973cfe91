package router

import (
    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/gate"
    "github.com/canidoac/webcasares/internal/handler"
    "github.com/canidoac/webcasares/internal/middleware"
)

// AdminHandlers bundles the handlers behind the admin panels.
type AdminHandlers struct {
    Status  *handler.StatusHandler
    News    *handler.NewsHandler
    Surveys *handler.SurveyHandler
    Store   *handler.StoreHandler
    Club    *handler.ClubHandler
    Matches *handler.MatchHandler
    Users   *handler.AdminUserHandler
}

// RegisterAdmin registers admin-scoped endpoints under /api/admin. All
// routes require a valid session whose role is in the privileged set;
// non-admins receive 403 without any partial mutation.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, privileges gate.PrivilegeResolver) {
    g := e.Group("/api/admin", middleware.RequireAdmin(privileges))

    // ---- Site status ----
    g.GET("/site-status", h.Status.Get)
    g.PUT("/site-status", h.Status.Put)
    g.PUT("/site-toggles", h.Status.PutToggles)

    // ---- News ----
    g.POST("/news", h.News.Create)
    g.PUT("/news/:id", h.News.Update)
    g.DELETE("/news/:id", h.News.Delete)

    // ---- Surveys ----
    g.POST("/surveys", h.Surveys.Create)
    g.POST("/surveys/:id/close", h.Surveys.Close)

    // ---- Store ----
    g.POST("/store/products", h.Store.Create)
    g.PUT("/store/products/:id", h.Store.Update)
    g.DELETE("/store/products/:id", h.Store.Delete)

    // ---- Club info, sponsors, disciplines ----
    g.PUT("/club", h.Club.UpdateInfo)
    g.POST("/sponsors", h.Club.CreateSponsor)
    g.PUT("/sponsors/:id", h.Club.UpdateSponsor)
    g.DELETE("/sponsors/:id", h.Club.DeleteSponsor)
    g.POST("/disciplines", h.Club.CreateDiscipline)
    g.PUT("/disciplines/:id", h.Club.UpdateDiscipline)
    g.DELETE("/disciplines/:id", h.Club.DeleteDiscipline)

    // ---- Match calendar ----
    g.POST("/matches", h.Matches.Create)
    g.PUT("/matches/:id", h.Matches.Update)
    g.DELETE("/matches/:id", h.Matches.Delete)

    // ---- Users and roles ----
    g.GET("/users", h.Users.ListUsers)
    g.PUT("/users/:id/role", h.Users.UpdateUserRole)
    g.GET("/roles", h.Users.ListRoles)
}
