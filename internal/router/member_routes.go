package router

import (
    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/handler"
    "github.com/canidoac/webcasares/internal/middleware"
)

// RegisterAuth registers the authentication endpoints under /api/auth.
// rateMW is the Redis token-bucket limiter; credential endpoints are
// the only routes worth brute-forcing, so it is applied here rather
// than globally.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rateMW echo.MiddlewareFunc) {
    g := e.Group("/api/auth", rateMW)
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/logout", a.Logout)
}

// RegisterMember registers endpoints that require an authenticated
// session: the member profile (membership card data) and the social
// operations on news and surveys.
func RegisterMember(e *echo.Echo, a *handler.AuthHandler, news *handler.NewsHandler, surveys *handler.SurveyHandler) {
    g := e.Group("/api", middleware.RequireAuth())
    g.GET("/me", a.Me)
    g.PUT("/me", a.UpdateProfile)
    g.POST("/news/:id/like", news.Like)
    g.POST("/news/:id/comments", news.Comment)
    g.DELETE("/news/comments/:id", news.DeleteComment)
    g.POST("/surveys/:id/vote", surveys.Vote)
}
