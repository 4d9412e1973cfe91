package router

import (
    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/handler"
)

// PublicHandlers bundles the handlers exposed without authentication.
type PublicHandlers struct {
    SiteConfig *handler.SiteConfigHandler
    News       *handler.NewsHandler
    Surveys    *handler.SurveyHandler
    Store      *handler.StoreHandler
    Club       *handler.ClubHandler
    Matches    *handler.MatchHandler
}

// RegisterPublic registers unauthenticated browse endpoints under /api.
// cacheMW is the Redis response cache applied to the content listings;
// the site-config endpoint is deliberately left uncached so status
// flips are visible on the next request.
func RegisterPublic(e *echo.Echo, h PublicHandlers, cacheMW echo.MiddlewareFunc) {
    // Render-time gate: the page shell reads this while composing.
    e.GET("/api/site-config", h.SiteConfig.Get)

    g := e.Group("/api", cacheMW)
    g.GET("/news", h.News.List)
    g.GET("/news/:id", h.News.Get)
    g.GET("/surveys", h.Surveys.List)
    g.GET("/store/products", h.Store.List)
    g.GET("/store/products/:id", h.Store.Get)
    g.GET("/club", h.Club.GetInfo)
    g.GET("/sponsors", h.Club.ListSponsors)
    g.GET("/disciplines", h.Club.ListDisciplines)
    g.GET("/matches", h.Matches.List)
}
