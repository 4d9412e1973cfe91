package router // package router defines how HTTP routes are registered for the API

import (
    "net/http"
    "os"

    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/canidoac/webcasares/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // The /healthz endpoint can be used by load balancers or monitoring
    // systems to verify that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterPages serves the compiled frontend. Static assets live under
// /static and /assets; every remaining page path falls through to the
// SPA index so client-side routing works. The edge gate middleware runs
// before this handler, which is why page paths like /tienda or
// /maintenance resolve here at all.
func RegisterPages(e *echo.Echo, distDir string) {
    if distDir == "" {
        distDir = "web/dist"
    }
    e.Static("/static", distDir+"/static")
    e.Static("/assets", distDir+"/assets")
    e.Static("/images", distDir+"/images")
    e.File("/favicon.ico", distDir+"/favicon.ico")

    index := distDir + "/index.html"
    e.GET("/*", func(c echo.Context) error {
        if _, err := os.Stat(index); err != nil {
            return c.String(http.StatusNotFound, "not found")
        }
        return c.File(index)
    })
}
