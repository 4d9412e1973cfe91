package main // Entry point package

import (
    "context"
    "log" // Logging library

    "github.com/joho/godotenv"    // Loads .env files in development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/canidoac/webcasares/internal/config"
    "github.com/canidoac/webcasares/internal/database"
    "github.com/canidoac/webcasares/internal/gate"
    "github.com/canidoac/webcasares/internal/handler"
    "github.com/canidoac/webcasares/internal/middleware"
    "github.com/canidoac/webcasares/internal/queue"
    "github.com/canidoac/webcasares/internal/repository"
    "github.com/canidoac/webcasares/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connection failed: %v", err)
    }
    defer db.Close()

    // Redis is optional: a nil client disables the response cache, the
    // rate limiter and cache revalidation, nothing else.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable, cache and rate limiting disabled")
    }
    cacheCfg := config.LoadCacheConfig()
    rateCfg := config.LoadRateLimitConfig()

    // Repositories
    statuses := repository.NewStatusRepo(db)
    users := repository.NewUserRepo(db)
    roles := repository.NewRoleRepo(db)
    news := repository.NewNewsRepo(db)
    surveys := repository.NewSurveyRepo(db)
    products := repository.NewProductRepo(db)
    clubInfo := repository.NewClubInfoRepo(db)
    sponsors := repository.NewSponsorRepo(db)
    disciplines := repository.NewDisciplineRepo(db)
    matches := repository.NewMatchRepo(db)

    // One privilege resolver shared by the edge gate, the render-time
    // gate and RequireAdmin, so the bypass rules cannot drift.
    privileges := gate.NewRoleSet(cfg.AdminRoleIDs...)
    reval := &handler.Revalidator{RDB: rdb, Prefix: cacheCfg.Prefix}
    publisher := queue.NewPublisher()

    // Handlers
    authH := handler.NewAuthHandler(cfg, users, statuses)
    statusH := handler.NewStatusHandler(statuses, publisher, reval)
    siteConfigH := handler.NewSiteConfigHandler(statuses, statuses, privileges)
    newsH := handler.NewNewsHandler(news, privileges, reval)
    surveyH := handler.NewSurveyHandler(surveys, reval)
    storeH := handler.NewStoreHandler(products, reval)
    clubH := handler.NewClubHandler(clubInfo, sponsors, disciplines, reval)
    matchH := handler.NewMatchHandler(matches, reval)
    adminUserH := handler.NewAdminUserHandler(users, roles)

    e := echo.New()
    e.HideBanner = true

    // Session first so downstream middleware sees the identity, then the
    // edge gate ahead of all page routing.
    e.Use(middleware.Session(cfg.SessionSecret))
    e.Use(middleware.EdgeGate(middleware.GateConfig{
        SessionSecret:     cfg.SessionSecret,
        Source:            statuses,
        Privileges:        privileges,
        ProtectedPrefixes: []string{"/socio", "/perfil"},
        AdminPrefix:       "/admin",
    }))

    cacheMW := middleware.NewRedisCache(cacheCfg, rdb)
    rateMW := middleware.NewTokenBucket(rateCfg, rdb)

    router.RegisterRoutes(e)
    router.RegisterPublic(e, router.PublicHandlers{
        SiteConfig: siteConfigH,
        News:       newsH,
        Surveys:    surveyH,
        Store:      storeH,
        Club:       clubH,
        Matches:    matchH,
    }, cacheMW)
    router.RegisterAuth(e, authH, rateMW)
    router.RegisterMember(e, authH, newsH, surveyH)
    router.RegisterAdmin(e, router.AdminHandlers{
        Status:  statusH,
        News:    newsH,
        Surveys: surveyH,
        Store:   storeH,
        Club:    clubH,
        Matches: matchH,
        Users:   adminUserH,
    }, privileges)
    // Page catch-all last so it cannot shadow API routes.
    router.RegisterPages(e, "")

    // Background consumers: status change audit log and, when the
    // active status carries a scheduled launch, the countdown.
    go func() {
        if err := queue.StartStatusConsumer(); err != nil {
            log.Printf("status consumer stopped: %v", err)
        }
    }()
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    armCountdown(ctx, statuses, publisher, reval)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
