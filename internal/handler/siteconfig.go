package handler

import (
    "context"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/countdown"
    "github.com/canidoac/webcasares/internal/gate"
    "github.com/canidoac/webcasares/internal/middleware"
    "github.com/canidoac/webcasares/internal/model"
)

// SiteConfigHandler is the render-time gate: the page shell fetches
// GET /api/site-config while composing itself and substitutes the
// maintenance or coming-soon view in place when the returned mode says
// so. It is the second, independent enforcement point: internal routes
// that never pass the edge gate, and requests where the edge gate's
// lookup failed open, are still covered here.
type SiteConfigHandler struct {
    Store      StatusStore
    Source     gate.StatusSource
    Privileges gate.PrivilegeResolver
}

func NewSiteConfigHandler(store StatusStore, source gate.StatusSource, privileges gate.PrivilegeResolver) *SiteConfigHandler {
    return &SiteConfigHandler{Store: store, Source: source, Privileges: privileges}
}

// statusPagePart parameterises the self-contained maintenance or
// coming-soon view: copy, optional media, optional countdown block,
// and the post-countdown destinations.
type statusPagePart struct {
    Title              string               `json:"title"`
    Message            string               `json:"message"`
    MediaType          string               `json:"media_type"`
    MediaURL           *string              `json:"media_url"`
    ShowCountdown      bool                 `json:"show_countdown"`
    LaunchDate         *string              `json:"launch_date"`
    Remaining          *countdown.Remaining `json:"remaining,omitempty"`
    RedirectURL        *string              `json:"redirect_url"`
    AutoSwitchToOnline bool                 `json:"auto_switch_to_online"`
    FinalVideoURL      *string              `json:"final_video_url"`
}

// Get handles GET /api/site-config. Any error while loading config is
// logged and answered with online defaults: visitors never see a raw
// error for gate failures, worst case they see the normal site.
func (h *SiteConfigHandler) Get(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    // Privilege is computed here independently of the edge gate, but
    // through the same resolver, so the bypass rules cannot drift.
    privileged := false
    if id, ok := middleware.Identity(c); ok {
        privileged = h.Privileges.IsPrivileged(id.RoleID)
    }

    resp := echo.Map{
        "mode":                model.StatusOnline,
        "status":              nil,
        "showBanner":          false,
        "bannerText":          "",
        "showPopup":           false,
        "popupText":           "",
        "registrationEnabled": true,
    }

    cfg, err := h.Store.ReadConfig(ctx)
    if err != nil {
        log.Printf("site-config: config read failed, rendering online defaults: %v", err)
        return c.JSON(http.StatusOK, resp)
    }
    resp["showBanner"] = cfg.ShowBanner
    resp["bannerText"] = cfg.BannerText
    resp["showPopup"] = cfg.ShowPopup
    resp["popupText"] = cfg.PopupText
    resp["registrationEnabled"] = cfg.RegistrationEnabled

    def, err := h.Source.Active(ctx)
    if err != nil {
        log.Printf("site-config: status lookup failed, rendering online defaults: %v", err)
        return c.JSON(http.StatusOK, resp)
    }
    if def == nil {
        return c.JSON(http.StatusOK, resp)
    }

    // The shell reports the page it is composing via ?path= so pages
    // the gate exempts (the status pages themselves, the logins) render
    // their own content instead of the substitute view.
    path := c.QueryParam("path")
    if path == "" {
        path = "/"
    }

    // Decision priority: maintenance > coming_soon > normal children.
    // Exactly one of the three render branches is active.
    switch gate.Evaluate(def.StatusKey, path, privileged) {
    case gate.RedirectMaintenance:
        resp["mode"] = model.StatusMaintenance
    case gate.RedirectComingSoon:
        resp["mode"] = model.StatusComingSoon
    default:
        return c.JSON(http.StatusOK, resp)
    }

    page := statusPagePart{
        Title:              def.Title,
        Message:            def.Message,
        MediaType:          def.MediaType,
        MediaURL:           def.MediaURL,
        ShowCountdown:      def.ShowCountdown,
        RedirectURL:        def.RedirectURL,
        AutoSwitchToOnline: def.AutoSwitchToOnline,
        FinalVideoURL:      def.FinalVideoURL,
    }
    if def.ShowCountdown && def.LaunchDate != nil {
        s := def.LaunchDate.UTC().Format(time.RFC3339)
        page.LaunchDate = &s
        rem := countdown.Split(time.Until(*def.LaunchDate))
        page.Remaining = &rem
    }
    resp["status"] = page
    return c.JSON(http.StatusOK, resp)
}
